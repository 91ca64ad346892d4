package service

import (
	"context"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/go-resty/resty/v2"
)

func (s *DataPulseService) Register(ctx context.Context, in dto.RegisterRequest) (model.User, error) {
	req, _ := s.newRequest(ctx, opRegister, false)
	body, err := s.execute(opRegister, req.SetBody(in), resty.MethodPost, "/v1/auth/register")
	if err != nil {
		return model.User{}, err
	}
	var user dto.UserDTO
	if err := decode(opRegister, body, &user); err != nil {
		return model.User{}, err
	}
	return user.ToModel(), nil
}

func (s *DataPulseService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	req, _ := s.newRequest(ctx, opLogin, false)
	body, err := s.execute(opLogin, req.SetBody(in), resty.MethodPost, "/v1/auth/login")
	if err != nil {
		return nil, err
	}
	var out dto.LoginResponse
	if err := decode(opLogin, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DataPulseService) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) (string, error) {
	req, _ := s.newRequest(ctx, opForgotPassword, false)
	body, err := s.execute(opForgotPassword, req.SetBody(in), resty.MethodPost, "/v1/auth/forgot-password")
	if err != nil {
		return "", err
	}
	return messageOf(body), nil
}

func (s *DataPulseService) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) (string, error) {
	req, _ := s.newRequest(ctx, opResetPassword, false)
	body, err := s.execute(opResetPassword, req.SetBody(in), resty.MethodPost, "/v1/auth/reset-password")
	if err != nil {
		return "", err
	}
	return messageOf(body), nil
}

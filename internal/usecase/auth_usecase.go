package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/fadilmartias/datapulse/internal/repository"
	"github.com/fadilmartias/datapulse/internal/service"
)

// ValidationError reports input rejected before any remote call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type AuthUsecase struct {
	api    service.DataPulseServiceInterface
	tokens repository.TokenRepository
}

func NewAuthUsecase(api service.DataPulseServiceInterface, tokens repository.TokenRepository) *AuthUsecase {
	return &AuthUsecase{api: api, tokens: tokens}
}

func (uc *AuthUsecase) Register(ctx context.Context, req dto.RegisterRequest) (model.User, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if err := required("full_name", req.FullName); err != nil {
		return model.User{}, err
	}
	if err := required("email", req.Email); err != nil {
		return model.User{}, err
	}
	if err := required("password", req.Password); err != nil {
		return model.User{}, err
	}
	if !model.ValidRole(req.Role) {
		return model.User{}, &ValidationError{Field: "role", Message: "must be one of user, admin, manager"}
	}
	return uc.api.Register(ctx, req)
}

// Login authenticates and stores the returned tokens for sessionID. This
// is the only place a session token is written.
func (uc *AuthUsecase) Login(ctx context.Context, sessionID string, req dto.LoginRequest) (model.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := required("email", req.Email); err != nil {
		return model.User{}, err
	}
	if err := required("password", req.Password); err != nil {
		return model.User{}, err
	}
	resp, err := uc.api.Login(ctx, req)
	if err != nil {
		return model.User{}, err
	}
	user := resp.User.ToModel()
	token := &model.SessionToken{
		SessionID:    sessionID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		UserID:       user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		Role:         user.Role,
	}
	if err := uc.tokens.Save(ctx, token); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// CurrentUser returns the user logged in on sessionID, or nil.
func (uc *AuthUsecase) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	token, err := uc.tokens.Find(ctx, sessionID)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user := token.User()
	return &user, nil
}

func (uc *AuthUsecase) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if err := required("email", email); err != nil {
		return "", err
	}
	return uc.api.ForgotPassword(ctx, dto.ForgotPasswordRequest{Email: email})
}

func (uc *AuthUsecase) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	if err := required("token", strings.TrimSpace(token)); err != nil {
		return "", err
	}
	if err := required("new_password", newPassword); err != nil {
		return "", err
	}
	return uc.api.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: newPassword})
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	return nil
}

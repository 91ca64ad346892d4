package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type DataPulseServiceInterface interface {
	Register(ctx context.Context, req dto.RegisterRequest) (model.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (string, error)
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (string, error)

	UploadJD(ctx context.Context, file dto.FileUpload, title string) (model.JobDescription, error)
	ListJDs(ctx context.Context) ([]model.JobDescription, error)
	GetJD(ctx context.Context, id string) (model.JobDescription, error)
	UploadCV(ctx context.Context, file dto.FileUpload, level model.Level) (model.Resume, error)
	ListCVs(ctx context.Context) ([]model.Resume, error)

	CreateAnalysis(ctx context.Context, req dto.AnalysisRequest) (*model.AnalysisResult, error)
	GetAnalysis(ctx context.Context, id string) (*model.AnalysisResult, error)

	ListChats(ctx context.Context) ([]model.ConversationSummary, error)
	GetChat(ctx context.Context, id string) (*model.Conversation, error)
	StartChat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
	DeleteChat(ctx context.Context, id string) (string, error)
}

const (
	opRegister       = "Registration"
	opLogin          = "Login"
	opForgotPassword = "Password reset request"
	opResetPassword  = "Password reset"
	opUploadJD       = "JD upload"
	opListJDs        = "JD list"
	opGetJD          = "JD lookup"
	opUploadCV       = "CV upload"
	opListCVs        = "CV list"
	opCreateAnalysis = "Analysis request"
	opGetAnalysis    = "Fetch analysis"
	opListChats      = "Chat list"
	opGetChat        = "Conversation load"
	opStartChat      = "Chat message"
	opDeleteChat     = "Conversation delete"
)

type DataPulseService struct {
	client *resty.Client
	tokens TokenProvider
}

// NewDataPulseService builds a client for the remote API. A zero timeout
// leaves requests bounded only by the caller's context.
func NewDataPulseService(baseURL string, timeout time.Duration, tokens TokenProvider) *DataPulseService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	return &DataPulseService{client: client, tokens: tokens}
}

// newRequest prepares a request. Authenticated requests carry the bearer
// token when the provider has one.
func (s *DataPulseService) newRequest(ctx context.Context, op string, authenticated bool) (*resty.Request, error) {
	req := s.client.R().SetContext(ctx)
	if !authenticated {
		return req, nil
	}
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, &APIError{
			Op:      op,
			Message: fmt.Sprintf("%s failed: could not read session token", op),
			cause:   err,
		}
	}
	if token != "" {
		req.SetAuthToken(token)
	}
	return req, nil
}

func (s *DataPulseService) execute(op string, req *resty.Request, method, url string) ([]byte, error) {
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, transportError(op, err)
	}
	if !resp.IsSuccess() {
		return nil, newAPIError(op, resp.StatusCode(), resp.Body())
	}
	return resp.Body(), nil
}

func decode(op string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Op:      op,
			Message: fmt.Sprintf("%s failed: unreadable response", op),
			cause:   err,
		}
	}
	return nil
}

// decodeList accepts either a bare JSON array or an object wrapping the
// array under key.
func decodeList(op string, body []byte, key string, out any) error {
	res := gjson.ParseBytes(body)
	if res.IsArray() {
		return decode(op, body, out)
	}
	if list := res.Get(key); list.IsArray() {
		return decode(op, []byte(list.Raw), out)
	}
	if !res.Exists() || res.Type == gjson.Null {
		return nil
	}
	return &APIError{Op: op, Message: fmt.Sprintf("%s failed: unreadable response", op)}
}

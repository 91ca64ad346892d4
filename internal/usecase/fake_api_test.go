package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/fadilmartias/datapulse/internal/service"
)

// fakeAPI implements service.DataPulseServiceInterface with overridable
// behavior per call and a record of what was requested.
type fakeAPI struct {
	mu sync.Mutex

	jds      []model.JobDescription
	cvs      []model.Resume
	chats    []model.ConversationSummary
	listErr  error
	chatsErr error

	listJDs  func() ([]model.JobDescription, error)
	getJD    func(id string) (model.JobDescription, error)
	uploadJD func(file dto.FileUpload, title string) (model.JobDescription, error)
	uploadCV func(file dto.FileUpload, level model.Level) (model.Resume, error)
	analysis func(req dto.AnalysisRequest) (*model.AnalysisResult, error)
	getChat  func(id string) (*model.Conversation, error)
	chat     func(req dto.ChatRequest) (*dto.ChatResponse, error)
	login    func(req dto.LoginRequest) (*dto.LoginResponse, error)

	analysisRequests []dto.AnalysisRequest
	chatRequests     []dto.ChatRequest
	uploadedCVs      []string
	uploadJDCalls    int
	getChatCalls     int
	deleted          []string
	registered       []dto.RegisterRequest
}

var _ service.DataPulseServiceInterface = (*fakeAPI)(nil)

func (f *fakeAPI) Register(_ context.Context, req dto.RegisterRequest) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, req)
	return model.User{ID: "u1", FullName: req.FullName, Email: req.Email, Role: req.Role}, nil
}

func (f *fakeAPI) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if f.login != nil {
		return f.login(req)
	}
	return &dto.LoginResponse{AccessToken: "access", User: dto.UserDTO{UserID: "u1", Email: req.Email}}, nil
}

func (f *fakeAPI) ForgotPassword(context.Context, dto.ForgotPasswordRequest) (string, error) {
	return "Reset link sent", nil
}

func (f *fakeAPI) ResetPassword(context.Context, dto.ResetPasswordRequest) (string, error) {
	return "Password updated", nil
}

func (f *fakeAPI) UploadJD(_ context.Context, file dto.FileUpload, title string) (model.JobDescription, error) {
	f.mu.Lock()
	f.uploadJDCalls++
	f.mu.Unlock()
	if f.uploadJD != nil {
		return f.uploadJD(file, title)
	}
	return model.JobDescription{ID: "jd-new", Title: title}, nil
}

func (f *fakeAPI) ListJDs(context.Context) ([]model.JobDescription, error) {
	if f.listJDs != nil {
		return f.listJDs()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.jds, nil
}

func (f *fakeAPI) GetJD(_ context.Context, id string) (model.JobDescription, error) {
	if f.getJD != nil {
		return f.getJD(id)
	}
	return model.JobDescription{ID: id, Title: "Title " + id}, nil
}

func (f *fakeAPI) UploadCV(_ context.Context, file dto.FileUpload, level model.Level) (model.Resume, error) {
	f.mu.Lock()
	f.uploadedCVs = append(f.uploadedCVs, file.Name)
	f.mu.Unlock()
	if f.uploadCV != nil {
		return f.uploadCV(file, level)
	}
	return model.Resume{ID: "cv-" + file.Name, FileName: file.Name, Level: level}, nil
}

func (f *fakeAPI) ListCVs(context.Context) ([]model.Resume, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.cvs, nil
}

func (f *fakeAPI) CreateAnalysis(_ context.Context, req dto.AnalysisRequest) (*model.AnalysisResult, error) {
	f.mu.Lock()
	f.analysisRequests = append(f.analysisRequests, req)
	f.mu.Unlock()
	if f.analysis != nil {
		return f.analysis(req)
	}
	return &model.AnalysisResult{AnalysisID: "a1", JDID: req.JDID}, nil
}

func (f *fakeAPI) GetAnalysis(_ context.Context, id string) (*model.AnalysisResult, error) {
	return &model.AnalysisResult{AnalysisID: id}, nil
}

func (f *fakeAPI) ListChats(context.Context) ([]model.ConversationSummary, error) {
	if f.chatsErr != nil {
		return nil, f.chatsErr
	}
	return f.chats, nil
}

func (f *fakeAPI) GetChat(_ context.Context, id string) (*model.Conversation, error) {
	f.mu.Lock()
	f.getChatCalls++
	f.mu.Unlock()
	if f.getChat != nil {
		return f.getChat(id)
	}
	return &model.Conversation{ID: id}, nil
}

func (f *fakeAPI) StartChat(_ context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	f.mu.Lock()
	f.chatRequests = append(f.chatRequests, req)
	f.mu.Unlock()
	if f.chat != nil {
		return f.chat(req)
	}
	return &dto.ChatResponse{
		ConversationID: "conv-1",
		Response:       "reply to " + req.Message,
		Timestamp:      dto.Time{Time: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
	}, nil
}

func (f *fakeAPI) DeleteChat(_ context.Context, id string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return "deleted", nil
}

func newTestUsecase(api *fakeAPI) *SkillAnalysisUsecase {
	uc := NewSkillAnalysisUsecase(api, 0)
	uc.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	n := 0
	uc.newID = func() string {
		n++
		return "local-" + string(rune('a'+n-1))
	}
	return uc
}

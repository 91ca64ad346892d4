package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/fadilmartias/datapulse/internal/service"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// SkillAnalysisUsecase drives uploads, analysis and chat for a workspace.
// Operations never return remote failures. They are stored on the
// workspace for display instead.
type SkillAnalysisUsecase struct {
	api     service.DataPulseServiceInterface
	limiter *rate.Limiter
	now     func() time.Time
	newID   func() string
}

// NewSkillAnalysisUsecase paces bulk CV uploads to uploadRatePerSec files
// per second. Zero disables pacing.
func NewSkillAnalysisUsecase(api service.DataPulseServiceInterface, uploadRatePerSec float64) *SkillAnalysisUsecase {
	uc := &SkillAnalysisUsecase{
		api:   api,
		now:   time.Now,
		newID: uuid.NewString,
	}
	if uploadRatePerSec > 0 {
		uc.limiter = rate.NewLimiter(rate.Limit(uploadRatePerSec), 1)
	}
	return uc
}

// Load fetches the JD, CV and conversation lists concurrently and merges
// them by id into the workspace. Entries added locally while the lists were
// in flight are kept. A failed chat list is only logged.
func (uc *SkillAnalysisUsecase) Load(ctx context.Context, ws *Workspace) {
	var g errgroup.Group

	g.Go(func() error {
		jds, err := uc.api.ListJDs(ctx)
		ws.mu.Lock()
		defer ws.mu.Unlock()
		if err != nil {
			ws.jd.ListError = err.Error()
			return nil
		}
		ws.jd.List = mergeByID(jds, ws.jd.List, func(jd model.JobDescription) string { return jd.ID })
		ws.jd.ListError = ""
		return nil
	})

	g.Go(func() error {
		cvs, err := uc.api.ListCVs(ctx)
		ws.mu.Lock()
		defer ws.mu.Unlock()
		if err != nil {
			ws.cv.Error = err.Error()
			return nil
		}
		ws.cv.List = mergeByID(cvs, ws.cv.List, func(cv model.Resume) string { return cv.ID })
		return nil
	})

	g.Go(func() error {
		chats, err := uc.api.ListChats(ctx)
		if err != nil {
			log.Printf("load conversations: %v", err)
			return nil
		}
		ws.mu.Lock()
		defer ws.mu.Unlock()
		ws.chat.Summaries = mergeByID(chats, ws.chat.Summaries, func(c model.ConversationSummary) string { return c.ID })
		return nil
	})

	_ = g.Wait()
}

// SelectJobDescription picks an existing JD. An empty id clears the selection.
func (uc *SkillAnalysisUsecase) SelectJobDescription(ctx context.Context, ws *Workspace, id string) {
	ws.mu.Lock()
	ws.jd.Error = ""
	ws.jd.SelectedID = id
	ws.jd.SelectedTitle = ""
	if id == "" {
		ws.mu.Unlock()
		return
	}
	ws.jd.Loading = true
	ws.mu.Unlock()

	jd, err := uc.api.GetJD(ctx, id)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.jd.Loading = false
	if ws.jd.SelectedID != id {
		return
	}
	if err != nil {
		ws.jd.Error = err.Error()
		ws.jd.SelectedID = ""
		return
	}
	ws.jd.SelectedTitle = jd.Title
}

// UploadJobDescription uploads one JD and selects it. A nil file is a no-op.
func (uc *SkillAnalysisUsecase) UploadJobDescription(ctx context.Context, ws *Workspace, file *dto.FileUpload, title string) bool {
	if file == nil {
		return false
	}
	ws.mu.Lock()
	ws.jd.Error = ""
	ws.jd.Uploading = true
	ws.mu.Unlock()

	jd, err := uc.api.UploadJD(ctx, *file, title)

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.jd.Uploading = false
	if err != nil {
		ws.jd.Error = err.Error()
		ws.jd.SelectedID = ""
		ws.jd.SelectedTitle = ""
		return true
	}
	if jd.Title == "" {
		jd.Title = title
	}
	if jd.Title == "" {
		jd.Title = file.Name
	}
	if jd.UploadedAt.IsZero() {
		jd.UploadedAt = uc.now()
	}
	ws.jd.SelectedID = jd.ID
	ws.jd.SelectedTitle = jd.Title
	ws.jd.List = append(ws.jd.List, jd)
	return true
}

func (uc *SkillAnalysisUsecase) SetResumeLevel(ws *Workspace, level model.Level) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.cv.Level = level
}

type UploadOutcome struct {
	FileName string
	Resume   *model.Resume
	Err      error
}

// UploadResumes uploads files one after another with the current level.
// A failed file does not stop the rest. Failures end up in the CV error as
// "name: message" entries joined by "; ".
func (uc *SkillAnalysisUsecase) UploadResumes(ctx context.Context, ws *Workspace, files []dto.FileUpload) []UploadOutcome {
	if len(files) == 0 {
		return nil
	}
	ws.mu.Lock()
	ws.cv.Error = ""
	ws.cv.Uploading = true
	level := ws.cv.Level
	ws.mu.Unlock()

	outcomes := make([]UploadOutcome, 0, len(files))
	var failures []string
	for _, f := range files {
		cv, err := uc.uploadResume(ctx, f, level)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %s", f.Name, err.Error()))
			outcomes = append(outcomes, UploadOutcome{FileName: f.Name, Err: err})
			continue
		}
		ws.mu.Lock()
		ws.cv.List = append(ws.cv.List, cv)
		ws.mu.Unlock()
		outcomes = append(outcomes, UploadOutcome{FileName: f.Name, Resume: &cv})
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.cv.Uploading = false
	ws.cv.Error = strings.Join(failures, "; ")
	return outcomes
}

func (uc *SkillAnalysisUsecase) uploadResume(ctx context.Context, f dto.FileUpload, level model.Level) (model.Resume, error) {
	if uc.limiter != nil {
		if err := uc.limiter.Wait(ctx); err != nil {
			return model.Resume{}, err
		}
	}
	cv, err := uc.api.UploadCV(ctx, f, level)
	if err != nil {
		return model.Resume{}, err
	}
	if cv.FileName == "" {
		cv.FileName = f.Name
	}
	if cv.Level == "" {
		cv.Level = level
	}
	if cv.UploadedAt.IsZero() {
		cv.UploadedAt = uc.now()
	}
	return cv, nil
}

// SelectResume scopes chat to a CV and starts a new conversation.
func (uc *SkillAnalysisUsecase) SelectResume(ws *Workspace, id string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if id != "" && !hasResume(ws.cv.List, id) {
		return fmt.Errorf("unknown CV %q", id)
	}
	ws.cv.SelectedID = id
	ws.chat.SelectedID = ""
	ws.chat.Messages = nil
	ws.chat.Loading = false
	return nil
}

func hasResume(list []model.Resume, id string) bool {
	for _, cv := range list {
		if cv.ID == id {
			return true
		}
	}
	return false
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func files(names ...string) []dto.FileUpload {
	out := make([]dto.FileUpload, 0, len(names))
	for _, n := range names {
		out = append(out, dto.FileUpload{Name: n, Reader: strings.NewReader(n)})
	}
	return out
}

func TestUploadResumes_PartialFailures(t *testing.T) {
	api := &fakeAPI{
		uploadCV: func(file dto.FileUpload, level model.Level) (model.Resume, error) {
			if strings.HasPrefix(file.Name, "bad") {
				return model.Resume{}, errors.New("unsupported file type")
			}
			return model.Resume{ID: "cv-" + file.Name, FileName: file.Name, Level: level}, nil
		},
	}
	uc := newTestUsecase(api)
	ws := NewWorkspace()
	ws.cv.List = []model.Resume{{ID: "cv-existing"}}

	outcomes := uc.UploadResumes(context.Background(), ws, files("a.pdf", "bad1.doc", "b.pdf", "bad2.txt", "c.pdf"))

	s := ws.State()
	assert.Len(t, s.CV.List, 1+3)
	assert.Equal(t, "bad1.doc: unsupported file type; bad2.txt: unsupported file type", s.CV.Error)
	assert.False(t, s.CV.Uploading)
	assert.Equal(t, []string{"a.pdf", "bad1.doc", "b.pdf", "bad2.txt", "c.pdf"}, api.uploadedCVs)

	require.Len(t, outcomes, 5)
	assert.NotNil(t, outcomes[0].Resume)
	assert.Error(t, outcomes[1].Err)
	assert.Equal(t, "b.pdf", outcomes[2].Resume.FileName)
}

func TestUploadResumes_AllSucceedClearsError(t *testing.T) {
	uc := newTestUsecase(&fakeAPI{})
	ws := NewWorkspace()
	ws.cv.Error = "old failure"

	uc.UploadResumes(context.Background(), ws, files("a.pdf", "b.pdf"))

	s := ws.State()
	assert.Empty(t, s.CV.Error)
	assert.Len(t, s.CV.List, 2)
}

func TestUploadResumes_UsesSelectedLevel(t *testing.T) {
	api := &fakeAPI{}
	uc := newTestUsecase(api)
	ws := NewWorkspace()
	uc.SetResumeLevel(ws, model.LevelSenior)

	uc.UploadResumes(context.Background(), ws, files("a.pdf"))

	s := ws.State()
	require.Len(t, s.CV.List, 1)
	assert.Equal(t, model.LevelSenior, s.CV.List[0].Level)
	assert.Equal(t, model.LevelSenior, s.CV.Level)
}

func TestUploadResumes_EmptyIsNoop(t *testing.T) {
	api := &fakeAPI{}
	uc := newTestUsecase(api)
	ws := NewWorkspace()
	ws.cv.Error = "kept"

	assert.Nil(t, uc.UploadResumes(context.Background(), ws, nil))
	assert.Equal(t, "kept", ws.State().CV.Error)
	assert.Empty(t, api.uploadedCVs)
}

func TestUploadResumes_Paced(t *testing.T) {
	api := &fakeAPI{}
	uc := NewSkillAnalysisUsecase(api, 1000)
	ws := NewWorkspace()

	uc.UploadResumes(context.Background(), ws, files("a.pdf", "b.pdf", "c.pdf"))
	assert.Len(t, ws.State().CV.List, 3)
}

func TestUploadResumes_CancelledContext(t *testing.T) {
	api := &fakeAPI{}
	uc := NewSkillAnalysisUsecase(api, 0.001)
	ws := NewWorkspace()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := uc.UploadResumes(ctx, ws, files("a.pdf", "b.pdf"))
	require.Len(t, outcomes, 2)
	assert.Error(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.Empty(t, ws.State().CV.List)
	assert.Contains(t, ws.State().CV.Error, "a.pdf: ")
}

func TestUploadJobDescription_AppendsAndSelects(t *testing.T) {
	api := &fakeAPI{
		uploadJD: func(dto.FileUpload, string) (model.JobDescription, error) {
			return model.JobDescription{ID: "jd2", Title: "Frontend Role"}, nil
		},
	}
	uc := newTestUsecase(api)
	ws := NewWorkspace()
	ws.jd.List = []model.JobDescription{{ID: "jd1", Title: "Backend Role"}}

	ok := uc.UploadJobDescription(context.Background(), ws, &dto.FileUpload{Name: "fe.pdf", Reader: strings.NewReader("x")}, "")
	require.True(t, ok)

	s := ws.State()
	require.Len(t, s.JD.List, 2)
	assert.Equal(t, "jd1", s.JD.List[0].ID)
	assert.Equal(t, "jd2", s.JD.List[1].ID)
	assert.Equal(t, "Frontend Role", s.JD.List[1].Title)
	assert.Equal(t, "jd2", s.JD.SelectedID)
	assert.Equal(t, "Frontend Role", s.JD.SelectedTitle)
	assert.False(t, s.JD.Uploading)
}

func TestUploadJobDescription_TitleFallsBackToFileName(t *testing.T) {
	api := &fakeAPI{
		uploadJD: func(dto.FileUpload, string) (model.JobDescription, error) {
			return model.JobDescription{ID: "jd3"}, nil
		},
	}
	uc := newTestUsecase(api)
	ws := NewWorkspace()

	uc.UploadJobDescription(context.Background(), ws, &dto.FileUpload{Name: "ops.pdf"}, "")
	assert.Equal(t, "ops.pdf", ws.State().JD.SelectedTitle)
}

func TestUploadJobDescription_FailureClearsSelection(t *testing.T) {
	api := &fakeAPI{
		uploadJD: func(dto.FileUpload, string) (model.JobDescription, error) {
			return model.JobDescription{}, errors.New("JD upload failed (status 500)")
		},
	}
	uc := newTestUsecase(api)
	ws := NewWorkspace()
	ws.jd.SelectedID = "jd1"
	ws.jd.List = []model.JobDescription{{ID: "jd1"}}

	uc.UploadJobDescription(context.Background(), ws, &dto.FileUpload{Name: "x.pdf"}, "")

	s := ws.State()
	assert.Empty(t, s.JD.SelectedID)
	assert.Equal(t, "JD upload failed (status 500)", s.JD.Error)
	assert.Len(t, s.JD.List, 1)
}

func TestUploadJobDescription_NilFileIsNoop(t *testing.T) {
	api := &fakeAPI{}
	uc := newTestUsecase(api)
	ws := NewWorkspace()

	assert.False(t, uc.UploadJobDescription(context.Background(), ws, nil, "title"))
	assert.Zero(t, api.uploadJDCalls)
}

func TestSelectJobDescription(t *testing.T) {
	uc := newTestUsecase(&fakeAPI{})
	ws := NewWorkspace()

	uc.SelectJobDescription(context.Background(), ws, "jd7")
	s := ws.State()
	assert.Equal(t, "jd7", s.JD.SelectedID)
	assert.Equal(t, "Title jd7", s.JD.SelectedTitle)
	assert.False(t, s.JD.Loading)

	uc.SelectJobDescription(context.Background(), ws, "")
	s = ws.State()
	assert.Empty(t, s.JD.SelectedID)
	assert.Empty(t, s.JD.SelectedTitle)
}

func TestSelectJobDescription_LookupFailure(t *testing.T) {
	api := &fakeAPI{
		getJD: func(string) (model.JobDescription, error) {
			return model.JobDescription{}, errors.New("JD not found")
		},
	}
	uc := newTestUsecase(api)
	ws := NewWorkspace()

	uc.SelectJobDescription(context.Background(), ws, "missing")
	s := ws.State()
	assert.Empty(t, s.JD.SelectedID)
	assert.Equal(t, "JD not found", s.JD.Error)
}

func TestLoad(t *testing.T) {
	api := &fakeAPI{
		jds:      []model.JobDescription{{ID: "jd1"}},
		cvs:      []model.Resume{{ID: "cv1"}, {ID: "cv2"}},
		chatsErr: errors.New("Chat list failed (status 500)"),
	}
	uc := newTestUsecase(api)
	ws := NewWorkspace()

	uc.Load(context.Background(), ws)
	s := ws.State()
	assert.Len(t, s.JD.List, 1)
	assert.Len(t, s.CV.List, 2)
	assert.Empty(t, s.Chat.Summaries)
	assert.Empty(t, s.Chat.Error)
}

func TestLoad_KeepsUploadMadeWhileListing(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		listJDs: func() ([]model.JobDescription, error) {
			close(started)
			<-release
			return []model.JobDescription{{ID: "jd1", Title: "Backend"}}, nil
		},
	}
	uc := newTestUsecase(api)
	ws := NewWorkspace()

	done := make(chan struct{})
	go func() {
		uc.Load(context.Background(), ws)
		close(done)
	}()
	<-started
	uc.UploadJobDescription(context.Background(), ws, &dto.FileUpload{Name: "new.pdf", Reader: strings.NewReader("x")}, "New")
	close(release)
	<-done

	s := ws.State()
	ids := make([]string, 0, len(s.JD.List))
	for _, jd := range s.JD.List {
		ids = append(ids, jd.ID)
	}
	assert.Equal(t, []string{"jd1", "jd-new"}, ids)
	assert.Equal(t, "jd-new", s.JD.SelectedID)
}

func TestLoad_MergesByID(t *testing.T) {
	api := &fakeAPI{
		jds:   []model.JobDescription{{ID: "jd1", Title: "Backend"}},
		cvs:   []model.Resume{{ID: "cv1", FileName: "ada.pdf"}},
		chats: []model.ConversationSummary{{ID: "conv-1", MessageCount: 4}},
	}
	uc := newTestUsecase(api)
	ws := NewWorkspace()
	ws.jd.List = []model.JobDescription{{ID: "jd1", Title: "stale"}, {ID: "jd9", Title: "Local"}}
	ws.cv.List = []model.Resume{{ID: "cv2", FileName: "bob.pdf"}}
	ws.chat.Summaries = []model.ConversationSummary{{ID: "conv-1", MessageCount: 1}, {ID: "conv-2", MessageCount: 1}}

	uc.Load(context.Background(), ws)
	s := ws.State()
	require.Len(t, s.JD.List, 2)
	assert.Equal(t, "Backend", s.JD.List[0].Title)
	assert.Equal(t, "jd9", s.JD.List[1].ID)
	require.Len(t, s.CV.List, 2)
	assert.Equal(t, "cv1", s.CV.List[0].ID)
	assert.Equal(t, "cv2", s.CV.List[1].ID)
	require.Len(t, s.Chat.Summaries, 2)
	assert.Equal(t, 4, s.Chat.Summaries[0].MessageCount)
	assert.Equal(t, "conv-2", s.Chat.Summaries[1].ID)
}

func TestLoad_ListErrors(t *testing.T) {
	api := &fakeAPI{listErr: errors.New("JD list failed: could not reach server")}
	uc := newTestUsecase(api)
	ws := NewWorkspace()

	uc.Load(context.Background(), ws)
	s := ws.State()
	assert.Equal(t, "JD list failed: could not reach server", s.JD.ListError)
	assert.NotEmpty(t, s.CV.Error)
}

func TestSelectResume(t *testing.T) {
	uc := newTestUsecase(&fakeAPI{})
	ws := NewWorkspace()
	ws.cv.List = []model.Resume{{ID: "cv1"}}
	ws.chat.SelectedID = "conv-1"
	ws.chat.Messages = []model.Message{{Content: "old"}}

	require.NoError(t, uc.SelectResume(ws, "cv1"))
	s := ws.State()
	assert.Equal(t, "cv1", s.CV.SelectedID)
	assert.Empty(t, s.Chat.SelectedID)
	assert.Empty(t, s.Chat.Messages)

	assert.Error(t, uc.SelectResume(ws, "cv-unknown"))
	assert.Equal(t, "cv1", ws.State().CV.SelectedID)
}

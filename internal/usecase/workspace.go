package usecase

import (
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
)

type JDState struct {
	List          []model.JobDescription
	SelectedID    string
	SelectedTitle string
	Uploading     bool
	Loading       bool
	Error         string
	ListError     string
}

type CVState struct {
	List       []model.Resume
	Level      model.Level
	SelectedID string
	Uploading  bool
	Error      string
}

type AnalysisState struct {
	Result  *model.AnalysisResult
	Running bool
	Error   string
}

type ChatState struct {
	Summaries  []model.ConversationSummary
	SelectedID string
	Messages   []model.Message
	Loading    bool
	Error      string
}

// State is a copy of a workspace taken under its lock.
type State struct {
	JD       JDState
	CV       CVState
	Analysis AnalysisState
	Chat     ChatState
}

// Workspace is the view-state of one user session. Every field is guarded
// by mu. Remote calls are made with mu released, and their results are
// merged into whatever the state is when they return.
type Workspace struct {
	mu       sync.Mutex
	jd       JDState
	cv       CVState
	analysis AnalysisState
	chat     ChatState
}

func NewWorkspace() *Workspace {
	return &Workspace{cv: CVState{Level: model.LevelJunior}}
}

func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := State{JD: w.jd, CV: w.cv, Analysis: w.analysis, Chat: w.chat}
	s.JD.List = append([]model.JobDescription(nil), w.jd.List...)
	s.CV.List = append([]model.Resume(nil), w.cv.List...)
	s.Chat.Summaries = append([]model.ConversationSummary(nil), w.chat.Summaries...)
	s.Chat.Messages = append([]model.Message(nil), w.chat.Messages...)
	if w.analysis.Result != nil {
		r := *w.analysis.Result
		r.Candidates = append([]model.CandidateResult(nil), w.analysis.Result.Candidates...)
		s.Analysis.Result = &r
	}
	return s
}

// ResumeName resolves a CV id to its file name, falling back to the id.
func (s State) ResumeName(cvID string) string {
	for _, cv := range s.CV.List {
		if cv.ID == cvID {
			return cv.FileName
		}
	}
	return cvID
}

// VisibleConversations lists the conversations of the selected JD and CV,
// most recently updated first.
func (s State) VisibleConversations() []model.ConversationSummary {
	visible := []model.ConversationSummary{}
	if s.JD.SelectedID == "" || s.CV.SelectedID == "" {
		return visible
	}
	for _, c := range s.Chat.Summaries {
		if c.JDID == s.JD.SelectedID && c.CVID == s.CV.SelectedID {
			visible = append(visible, c)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].UpdatedAt.After(visible[j].UpdatedAt)
	})
	return visible
}

func (w *Workspace) Snapshot() dto.WorkspaceView {
	s := w.State()
	view := dto.WorkspaceView{
		JD: dto.JDStateView{
			List:          nonNil(s.JD.List),
			SelectedID:    s.JD.SelectedID,
			SelectedTitle: s.JD.SelectedTitle,
			Uploading:     s.JD.Uploading || s.JD.Loading,
			Error:         s.JD.Error,
			ListError:     s.JD.ListError,
		},
		CV: dto.CVStateView{
			List:       nonNil(s.CV.List),
			Level:      s.CV.Level,
			SelectedID: s.CV.SelectedID,
			Uploading:  s.CV.Uploading,
			Error:      s.CV.Error,
		},
		Analysis: dto.AnalysisStateView{
			Running: s.Analysis.Running,
			Error:   s.Analysis.Error,
		},
		Chat: dto.ChatStateView{
			Conversations: s.VisibleConversations(),
			SelectedID:    s.Chat.SelectedID,
			Messages:      nonNil(s.Chat.Messages),
			Loading:       s.Chat.Loading,
			Error:         s.Chat.Error,
		},
	}
	if s.Analysis.Result != nil {
		view.Analysis.Result = s.analysisView(s.Analysis.Result)
	}
	return view
}

func (s State) analysisView(r *model.AnalysisResult) *dto.AnalysisView {
	v := &dto.AnalysisView{
		AnalysisID: r.AnalysisID,
		JDID:       r.JDID,
		JDName:     r.JDName,
		Status:     r.Status,
		Timestamp:  r.Timestamp,
		Notes:      r.Notes,
		Candidates: make([]dto.CandidateView, 0, len(r.Candidates)),
	}
	for _, c := range r.Candidates {
		cv := dto.CandidateView{CandidateResult: c, FileName: s.ResumeName(c.CVID)}
		if p, ok := c.Percent(); ok {
			cv.Percent = &p
		}
		v.Candidates = append(v.Candidates, cv)
	}
	return v
}

func (w *Workspace) replaceMessage(localID string, msg model.Message) bool {
	for i := range w.chat.Messages {
		if w.chat.Messages[i].LocalID == localID {
			w.chat.Messages[i] = msg
			return true
		}
	}
	return false
}

// mergeByID returns remote followed by the local entries remote lacks.
// Remote wins when both hold the same id.
func mergeByID[T any](remote, local []T, id func(T) string) []T {
	seen := make(map[string]bool, len(remote))
	out := make([]T, 0, len(remote)+len(local))
	for _, item := range remote {
		seen[id(item)] = true
		out = append(out, item)
	}
	for _, item := range local {
		if !seen[id(item)] {
			out = append(out, item)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// WorkspaceRegistry hands out one workspace per session id and forgets
// workspaces left idle.
type WorkspaceRegistry struct {
	mu         sync.Mutex
	workspaces map[string]*registryEntry
	now        func() time.Time
}

type registryEntry struct {
	ws       *Workspace
	lastUsed time.Time
}

func NewWorkspaceRegistry() *WorkspaceRegistry {
	return &WorkspaceRegistry{workspaces: make(map[string]*registryEntry), now: time.Now}
}

// Get returns the session's workspace and whether it was just created.
func (r *WorkspaceRegistry) Get(sessionID string) (*Workspace, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.workspaces[sessionID]; ok {
		e.lastUsed = r.now()
		return e.ws, false
	}
	ws := NewWorkspace()
	r.workspaces[sessionID] = &registryEntry{ws: ws, lastUsed: r.now()}
	return ws, true
}

// Sweep drops workspaces not used for maxIdle and returns how many went.
func (r *WorkspaceRegistry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, e := range r.workspaces {
		if e.lastUsed.Before(cutoff) {
			delete(r.workspaces, id)
			removed++
		}
	}
	return removed
}

func (r *WorkspaceRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

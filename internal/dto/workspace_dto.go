package dto

import (
	"time"

	"github.com/fadilmartias/datapulse/internal/model"
)

// Request bodies accepted by the BFF.

type SelectionRequest struct {
	ID string `json:"id"`
}

type LevelRequest struct {
	Level string `json:"level"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

// Views rendered by the BFF.

type CandidateView struct {
	model.CandidateResult
	FileName string `json:"file_name"`
	Percent  *int   `json:"percent"`
}

type AnalysisView struct {
	AnalysisID string          `json:"analysis_id"`
	JDID       string          `json:"jd_id"`
	JDName     string          `json:"jd_name,omitempty"`
	Status     string          `json:"status,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	Notes      string          `json:"notes,omitempty"`
	Candidates []CandidateView `json:"candidates"`
}

type JDStateView struct {
	List          []model.JobDescription `json:"list"`
	SelectedID    string                 `json:"selected_id"`
	SelectedTitle string                 `json:"selected_title"`
	Uploading     bool                   `json:"uploading"`
	Error         string                 `json:"error,omitempty"`
	ListError     string                 `json:"list_error,omitempty"`
}

type CVStateView struct {
	List       []model.Resume `json:"list"`
	Level      model.Level    `json:"level"`
	SelectedID string         `json:"selected_id"`
	Uploading  bool           `json:"uploading"`
	Error      string         `json:"error,omitempty"`
}

type AnalysisStateView struct {
	Result  *AnalysisView `json:"result"`
	Running bool          `json:"running"`
	Error   string        `json:"error,omitempty"`
}

type ChatStateView struct {
	Conversations []model.ConversationSummary `json:"conversations"`
	SelectedID    string                      `json:"selected_id"`
	Messages      []model.Message             `json:"messages"`
	Loading       bool                        `json:"loading"`
	Error         string                      `json:"error,omitempty"`
}

type WorkspaceView struct {
	JD       JDStateView       `json:"jd"`
	CV       CVStateView       `json:"cv"`
	Analysis AnalysisStateView `json:"analysis"`
	Chat     ChatStateView     `json:"chat"`
}

type UploadOutcomeView struct {
	FileName string        `json:"file_name"`
	Resume   *model.Resume `json:"resume,omitempty"`
	Error    string        `json:"error,omitempty"`
}

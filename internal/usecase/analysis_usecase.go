package usecase

import (
	"context"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
)

// StartAnalysis scores every known CV against the selected JD. It does
// nothing and returns false when no JD is selected, no CV exists or an
// analysis is already running.
func (uc *SkillAnalysisUsecase) StartAnalysis(ctx context.Context, ws *Workspace) bool {
	ws.mu.Lock()
	if ws.jd.SelectedID == "" || len(ws.cv.List) == 0 || ws.analysis.Running {
		ws.mu.Unlock()
		return false
	}
	req := dto.AnalysisRequest{
		JDID:    ws.jd.SelectedID,
		CVIDs:   make([]string, 0, len(ws.cv.List)),
		Options: dto.AnalysisOptions{IncludeScores: true, Language: "en"},
	}
	for _, cv := range ws.cv.List {
		req.CVIDs = append(req.CVIDs, cv.ID)
	}
	ws.analysis = AnalysisState{Running: true}
	ws.mu.Unlock()

	result, err := uc.api.CreateAnalysis(ctx, req)
	uc.finishAnalysis(ws, result, err)
	return true
}

// LoadAnalysis shows a previously stored analysis.
func (uc *SkillAnalysisUsecase) LoadAnalysis(ctx context.Context, ws *Workspace, id string) bool {
	if id == "" {
		return false
	}
	ws.mu.Lock()
	if ws.analysis.Running {
		ws.mu.Unlock()
		return false
	}
	ws.analysis = AnalysisState{Running: true}
	ws.mu.Unlock()

	result, err := uc.api.GetAnalysis(ctx, id)
	uc.finishAnalysis(ws, result, err)
	return true
}

func (uc *SkillAnalysisUsecase) finishAnalysis(ws *Workspace, result *model.AnalysisResult, err error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.analysis.Running = false
	if err != nil {
		ws.analysis.Error = err.Error()
		return
	}
	if result.Timestamp.IsZero() {
		result.Timestamp = uc.now()
	}
	ws.analysis.Result = result
}

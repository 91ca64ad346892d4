package dto

type AnalysisOptions struct {
	IncludeScores bool   `json:"includeScores"`
	Language      string `json:"language"`
}

type AnalysisRequest struct {
	JDID    string          `json:"jdId"`
	CVIDs   []string        `json:"cvIds"`
	Options AnalysisOptions `json:"options"`
}

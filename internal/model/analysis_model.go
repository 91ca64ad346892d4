package model

import (
	"math"
	"time"
)

type AnalysisResult struct {
	AnalysisID string            `json:"analysis_id"`
	JDID       string            `json:"jd_id"`
	JDName     string            `json:"jd_name,omitempty"`
	Status     string            `json:"status,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	Notes      string            `json:"notes,omitempty"`
	Candidates []CandidateResult `json:"candidates"`
}

// CandidateResult carries a score already normalized to 0-100.
// Score is nil when the server could not score the candidate.
type CandidateResult struct {
	CandidateName    string   `json:"candidate_name,omitempty"`
	CVID             string   `json:"cv_id"`
	Score            *float64 `json:"score"`
	SkillsFound      []string `json:"skills_found"`
	MissingSkills    []string `json:"missing_skills"`
	AdditionalSkills []string `json:"additional_skills,omitempty"`
	ExperienceMatch  string   `json:"experience_match,omitempty"`
	Reasoning        string   `json:"reasoning,omitempty"`
	Error            string   `json:"error,omitempty"`
}

// Percent returns the rounded score and false when there is none.
func (c CandidateResult) Percent() (int, bool) {
	if c.Score == nil {
		return 0, false
	}
	return int(math.Round(*c.Score)), true
}

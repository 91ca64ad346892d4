package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

func (s *DataPulseService) CreateAnalysis(ctx context.Context, in dto.AnalysisRequest) (*model.AnalysisResult, error) {
	req, err := s.newRequest(ctx, opCreateAnalysis, true)
	if err != nil {
		return nil, err
	}
	body, err := s.execute(opCreateAnalysis, req.SetBody(in), resty.MethodPost, "/v1/analysis")
	if err != nil {
		return nil, err
	}
	result, err := ParseAnalysis(body)
	if err != nil {
		return nil, &APIError{Op: opCreateAnalysis, Message: fmt.Sprintf("%s failed: unreadable response", opCreateAnalysis), cause: err}
	}
	if result.JDID == "" {
		result.JDID = in.JDID
	}
	return result, nil
}

func (s *DataPulseService) GetAnalysis(ctx context.Context, id string) (*model.AnalysisResult, error) {
	req, err := s.newRequest(ctx, opGetAnalysis, true)
	if err != nil {
		return nil, err
	}
	body, err := s.execute(opGetAnalysis, req.SetPathParam("id", id), resty.MethodGet, "/v1/analysis/{id}")
	if err != nil {
		return nil, err
	}
	result, err := ParseAnalysis(body)
	if err != nil {
		return nil, &APIError{Op: opGetAnalysis, Message: fmt.Sprintf("%s failed: unreadable response", opGetAnalysis), cause: err}
	}
	return result, nil
}

// ParseAnalysis reads either result shape the API produces into one
// AnalysisResult. A flat list scores candidates in [0,1]. A structured
// report scores them in [0,100]. Both come out on the 0-100 scale.
func ParseAnalysis(body []byte) (*model.AnalysisResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("analysis response is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	out := &model.AnalysisResult{
		AnalysisID: root.Get("analysisId").String(),
		Status:     root.Get("status").String(),
		Timestamp:  timeOf(root.Get("timestamp")),
		Candidates: []model.CandidateResult{},
	}

	results := root.Get("results")
	switch {
	case results.IsArray():
		for _, item := range results.Array() {
			out.Candidates = append(out.Candidates, flatCandidate(item))
		}
	case results.IsObject():
		structuredReport(out, results)
	case root.Get("candidates").IsArray():
		structuredReport(out, root)
	}
	return out, nil
}

func flatCandidate(item gjson.Result) model.CandidateResult {
	c := model.CandidateResult{
		CVID:          item.Get("cvId").String(),
		SkillsFound:   skillList(item.Get("skillsFound")),
		MissingSkills: skillList(item.Get("missingSkills")),
		Error:         item.Get("error").String(),
	}
	if score := item.Get("matchScore"); score.Type == gjson.Number {
		pct := score.Float() * 100
		c.Score = &pct
	}
	return c
}

func structuredReport(out *model.AnalysisResult, report gjson.Result) {
	if id := report.Get("analysis_id").String(); id != "" && out.AnalysisID == "" {
		out.AnalysisID = id
	}
	out.JDID = report.Get("jd_id").String()
	out.JDName = report.Get("jd_name").String()
	out.Notes = report.Get("overall_analysis_notes").String()
	for _, item := range report.Get("candidates").Array() {
		c := model.CandidateResult{
			CandidateName:    item.Get("candidate_name").String(),
			CVID:             item.Get("cv_id").String(),
			SkillsFound:      skillList(item.Get("skills_found")),
			MissingSkills:    skillList(item.Get("missing_skills")),
			AdditionalSkills: skillList(item.Get("additional_skills")),
			ExperienceMatch:  item.Get("experience_match").String(),
			Reasoning:        item.Get("detailed_reasoning").String(),
			Error:            item.Get("error").String(),
		}
		if score := item.Get("match_score"); score.Type == gjson.Number {
			pct := score.Float()
			c.Score = &pct
		}
		out.Candidates = append(out.Candidates, c)
	}
}

// skillList accepts a JSON array of strings or a comma separated string.
func skillList(v gjson.Result) []string {
	skills := []string{}
	if v.IsArray() {
		for _, item := range v.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				skills = append(skills, s)
			}
		}
		return skills
	}
	for _, s := range strings.Split(v.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func timeOf(v gjson.Result) time.Time {
	if v.Type != gjson.String {
		return time.Time{}
	}
	t, err := dto.ParseTime(v.String())
	if err != nil {
		return time.Time{}
	}
	return t
}

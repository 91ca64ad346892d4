package service

import (
	"context"

	"github.com/fadilmartias/datapulse/internal/dto"
	"github.com/fadilmartias/datapulse/internal/model"
	"github.com/go-resty/resty/v2"
)

func (s *DataPulseService) UploadJD(ctx context.Context, file dto.FileUpload, title string) (model.JobDescription, error) {
	req, err := s.newRequest(ctx, opUploadJD, true)
	if err != nil {
		return model.JobDescription{}, err
	}
	req.SetFileReader("file", file.Name, file.Reader)
	if title != "" {
		req.SetFormData(map[string]string{"title": title})
	}
	body, err := s.execute(opUploadJD, req, resty.MethodPost, "/v1/jds")
	if err != nil {
		return model.JobDescription{}, err
	}
	var out dto.JobDescriptionDTO
	if err := decode(opUploadJD, body, &out); err != nil {
		return model.JobDescription{}, err
	}
	return out.ToModel(), nil
}

func (s *DataPulseService) ListJDs(ctx context.Context) ([]model.JobDescription, error) {
	req, err := s.newRequest(ctx, opListJDs, true)
	if err != nil {
		return nil, err
	}
	body, err := s.execute(opListJDs, req, resty.MethodGet, "/v1/jds")
	if err != nil {
		return nil, err
	}
	var list []dto.JobDescriptionDTO
	if err := decodeList(opListJDs, body, "jds", &list); err != nil {
		return nil, err
	}
	jds := make([]model.JobDescription, 0, len(list))
	for _, jd := range list {
		jds = append(jds, jd.ToModel())
	}
	return jds, nil
}

func (s *DataPulseService) GetJD(ctx context.Context, id string) (model.JobDescription, error) {
	req, err := s.newRequest(ctx, opGetJD, true)
	if err != nil {
		return model.JobDescription{}, err
	}
	body, err := s.execute(opGetJD, req.SetPathParam("id", id), resty.MethodGet, "/v1/jds/{id}")
	if err != nil {
		return model.JobDescription{}, err
	}
	var out dto.JobDescriptionDTO
	if err := decode(opGetJD, body, &out); err != nil {
		return model.JobDescription{}, err
	}
	return out.ToModel(), nil
}

func (s *DataPulseService) UploadCV(ctx context.Context, file dto.FileUpload, level model.Level) (model.Resume, error) {
	req, err := s.newRequest(ctx, opUploadCV, true)
	if err != nil {
		return model.Resume{}, err
	}
	req.SetFileReader("file", file.Name, file.Reader).
		SetFormData(map[string]string{"level": string(level)})
	body, err := s.execute(opUploadCV, req, resty.MethodPost, "/v1/cvs")
	if err != nil {
		return model.Resume{}, err
	}
	var out dto.ResumeDTO
	if err := decode(opUploadCV, body, &out); err != nil {
		return model.Resume{}, err
	}
	return out.ToModel(), nil
}

func (s *DataPulseService) ListCVs(ctx context.Context) ([]model.Resume, error) {
	req, err := s.newRequest(ctx, opListCVs, true)
	if err != nil {
		return nil, err
	}
	body, err := s.execute(opListCVs, req, resty.MethodGet, "/v1/cvs")
	if err != nil {
		return nil, err
	}
	var list []dto.ResumeDTO
	if err := decodeList(opListCVs, body, "cvs", &list); err != nil {
		return nil, err
	}
	cvs := make([]model.Resume, 0, len(list))
	for _, cv := range list {
		cvs = append(cvs, cv.ToModel())
	}
	return cvs, nil
}

package dto

import (
	"io"

	"github.com/fadilmartias/datapulse/internal/model"
)

// FileUpload is a named file body handed to the upload endpoints.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

type JobDescriptionDTO struct {
	JDID       string `json:"jdId"`
	Title      string `json:"title"`
	UploadedAt Time   `json:"uploadedAt"`
	Content    string `json:"content,omitempty"`
}

func (d JobDescriptionDTO) ToModel() model.JobDescription {
	return model.JobDescription{ID: d.JDID, Title: d.Title, UploadedAt: d.UploadedAt.Time, Content: d.Content}
}

type ResumeDTO struct {
	CVID       string `json:"cvId"`
	FileName   string `json:"fileName"`
	Level      string `json:"level"`
	UploadedAt Time   `json:"uploadedAt"`
}

func (d ResumeDTO) ToModel() model.Resume {
	level, err := model.ParseLevel(d.Level)
	if err != nil {
		level = model.Level(d.Level)
	}
	return model.Resume{ID: d.CVID, FileName: d.FileName, Level: level, UploadedAt: d.UploadedAt.Time}
}

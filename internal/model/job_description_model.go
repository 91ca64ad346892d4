package model

import "time"

type JobDescription struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	UploadedAt time.Time `json:"uploaded_at"`
	Content    string    `json:"content,omitempty"`
}

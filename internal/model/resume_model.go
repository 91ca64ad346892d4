package model

import (
	"fmt"
	"strings"
	"time"
)

type Level string

const (
	LevelJunior Level = "jr"
	LevelMid    Level = "mid"
	LevelSenior Level = "sr"
)

// ParseLevel accepts both the short codes and their long names.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jr", "junior":
		return LevelJunior, nil
	case "mid", "middle":
		return LevelMid, nil
	case "sr", "senior":
		return LevelSenior, nil
	}
	return "", fmt.Errorf("unknown level %q (want jr, mid or sr)", s)
}

type Resume struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	Level      Level     `json:"level"`
	UploadedAt time.Time `json:"uploaded_at"`
}

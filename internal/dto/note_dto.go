package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"notevault-be/internal/pkg/apperror"
)

type AttachmentInput struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type"`
	Content string `json:"content" validate:"required"`
}

// AttachmentList guards the attachments payload shape before anything iterates
// over it: a client sending a single object (or any non-array value) gets a
// 400, not a 500 from a failed iteration downstream.
type AttachmentList []AttachmentInput

func (l *AttachmentList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*l = nil
		return nil
	}
	if trimmed[0] != '[' {
		return apperror.NewValidation("Attachments must be a list")
	}

	type plain AttachmentList
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return apperror.NewValidation("Invalid attachments format")
	}
	*l = AttachmentList(p)
	return nil
}

// SaveNoteRequest is the body of both POST /notes and PUT /notes/{id}; an
// update replaces the whole document, attachments included.
type SaveNoteRequest struct {
	Title       string         `json:"title" validate:"required"`
	Content     string         `json:"content" validate:"required"`
	Priority    string         `json:"priority" validate:"required,oneof=low medium high"`
	CreatedAt   time.Time      `json:"createdAt" validate:"required"`
	Attachments AttachmentList `json:"attachments" validate:"omitempty,dive"`
}

// AttachmentMeta is an attachment entry with its content stripped; binary
// payloads only ever leave the system through the download endpoint.
type AttachmentMeta struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type NoteResponse struct {
	Id          string           `json:"id"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Priority    string           `json:"priority"`
	CreatedAt   time.Time        `json:"createdAt"`
	Version     int64            `json:"version"`
	Attachments []AttachmentMeta `json:"attachments"`
}

type StatsResponse struct {
	Stats map[string]interface{} `json:"stats"`
}

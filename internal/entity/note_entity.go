package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotePriority string

const (
	PriorityLow    NotePriority = "low"
	PriorityMedium NotePriority = "medium"
	PriorityHigh   NotePriority = "high"
)

// Attachment is one binary file embedded in a note. Its id is assigned once at
// build time and is the sole lookup key for downloads, independent of the
// owning note.
type Attachment struct {
	Id      primitive.ObjectID
	Name    string
	Type    string
	Content []byte
}

type Note struct {
	Id          primitive.ObjectID
	Title       string
	Content     string
	Priority    NotePriority
	CreatedAt   time.Time
	Version     int64
	Attachments []Attachment
}

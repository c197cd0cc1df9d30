package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attachment content is stored as BSON binary (subtype 0x00), never as base64
// text. Decoding from the wire format happens exactly once, at write time.
type Attachment struct {
	Id      primitive.ObjectID `bson:"_id"`
	Name    string             `bson:"name"`
	Type    string             `bson:"type"`
	Content primitive.Binary   `bson:"content"`
}

type Note struct {
	Id          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Content     string             `bson:"content"`
	Priority    string             `bson:"priority"`
	CreatedAt   time.Time          `bson:"createdAt"`
	Version     int64              `bson:"version"`
	Attachments []Attachment       `bson:"attachments"`
}

func (Note) CollectionName() string {
	return "notes"
}

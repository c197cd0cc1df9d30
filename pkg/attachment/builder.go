package attachment

import (
	"fmt"

	"notevault-be/internal/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RawFile is one client-supplied attachment before decoding: the file name,
// the declared media type (not validated against content) and the base64 wire
// payload.
type RawFile struct {
	Name    string
	Type    string
	Content string
}

// Builder turns raw attachment inputs into storable entries. Each entry gets a
// fresh ObjectID at build time; ids are never reused, so an update that
// resubmits an existing file still produces a new id.
type Builder struct {
	codec *Codec
}

func NewBuilder(codec *Codec) *Builder {
	return &Builder{codec: codec}
}

func (b *Builder) Build(files []RawFile) ([]entity.Attachment, error) {
	entries := make([]entity.Attachment, 0, len(files))
	for _, f := range files {
		payload, err := b.codec.Decode(f.Content)
		if err != nil {
			return nil, fmt.Errorf("attachment %q: %w", f.Name, err)
		}
		entries = append(entries, entity.Attachment{
			Id:      primitive.NewObjectID(),
			Name:    f.Name,
			Type:    f.Type,
			Content: payload,
		})
	}
	return entries, nil
}

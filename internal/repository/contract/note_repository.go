package contract

import (
	"context"
	"errors"

	"notevault-be/internal/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrVersionConflict signals that an update carried an expected version that
// no longer matches the stored document.
var ErrVersionConflict = errors.New("note version does not match expected version")

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindById(ctx context.Context, id primitive.ObjectID) (*entity.Note, error)
	// FindAll returns notes newest-created-first (ties broken by id, so the
	// order is deterministic). A non-empty search narrows to notes whose
	// title or content contains the term, case-insensitively.
	FindAll(ctx context.Context, search string) ([]*entity.Note, error)
	// Update replaces the stored document's mutable fields wholesale,
	// attachments included, and bumps its version. It returns the document
	// state after the write, nil when no note has the id, or
	// ErrVersionConflict when expectedVersion is set and stale.
	Update(ctx context.Context, note *entity.Note, expectedVersion *int64) (*entity.Note, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	// FindAttachmentById locates the single embedded attachment entry with
	// the given id across all notes. Returns nil when no note embeds it.
	FindAttachmentById(ctx context.Context, id primitive.ObjectID) (*entity.Attachment, error)
}

package service

import (
	"context"
	"errors"

	"notevault-be/internal/dto"
	"notevault-be/internal/entity"
	"notevault-be/internal/pkg/apperror"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/repository/contract"
	"notevault-be/pkg/attachment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.SaveNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, search string) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, id string) (*dto.NoteResponse, error)
	Update(ctx context.Context, id string, req *dto.SaveNoteRequest, expectedVersion *int64) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id string) error
	GetAttachment(ctx context.Context, id string) (*entity.Attachment, error)
}

type noteService struct {
	noteRepo contract.NoteRepository
	builder  *attachment.Builder
	logger   logger.ILogger
}

func NewNoteService(noteRepo contract.NoteRepository, builder *attachment.Builder, log logger.ILogger) INoteService {
	return &noteService{
		noteRepo: noteRepo,
		builder:  builder,
		logger:   log,
	}
}

func (s *noteService) Create(ctx context.Context, req *dto.SaveNoteRequest) (*dto.NoteResponse, error) {
	entries, err := s.buildAttachments(req.Attachments)
	if err != nil {
		return nil, err
	}

	note := entity.Note{
		Id:          primitive.NewObjectID(),
		Title:       req.Title,
		Content:     req.Content,
		Priority:    entity.NotePriority(req.Priority),
		CreatedAt:   req.CreatedAt,
		Version:     1,
		Attachments: entries,
	}

	if err := s.noteRepo.Create(ctx, &note); err != nil {
		return nil, err
	}

	s.logger.Info("note", "note created", map[string]interface{}{
		"note_id":     note.Id.Hex(),
		"attachments": len(note.Attachments),
	})

	return toNoteResponse(&note), nil
}

func (s *noteService) List(ctx context.Context, search string) ([]*dto.NoteResponse, error) {
	notes, err := s.noteRepo.FindAll(ctx, search)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteResponse(n))
	}
	return res, nil
}

func (s *noteService) Show(ctx context.Context, id string) (*dto.NoteResponse, error) {
	noteId, err := parseNoteId(id)
	if err != nil {
		return nil, err
	}

	note, err := s.noteRepo.FindById(ctx, noteId)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFound("Note not found")
	}
	return toNoteResponse(note), nil
}

func (s *noteService) Update(ctx context.Context, id string, req *dto.SaveNoteRequest, expectedVersion *int64) (*dto.NoteResponse, error) {
	noteId, err := parseNoteId(id)
	if err != nil {
		return nil, err
	}

	// The attachment collection is replaced wholesale; any entry present in
	// the payload gets a fresh id, even if it existed before.
	entries, err := s.buildAttachments(req.Attachments)
	if err != nil {
		return nil, err
	}

	note := entity.Note{
		Id:          noteId,
		Title:       req.Title,
		Content:     req.Content,
		Priority:    entity.NotePriority(req.Priority),
		CreatedAt:   req.CreatedAt,
		Attachments: entries,
	}

	updated, err := s.noteRepo.Update(ctx, &note, expectedVersion)
	if err != nil {
		if errors.Is(err, contract.ErrVersionConflict) {
			return nil, apperror.NewConflict("Note was modified by another request")
		}
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NewNotFound("Note not found")
	}

	return toNoteResponse(updated), nil
}

func (s *noteService) Delete(ctx context.Context, id string) error {
	noteId, err := parseNoteId(id)
	if err != nil {
		return err
	}

	deleted, err := s.noteRepo.Delete(ctx, noteId)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFound("Note not found")
	}

	s.logger.Info("note", "note deleted", map[string]interface{}{"note_id": id})
	return nil
}

func (s *noteService) GetAttachment(ctx context.Context, id string) (*entity.Attachment, error) {
	attachmentId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NewInvalidIdentifier("Invalid attachment ID")
	}

	entry, err := s.noteRepo.FindAttachmentById(ctx, attachmentId)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFound("Attachment not found")
	}
	return entry, nil
}

func (s *noteService) buildAttachments(inputs dto.AttachmentList) ([]entity.Attachment, error) {
	files := make([]attachment.RawFile, len(inputs))
	for i, in := range inputs {
		files[i] = attachment.RawFile{
			Name:    in.Name,
			Type:    in.Type,
			Content: in.Content,
		}
	}

	entries, err := s.builder.Build(files)
	if err != nil {
		var decodeErr *attachment.DecodeError
		switch {
		case errors.Is(err, attachment.ErrTooLarge):
			return nil, apperror.NewValidation("Attachment exceeds maximum allowed size")
		case errors.As(err, &decodeErr):
			return nil, apperror.NewDecode("Malformed attachment content", err)
		default:
			return nil, err
		}
	}
	return entries, nil
}

func parseNoteId(id string) (primitive.ObjectID, error) {
	noteId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.NewInvalidIdentifier("Invalid note ID")
	}
	return noteId, nil
}

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	attachments := make([]dto.AttachmentMeta, 0, len(n.Attachments))
	for _, a := range n.Attachments {
		attachments = append(attachments, dto.AttachmentMeta{
			Id:   a.Id.Hex(),
			Name: a.Name,
			Type: a.Type,
		})
	}

	return &dto.NoteResponse{
		Id:          n.Id.Hex(),
		Title:       n.Title,
		Content:     n.Content,
		Priority:    string(n.Priority),
		CreatedAt:   n.CreatedAt,
		Version:     n.Version,
		Attachments: attachments,
	}
}

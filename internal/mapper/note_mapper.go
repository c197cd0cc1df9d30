package mapper

import (
	"notevault-be/internal/entity"
	"notevault-be/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	attachments := make([]entity.Attachment, len(n.Attachments))
	for i, a := range n.Attachments {
		attachments[i] = entity.Attachment{
			Id:      a.Id,
			Name:    a.Name,
			Type:    a.Type,
			Content: a.Content.Data,
		}
	}

	return &entity.Note{
		Id:          n.Id,
		Title:       n.Title,
		Content:     n.Content,
		Priority:    entity.NotePriority(n.Priority),
		CreatedAt:   n.CreatedAt,
		Version:     n.Version,
		Attachments: attachments,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	attachments := make([]model.Attachment, len(n.Attachments))
	for i, a := range n.Attachments {
		attachments[i] = model.Attachment{
			Id:   a.Id,
			Name: a.Name,
			Type: a.Type,
			Content: primitive.Binary{
				Subtype: 0x00,
				Data:    a.Content,
			},
		}
	}

	return &model.Note{
		Id:          n.Id,
		Title:       n.Title,
		Content:     n.Content,
		Priority:    string(n.Priority),
		CreatedAt:   n.CreatedAt,
		Version:     n.Version,
		Attachments: attachments,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

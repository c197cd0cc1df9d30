package implementation

import (
	"context"
	"errors"
	"regexp"

	"notevault-be/internal/entity"
	"notevault-be/internal/mapper"
	"notevault-be/internal/model"
	"notevault-be/internal/repository/contract"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NoteRepositoryImpl struct {
	collection *mongo.Collection
	mapper     *mapper.NoteMapper
}

func NewNoteRepository(db *mongo.Database) contract.NoteRepository {
	return &NoteRepositoryImpl{
		collection: db.Collection(model.Note{}.CollectionName()),
		mapper:     mapper.NewNoteMapper(),
	}
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *entity.Note) error {
	m := r.mapper.ToModel(note)
	if m.Attachments == nil {
		m.Attachments = []model.Attachment{}
	}
	res, err := r.collection.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		note.Id = oid
	}
	return nil
}

func (r *NoteRepositoryImpl) FindById(ctx context.Context, id primitive.ObjectID) (*entity.Note, error) {
	var m model.Note
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NoteRepositoryImpl) FindAll(ctx context.Context, search string) ([]*entity.Note, error) {
	filter := bson.M{}
	if search != "" {
		// QuoteMeta keeps ?search= a literal substring match; raw user input
		// must not reach the regex engine as a pattern.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter = bson.M{"$or": []bson.M{
			{"title": re},
			{"content": re},
		}}
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var models []*model.Note
	if err := cursor.All(ctx, &models); err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entity.Note, expectedVersion *int64) (*entity.Note, error) {
	m := r.mapper.ToModel(note)
	if m.Attachments == nil {
		m.Attachments = []model.Attachment{}
	}

	filter := bson.M{"_id": note.Id}
	if expectedVersion != nil {
		filter["version"] = *expectedVersion
	}

	update := bson.M{
		"$set": bson.M{
			"title":       m.Title,
			"content":     m.Content,
			"priority":    m.Priority,
			"createdAt":   m.CreatedAt,
			"attachments": m.Attachments,
		},
		"$inc": bson.M{"version": 1},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Note
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return r.mapper.ToEntity(&updated), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// No match: either the note is gone or the version filter excluded it.
	if expectedVersion != nil {
		count, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": note.Id})
		if countErr != nil {
			return nil, countErr
		}
		if count > 0 {
			return nil, contract.ErrVersionConflict
		}
	}
	return nil, nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *NoteRepositoryImpl) FindAttachmentById(ctx context.Context, id primitive.ObjectID) (*entity.Attachment, error) {
	// The positional projection pulls back exactly the one matching embedded
	// entry; sibling attachments and the rest of the note never cross the
	// wire.
	opts := options.FindOne().SetProjection(bson.M{"attachments.$": 1})
	var m model.Note
	err := r.collection.FindOne(ctx, bson.M{"attachments._id": id}, opts).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	if len(m.Attachments) == 0 {
		return nil, nil
	}

	e := r.mapper.ToEntity(&m)
	return &e.Attachments[0], nil
}

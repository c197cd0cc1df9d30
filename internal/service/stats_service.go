package service

import (
	"context"

	"notevault-be/pkg/database"

	"go.mongodb.org/mongo-driver/mongo"
)

type IStatsService interface {
	Get(ctx context.Context) (map[string]interface{}, error)
}

type statsService struct {
	db *mongo.Database
}

func NewStatsService(db *mongo.Database) IStatsService {
	return &statsService{db: db}
}

func (s *statsService) Get(ctx context.Context) (map[string]interface{}, error) {
	return database.Stats(ctx, s.db)
}

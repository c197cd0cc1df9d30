package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoDatabase connects to the cluster with the stable server API pinned
// to v1 and verifies the connection with a ping. The returned shutdown
// function disconnects the client.
func NewMongoDatabase(ctx context.Context, uri, dbName string) (*mongo.Database, func(context.Context) error, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	clientOpts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetMaxPoolSize(100).
		SetMaxConnIdleTime(time.Hour)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	return client.Database(dbName), client.Disconnect, nil
}

// Stats runs the dbStats command against the database.
func Stats(ctx context.Context, db *mongo.Database) (map[string]interface{}, error) {
	var stats map[string]interface{}
	err := db.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&stats)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

package db

import (
	"context"
	"fmt"
	"time"

	"troffee-marketplace-service/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connection represents a document store connection
type Connection struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewConnection creates a new document store connection
func NewConnection(cfg *config.Config) (*Connection, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	// Test the connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping document store: %w", err)
	}

	return &Connection{
		client:   client,
		database: client.Database(cfg.Mongo.Database),
	}, nil
}

// Collection returns a handle to the named collection
func (c *Connection) Collection(name string) *mongo.Collection {
	return c.database.Collection(name)
}

// Close closes the document store connection
func (c *Connection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

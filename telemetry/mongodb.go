// Package telemetry is an optional MongoDB-backed session/event logger
// plus rolling statistics over sensor streams, subscribed to the
// shared event bus. It is entirely inert unless ROBOID_MONGO_URI is
// set; the core runtime (serial/connector/device/hamster/runner/roboid)
// never imports this package, only publishes events it may or may not
// be listening for (spec §4.8/§9).
//
// Adapted from the teacher's database/mongodb.go: same connection-pool
// tuning (MaxPoolSize/MinPoolSize, retry writes/reads, Stable API v1),
// repurposed from robot-registration documents to connection-state and
// line-tracer-completion event documents.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"roboid/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Handler manages a persistent MongoDB connection for event/session
// logging. Mirrors the teacher's MongodbHandler shape (Start/Stop/
// GetDatabase/GetCollection/IsHealthy).
type Handler struct {
	client   *mongo.Client
	database *mongo.Database
	ctx      context.Context
	cancel   context.CancelFunc
}

// Start connects to uri and selects database dbName, with the same
// connection-pool tuning the teacher applies for multi-robot workloads.
func (h *Handler) Start(ctx context.Context, uri, dbName string) error {
	if uri == "" {
		return fmt.Errorf("telemetry: mongo URI is empty")
	}
	if dbName == "" {
		dbName = "roboid"
	}

	shared.DebugPrint("telemetry: connecting to MongoDB at %s", uri)

	h.ctx, h.cancel = context.WithCancel(ctx)

	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetMaxPoolSize(shared.MONGODB_MAX_POOL_SIZE).
		SetMinPoolSize(shared.MONGODB_MIN_POOL_SIZE).
		SetMaxConnIdleTime(0).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(h.ctx, opts)
	if err != nil {
		h.cancel()
		return fmt.Errorf("telemetry: failed to create MongoDB client: %w", err)
	}

	if err := client.Ping(h.ctx, readpref.Primary()); err != nil {
		client.Disconnect(h.ctx)
		h.cancel()
		return fmt.Errorf("telemetry: failed to ping MongoDB: %w", err)
	}

	h.client = client
	h.database = client.Database(dbName)

	shared.DebugPrint("telemetry: connected to MongoDB database %s", dbName)
	return nil
}

// Stop gracefully disconnects from MongoDB.
func (h *Handler) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
	if h.client != nil {
		if err := h.client.Disconnect(context.Background()); err != nil {
			shared.DebugPrint("telemetry: error disconnecting from MongoDB: %v", err)
		}
	}
}

// Collection returns the named collection, or nil if Start has not
// been called successfully.
func (h *Handler) Collection(name string) *mongo.Collection {
	if h.database == nil {
		return nil
	}
	return h.database.Collection(name)
}

// IsHealthy pings MongoDB with a short timeout.
func (h *Handler) IsHealthy() bool {
	if h.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.client.Ping(ctx, readpref.Primary()) == nil
}

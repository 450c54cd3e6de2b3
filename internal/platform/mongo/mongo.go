package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultDatabase is used when MONGO_DATABASE is not set.
const DefaultDatabase = "pos"

// Connect dials MongoDB and verifies connectivity with a ping.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, fmt.Errorf("mongo URI is empty")
	}
	if database == "" {
		database = DefaultDatabase
	}
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client.Database(database), nil
}

// ConnectFromEnv dials MongoDB using MONGO_URI and MONGO_DATABASE, returning
// the database plus a cleanup function. When MONGO_URI is absent or the
// connection fails, it logs and returns nil with a no-op cleanup.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*mongo.Database, func()) {
	uri := strings.TrimSpace(os.Getenv("MONGO_URI"))
	if uri == "" {
		return nil, func() {}
	}
	db, err := Connect(ctx, uri, strings.TrimSpace(os.Getenv("MONGO_DATABASE")))
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to mongo", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("mongo connection established")
	}
	client := db.Client()
	return db, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}
}

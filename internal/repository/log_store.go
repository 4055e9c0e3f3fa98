package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/pkg/logger"
)

// LogStore accepts every insert without a database, for local work and demos.
// Only column names are logged.
type LogStore struct{}

// NewLogStore creates the offline store
func NewLogStore() *LogStore {
	return &LogStore{}
}

// Insert logs the row shape and returns a fresh id
func (s *LogStore) Insert(_ context.Context, table Table, row Row) (string, error) {
	id := uuid.NewString()
	logger.Info("Offline store: insert accepted",
		zap.String("table", string(table)),
		zap.String("record_id", id),
		zap.Strings("columns", row.Names()))
	return id, nil
}

// Ping always succeeds
func (s *LogStore) Ping(context.Context) error {
	return nil
}

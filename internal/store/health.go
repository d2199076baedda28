package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"assessment-workers/internal/common/database"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/engine/health"
	"assessment-workers/internal/models"
)

// HealthStore keeps each user's latest health inputs and a capped,
// newest-first score history.
type HealthStore struct {
	rdb    redis.Cmdable
	prefix string
	limit  int
}

// NewHealthStore caps history at limit entries; limit <= 0 uses the default.
func NewHealthStore(rdb redis.Cmdable, prefix string, limit int) *HealthStore {
	if limit <= 0 {
		limit = health.DefaultHistoryLimit
	}
	return &HealthStore{rdb: rdb, prefix: prefix, limit: limit}
}

func (s *HealthStore) inputsKey(userID string) string {
	return database.Key(s.prefix, "health", userID, "inputs")
}

func (s *HealthStore) historyKey(userID string) string {
	return database.Key(s.prefix, "health", userID, "history")
}

func (s *HealthStore) SaveInputs(ctx context.Context, userID string, in models.HealthInputs) error {
	data, err := json.Marshal(in)
	if err != nil {
		return errors.NewHealthStoreError("save_inputs", err)
	}
	if err := s.rdb.Set(ctx, s.inputsKey(userID), data, 0).Err(); err != nil {
		return errors.NewHealthStoreError("save_inputs", err)
	}
	return nil
}

// Inputs returns the saved inputs and whether any were found.
func (s *HealthStore) Inputs(ctx context.Context, userID string) (models.HealthInputs, bool, error) {
	var in models.HealthInputs
	data, err := s.rdb.Get(ctx, s.inputsKey(userID)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return in, false, nil
	}
	if err != nil {
		return in, false, errors.NewHealthStoreError("inputs", err)
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, false, errors.NewHealthStoreError("inputs", fmt.Errorf("decode: %w", err))
	}
	return in, true, nil
}

// AppendHistory pushes entry to the front of the history, evicts anything
// past the cap and returns the resulting history.
func (s *HealthStore) AppendHistory(ctx context.Context, userID string, entry models.HealthHistoryEntry) ([]models.HealthHistoryEntry, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, errors.NewHealthStoreError("append_history", err)
	}

	key := s.historyKey(userID)
	var rng *redis.StringSliceCmd
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, int64(s.limit-1))
		rng = pipe.LRange(ctx, key, 0, -1)
		return nil
	})
	if err != nil {
		return nil, errors.NewHealthStoreError("append_history", err)
	}
	return decodeHistory(rng.Val())
}

// History returns the stored entries, newest first.
func (s *HealthStore) History(ctx context.Context, userID string) ([]models.HealthHistoryEntry, error) {
	raw, err := s.rdb.LRange(ctx, s.historyKey(userID), 0, int64(s.limit-1)).Result()
	if err != nil {
		return nil, errors.NewHealthStoreError("history", err)
	}
	return decodeHistory(raw)
}

func decodeHistory(raw []string) ([]models.HealthHistoryEntry, error) {
	out := make([]models.HealthHistoryEntry, 0, len(raw))
	for _, item := range raw {
		var e models.HealthHistoryEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.NewHealthStoreError("history", fmt.Errorf("decode entry: %w", err))
		}
		out = append(out, e)
	}
	return out, nil
}

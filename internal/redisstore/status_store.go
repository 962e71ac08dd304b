package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultDialTimeout  = 5 * time.Second
	defaultReadTimeout  = 3 * time.Second
	defaultWriteTimeout = 3 * time.Second
)

// NewRedisClient returns a configured go-redis client and validates the connection with PING.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("redisstore: addr is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  defaultDialTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return client, nil
}

// StationStatus is the last recorded ingestion outcome for one station.
type StationStatus struct {
	Station      string    `json:"station"`
	InsertedRows int       `json:"inserted_rows"`
	Error        string    `json:"error,omitempty"`
	RanAt        time.Time `json:"ran_at"`
}

// StatusStore caches per-station run outcomes.
type StatusStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatusStore returns redis-backed store.
func NewStatusStore(client *redis.Client, ttl time.Duration) *StatusStore {
	return &StatusStore{client: client, ttl: ttl}
}

func (s *StatusStore) key(station string) string {
	return fmt.Sprintf("ingest:status:%s", station)
}

// RecordRun caches the outcome of one station run.
func (s *StatusStore) RecordRun(ctx context.Context, station string, inserted int, runErr error) error {
	status := StationStatus{
		Station:      station,
		InsertedRows: inserted,
		RanAt:        time.Now().UTC(),
	}
	if runErr != nil {
		status.Error = runErr.Error()
	}
	data, err := json.Marshal(status)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(station), data, s.ttl).Err()
}

// Get returns the cached outcome, or nil when no run has been recorded.
func (s *StatusStore) Get(ctx context.Context, station string) (*StationStatus, error) {
	result, err := s.client.Get(ctx, s.key(station)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var status StationStatus
	if err := json.Unmarshal([]byte(result), &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Package redis persists website records in Redis: one JSON value per
// record, a URL lookup key enforcing URL uniqueness, and a sorted set
// ordering records by creation time.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/webscope/siteinfo/internal/website"
)

// Store implements website.Repository on top of Redis.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// FindByURL resolves the URL lookup key, then loads the record by ID.
// A cache-style miss on either key yields (nil, nil).
func (s *Store) FindByURL(ctx context.Context, url string) (*website.Record, error) {
	id, err := s.client.Get(ctx, URLKey(url)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve url key: %w", err)
	}

	rec, err := s.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, website.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*website.Record, error) {
	data, err := s.client.Get(ctx, WebsiteKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, website.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get website record: %w", err)
	}

	var rec website.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal website record: %w", err)
	}
	return &rec, nil
}

// List returns all records, newest first, via the creation-time sorted set.
// Records that vanish between the index read and the value read are skipped.
func (s *Store) List(ctx context.Context) ([]*website.Record, error) {
	ids, err := s.client.ZRevRange(ctx, KeyWebsitesByCreated, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list website ids: %w", err)
	}

	records := make([]*website.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.FindByID(ctx, id)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Insert claims the URL key with SETNX, then writes the record and its index
// entry in one pipeline. Losing the SETNX race yields ErrURLExists.
func (s *Store) Insert(ctx context.Context, rec *website.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal website record: %w", err)
	}

	claimed, err := s.client.SetNX(ctx, URLKey(rec.URL), rec.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim url key: %w", err)
	}
	if !claimed {
		return website.ErrURLExists
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, WebsiteKey(rec.ID), data, 0)
	pipe.ZAdd(ctx, KeyWebsitesByCreated, redis.Z{
		Score:  float64(rec.CreatedAt.UnixNano()),
		Member: rec.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		// Roll back the URL claim so a later attempt can succeed.
		s.client.Del(ctx, URLKey(rec.URL))
		return fmt.Errorf("failed to save website record: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	rec, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, WebsiteKey(id))
	pipe.Del(ctx, URLKey(rec.URL))
	pipe.ZRem(ctx, KeyWebsitesByCreated, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete website record: %w", err)
	}
	return nil
}

// Package redisstore publishes a dataset to Redis and serves lookups from it,
// so several processes can share one copy of the data.
//
// Key layout, under the configured prefix:
//
//	<prefix>banks                 hash bank code -> Bank JSON
//	<prefix>branches:<bankCode>   hash branch code -> Branch JSON
//	<prefix>meta                  JSON {banks, branches, published_at}
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	pkgredis "github.com/Adithya-Monish-Kumar-K/zengin/pkg/redis"
)

// Backend is the subset of the Redis client the store uses.
type Backend interface {
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	ReplaceHashes(ctx context.Context, hashes map[string]map[string]string, strs map[string]string, stale []string) error
}

// Meta describes the published dataset.
type Meta struct {
	Banks       int       `json:"banks"`
	Branches    int       `json:"branches"`
	PublishedAt time.Time `json:"published_at"`
}

type Store struct {
	backend Backend
	prefix  string
	logger  *slog.Logger
}

func New(backend Backend, prefix string) *Store {
	return &Store{
		backend: backend,
		prefix:  prefix,
		logger:  slog.Default().With("component", "redis-store"),
	}
}

func (s *Store) banksKey() string               { return s.prefix + "banks" }
func (s *Store) metaKey() string                { return s.prefix + "meta" }
func (s *Store) branchesKey(code string) string { return s.prefix + "branches:" + code }

// Publish replaces the stored dataset with ds in one transaction. Branch
// hashes of banks no longer in ds are removed.
func (s *Store) Publish(ctx context.Context, ds *zengin.Dataset) error {
	hashes := make(map[string]map[string]string, ds.Len()+1)
	bankFields := make(map[string]string, ds.Len())
	for _, code := range ds.Codes() {
		bank, _ := ds.Bank(code)
		raw, err := json.Marshal(bank)
		if err != nil {
			return fmt.Errorf("encoding bank %s: %w", code, err)
		}
		bankFields[code] = string(raw)

		brs, _ := ds.Branches(code)
		fields := make(map[string]string, len(brs))
		for brCode, br := range brs {
			raw, err := json.Marshal(br)
			if err != nil {
				return fmt.Errorf("encoding branch %s/%s: %w", code, brCode, err)
			}
			fields[brCode] = string(raw)
		}
		hashes[s.branchesKey(code)] = fields
	}
	hashes[s.banksKey()] = bankFields

	existing, err := s.backend.Keys(ctx, s.branchesKey("*"))
	if err != nil {
		return fmt.Errorf("listing branch keys: %w", err)
	}
	var stale []string
	for _, key := range existing {
		if _, ok := hashes[key]; !ok {
			stale = append(stale, key)
		}
	}

	meta, err := json.Marshal(Meta{Banks: ds.Len(), Branches: ds.BranchCount(), PublishedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("encoding meta: %w", err)
	}
	if err := s.backend.ReplaceHashes(ctx, hashes, map[string]string{s.metaKey(): string(meta)}, stale); err != nil {
		return fmt.Errorf("publishing dataset to redis: %w", err)
	}
	s.logger.Info("dataset published", "banks", ds.Len(), "branches", ds.BranchCount(), "stale_removed", len(stale))
	return nil
}

// Meta returns the metadata of the published dataset, or false when nothing
// has been published.
func (s *Store) Meta(ctx context.Context) (Meta, bool, error) {
	raw, err := s.backend.Get(ctx, s.metaKey())
	if err != nil {
		if pkgredis.IsNilError(err) {
			return Meta{}, false, nil
		}
		return Meta{}, false, fmt.Errorf("reading meta: %w", err)
	}
	var m Meta
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return Meta{}, false, fmt.Errorf("decoding meta: %w", err)
	}
	return m, true, nil
}

func (s *Store) Banks(ctx context.Context) (zengin.Banks, error) {
	fields, err := s.backend.HGetAll(ctx, s.banksKey())
	if err != nil {
		return nil, fmt.Errorf("reading banks: %w", err)
	}
	banks := make(zengin.Banks, len(fields))
	for code, raw := range fields {
		var b zengin.Bank
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			return nil, fmt.Errorf("decoding bank %s: %w", code, err)
		}
		banks[code] = b
	}
	return banks, nil
}

func (s *Store) Bank(ctx context.Context, code string) (zengin.Bank, bool, error) {
	var b zengin.Bank
	found, err := s.hget(ctx, s.banksKey(), code, &b)
	return b, found, err
}

// Branches returns false when the bank is not published.
func (s *Store) Branches(ctx context.Context, bankCode string) (zengin.Branches, bool, error) {
	if _, ok, err := s.Bank(ctx, bankCode); err != nil || !ok {
		return nil, false, err
	}
	fields, err := s.backend.HGetAll(ctx, s.branchesKey(bankCode))
	if err != nil {
		return nil, false, fmt.Errorf("reading branches of %s: %w", bankCode, err)
	}
	brs := make(zengin.Branches, len(fields))
	for code, raw := range fields {
		var br zengin.Branch
		if err := json.Unmarshal([]byte(raw), &br); err != nil {
			return nil, false, fmt.Errorf("decoding branch %s/%s: %w", bankCode, code, err)
		}
		brs[code] = br
	}
	return brs, true, nil
}

func (s *Store) Branch(ctx context.Context, bankCode, branchCode string) (zengin.Branch, bool, error) {
	var br zengin.Branch
	found, err := s.hget(ctx, s.branchesKey(bankCode), branchCode, &br)
	return br, found, err
}

// Ready reports whether a dataset has been published.
func (s *Store) Ready(ctx context.Context) (bool, error) {
	return s.backend.Exists(ctx, s.metaKey())
}

func (s *Store) hget(ctx context.Context, key, field string, v any) (bool, error) {
	raw, err := s.backend.HGet(ctx, key, field)
	if err != nil {
		if pkgredis.IsNilError(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s[%s]: %w", key, field, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decoding %s[%s]: %w", key, field, err)
	}
	return true, nil
}

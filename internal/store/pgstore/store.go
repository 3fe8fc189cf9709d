// Package pgstore publishes a dataset into PostgreSQL tables and serves
// lookups from them.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/postgres"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS zengin_banks (
	code TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	kana TEXT NOT NULL,
	hira TEXT NOT NULL,
	roma TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS zengin_branches (
	bank_code TEXT NOT NULL REFERENCES zengin_banks(code) ON DELETE CASCADE,
	code      TEXT NOT NULL,
	name      TEXT NOT NULL,
	kana      TEXT NOT NULL,
	hira      TEXT NOT NULL,
	roma      TEXT NOT NULL,
	PRIMARY KEY (bank_code, code)
);`

type Store struct {
	client *postgres.Client
	logger *slog.Logger
}

func New(client *postgres.Client) *Store {
	return &Store{
		client: client,
		logger: slog.Default().With("component", "pg-store"),
	}
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.client.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Publish replaces the table contents with ds in a single transaction, using
// COPY for the bulk insert.
func (s *Store) Publish(ctx context.Context, ds *zengin.Dataset) error {
	err := s.client.InTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM zengin_branches`); err != nil {
			return fmt.Errorf("clearing branches: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM zengin_banks`); err != nil {
			return fmt.Errorf("clearing banks: %w", err)
		}

		bankStmt, err := tx.PrepareContext(ctx, pq.CopyIn("zengin_banks", "code", "name", "kana", "hira", "roma"))
		if err != nil {
			return fmt.Errorf("preparing bank copy: %w", err)
		}
		for _, b := range ds.Banks().Sorted() {
			if _, err := bankStmt.ExecContext(ctx, b.Code, b.Name, b.Kana, b.Hira, b.Roma); err != nil {
				bankStmt.Close()
				return fmt.Errorf("copying bank %s: %w", b.Code, err)
			}
		}
		if _, err := bankStmt.ExecContext(ctx); err != nil {
			bankStmt.Close()
			return fmt.Errorf("flushing bank copy: %w", err)
		}
		if err := bankStmt.Close(); err != nil {
			return fmt.Errorf("closing bank copy: %w", err)
		}

		branchStmt, err := tx.PrepareContext(ctx, pq.CopyIn("zengin_branches", "bank_code", "code", "name", "kana", "hira", "roma"))
		if err != nil {
			return fmt.Errorf("preparing branch copy: %w", err)
		}
		for _, code := range ds.Codes() {
			brs, _ := ds.Branches(code)
			for _, br := range brs.Sorted() {
				if _, err := branchStmt.ExecContext(ctx, code, br.Code, br.Name, br.Kana, br.Hira, br.Roma); err != nil {
					branchStmt.Close()
					return fmt.Errorf("copying branch %s/%s: %w", code, br.Code, err)
				}
			}
		}
		if _, err := branchStmt.ExecContext(ctx); err != nil {
			branchStmt.Close()
			return fmt.Errorf("flushing branch copy: %w", err)
		}
		return branchStmt.Close()
	})
	if err != nil {
		return fmt.Errorf("publishing dataset to postgres: %w", err)
	}
	s.logger.Info("dataset published", "banks", ds.Len(), "branches", ds.BranchCount())
	return nil
}

func (s *Store) Banks(ctx context.Context) (zengin.Banks, error) {
	rows, err := s.client.DB.QueryContext(ctx, `SELECT code, name, kana, hira, roma FROM zengin_banks`)
	if err != nil {
		return nil, fmt.Errorf("querying banks: %w", err)
	}
	defer rows.Close()
	banks := zengin.Banks{}
	for rows.Next() {
		var b zengin.Bank
		if err := rows.Scan(&b.Code, &b.Name, &b.Kana, &b.Hira, &b.Roma); err != nil {
			return nil, fmt.Errorf("scanning bank: %w", err)
		}
		banks[b.Code] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating banks: %w", err)
	}
	return banks, nil
}

func (s *Store) Bank(ctx context.Context, code string) (zengin.Bank, bool, error) {
	var b zengin.Bank
	err := s.client.DB.QueryRowContext(ctx,
		`SELECT code, name, kana, hira, roma FROM zengin_banks WHERE code = $1`, code,
	).Scan(&b.Code, &b.Name, &b.Kana, &b.Hira, &b.Roma)
	if errors.Is(err, sql.ErrNoRows) {
		return zengin.Bank{}, false, nil
	}
	if err != nil {
		return zengin.Bank{}, false, fmt.Errorf("querying bank %s: %w", code, err)
	}
	return b, true, nil
}

// Branches returns false when the bank does not exist.
func (s *Store) Branches(ctx context.Context, bankCode string) (zengin.Branches, bool, error) {
	if _, ok, err := s.Bank(ctx, bankCode); err != nil || !ok {
		return nil, false, err
	}
	rows, err := s.client.DB.QueryContext(ctx,
		`SELECT code, name, kana, hira, roma FROM zengin_branches WHERE bank_code = $1`, bankCode)
	if err != nil {
		return nil, false, fmt.Errorf("querying branches of %s: %w", bankCode, err)
	}
	defer rows.Close()
	brs := zengin.Branches{}
	for rows.Next() {
		var br zengin.Branch
		if err := rows.Scan(&br.Code, &br.Name, &br.Kana, &br.Hira, &br.Roma); err != nil {
			return nil, false, fmt.Errorf("scanning branch: %w", err)
		}
		brs[br.Code] = br
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterating branches: %w", err)
	}
	return brs, true, nil
}

func (s *Store) Branch(ctx context.Context, bankCode, branchCode string) (zengin.Branch, bool, error) {
	var br zengin.Branch
	err := s.client.DB.QueryRowContext(ctx,
		`SELECT code, name, kana, hira, roma FROM zengin_branches WHERE bank_code = $1 AND code = $2`,
		bankCode, branchCode,
	).Scan(&br.Code, &br.Name, &br.Kana, &br.Hira, &br.Roma)
	if errors.Is(err, sql.ErrNoRows) {
		return zengin.Branch{}, false, nil
	}
	if err != nil {
		return zengin.Branch{}, false, fmt.Errorf("querying branch %s/%s: %w", bankCode, branchCode, err)
	}
	return br, true, nil
}

// Count returns the number of stored banks and branches.
func (s *Store) Count(ctx context.Context) (banks, branches int, err error) {
	err = s.client.DB.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM zengin_banks), (SELECT COUNT(*) FROM zengin_branches)`,
	).Scan(&banks, &branches)
	if err != nil {
		return 0, 0, fmt.Errorf("counting rows: %w", err)
	}
	return banks, branches, nil
}

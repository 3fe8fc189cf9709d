// Package preload builds the full bank/branch dataset once per process and
// serves lookups from it. The dataset is published into a write-once cell:
// concurrent loads collapse into a single build and every caller observes the
// same snapshot. Queries issued before a successful load panic with
// errors.ErrNotLoaded.
package preload

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/source"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	apperrors "github.com/Adithya-Monish-Kumar-K/zengin/pkg/errors"
	"golang.org/x/sync/singleflight"
)

const loadKey = "dataset"

// Index is a write-once dataset cell.
type Index struct {
	data   atomic.Pointer[zengin.Dataset]
	group  singleflight.Group
	builds atomic.Int64
	logger *slog.Logger
}

// NewIndex returns an empty, unloaded Index.
func NewIndex() *Index {
	return &Index{
		logger: slog.Default().With("component", "preload-index"),
	}
}

// Load reads the dataset through r and publishes it unless a dataset is
// already published. A failed build publishes nothing, so a later Load may
// try again.
func (x *Index) Load(r *source.Reader) error {
	if x.data.Load() != nil {
		return nil
	}
	_, err, shared := x.group.Do(loadKey, func() (interface{}, error) {
		if ds := x.data.Load(); ds != nil {
			return ds, nil
		}
		start := time.Now()
		x.builds.Add(1)
		ds, err := r.ReadDataset()
		if err != nil {
			return nil, fmt.Errorf("loading dataset: %w", err)
		}
		x.data.Store(ds)
		x.logger.Info("dataset loaded",
			"banks", ds.Len(),
			"branches", ds.BranchCount(),
			"duration", time.Since(start),
		)
		return ds, nil
	})
	if err != nil {
		x.logger.Error("dataset load failed", "error", err, "shared", shared)
		return err
	}
	return nil
}

// Loaded reports whether a dataset has been published.
func (x *Index) Loaded() bool {
	return x.data.Load() != nil
}

// Builds returns how many times a dataset build actually ran.
func (x *Index) Builds() int64 {
	return x.builds.Load()
}

// Dataset returns the published dataset. It panics when nothing is loaded.
func (x *Index) Dataset() *zengin.Dataset {
	ds := x.data.Load()
	if ds == nil {
		panic(fmt.Errorf("preload: query before Load completed: %w", apperrors.ErrNotLoaded))
	}
	return ds
}

// Banks returns a copy of every bank.
func (x *Index) Banks() zengin.Banks {
	return x.Dataset().Banks()
}

// Bank returns the bank with the given code, or false when it is absent.
func (x *Index) Bank(code string) (zengin.Bank, bool) {
	return x.Dataset().Bank(code)
}

// Branches returns a copy of the bank's branches, or false for an unknown
// bank.
func (x *Index) Branches(bankCode string) (zengin.Branches, bool) {
	return x.Dataset().Branches(bankCode)
}

// Branch returns one branch, or false when the bank or branch is absent.
func (x *Index) Branch(bankCode, branchCode string) (zengin.Branch, bool) {
	return x.Dataset().Branch(bankCode, branchCode)
}

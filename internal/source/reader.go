// Package source reads the bank and branch JSON source files into typed
// records. It keeps no state between calls: every read goes to the
// filesystem.
//
// Layout, relative to the source root:
//
//	banks.json              {"<bankCode>": Bank, ...}
//	branches/<bankCode>.json {"<branchCode>": Branch, ...}
package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	apperrors "github.com/Adithya-Monish-Kumar-K/zengin/pkg/errors"
	"github.com/spf13/afero"
)

const (
	BanksFile   = "banks.json"
	BranchesDir = "branches"
)

// DefaultDir is the source directory used when none is configured.
const DefaultDir = "data"

// Option configures a Reader.
type Option func(*Reader)

// WithMissingBranchesAsEmpty makes a missing branches/<code>.json read as an
// empty branch set instead of a read error.
func WithMissingBranchesAsEmpty() Option {
	return func(r *Reader) {
		r.allowMissingBranches = true
	}
}

// Reader decodes source files from an afero filesystem rooted at the source
// directory.
type Reader struct {
	fs                   afero.Fs
	allowMissingBranches bool
	logger               *slog.Logger
}

// NewReader creates a Reader over fsys, which must be rooted at the source
// directory.
func NewReader(fsys afero.Fs, opts ...Option) *Reader {
	r := &Reader{
		fs:     fsys,
		logger: slog.Default().With("component", "source-reader"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDirReader creates a Reader for a directory on the local filesystem. An
// empty dir means DefaultDir.
func NewDirReader(dir string, opts ...Option) *Reader {
	if dir == "" {
		dir = DefaultDir
	}
	return NewReader(afero.NewBasePathFs(afero.NewOsFs(), dir), opts...)
}

// NewEmbedReader creates a Reader over a read-only io/fs tree such as an
// embed.FS.
func NewEmbedReader(fsys fs.FS, opts ...Option) *Reader {
	return NewReader(afero.FromIOFS{FS: fsys}, opts...)
}

// ReadBanks decodes banks.json.
func (r *Reader) ReadBanks() (zengin.Banks, error) {
	var banks zengin.Banks
	if err := r.decode(BanksFile, &banks); err != nil {
		return nil, err
	}
	if banks == nil {
		banks = zengin.Banks{}
	}
	return banks, nil
}

// ReadBranches decodes branches/<bankCode>.json.
func (r *Reader) ReadBranches(bankCode string) (zengin.Branches, error) {
	name, err := BranchesPath(bankCode)
	if err != nil {
		return nil, err
	}
	var branches zengin.Branches
	if err := r.decode(name, &branches); err != nil {
		if r.allowMissingBranches && isNotExist(err) {
			r.logger.Debug("branches file missing, using empty set", "bank_code", bankCode, "path", name)
			return zengin.Branches{}, nil
		}
		return nil, err
	}
	if branches == nil {
		branches = zengin.Branches{}
	}
	return branches, nil
}

// ReadDataset reads every bank and then each bank's branches.
func (r *Reader) ReadDataset() (*zengin.Dataset, error) {
	banks, err := r.ReadBanks()
	if err != nil {
		return nil, err
	}
	branches := make(map[string]zengin.Branches, len(banks))
	for _, code := range zengin.SortedCodes(banks) {
		b, err := r.ReadBranches(code)
		if err != nil {
			return nil, fmt.Errorf("reading branches of bank %s: %w", code, err)
		}
		branches[code] = b
	}
	ds := zengin.NewDataset(banks, branches)
	r.logger.Debug("dataset read", "banks", ds.Len(), "branches", ds.BranchCount())
	return ds, nil
}

// BranchesPath returns the source-relative path of a bank's branch file.
// Codes that would leave the branches directory are rejected.
func BranchesPath(bankCode string) (string, error) {
	if bankCode == "" || bankCode == "." || bankCode == ".." || strings.ContainsAny(bankCode, `/\`) {
		return "", apperrors.ReadError(path.Join(BranchesDir, bankCode+".json"), fs.ErrInvalid)
	}
	return path.Join(BranchesDir, bankCode+".json"), nil
}

func (r *Reader) decode(name string, v any) error {
	data, err := afero.ReadFile(r.fs, name)
	if err != nil {
		return apperrors.ReadError(name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.ParseError(name, err)
	}
	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

package preload

import (
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/source"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	"github.com/spf13/afero"
)

var global = NewIndex()

// Load builds the process-wide dataset from a directory on disk. An empty
// dir means source.DefaultDir. Calls after the first success are no-ops.
func Load(dir string, opts ...source.Option) error {
	return global.Load(source.NewDirReader(dir, opts...))
}

// LoadFS is Load over an arbitrary filesystem rooted at the source directory.
func LoadFS(fsys afero.Fs, opts ...source.Option) error {
	return global.Load(source.NewReader(fsys, opts...))
}

// Loaded reports whether the process-wide dataset is available.
func Loaded() bool {
	return global.Loaded()
}

// Default returns the process-wide Index.
func Default() *Index {
	return global
}

// Banks returns every bank. It panics before Load.
func Banks() zengin.Banks {
	return global.Banks()
}

// Bank looks up a bank by code. It panics before Load.
func Bank(code string) (zengin.Bank, bool) {
	return global.Bank(code)
}

// Branches returns the branches of a bank. It panics before Load.
func Branches(bankCode string) (zengin.Branches, bool) {
	return global.Branches(bankCode)
}

// Branch looks up one branch of a bank. It panics before Load.
func Branch(bankCode, branchCode string) (zengin.Branch, bool) {
	return global.Branch(bankCode, branchCode)
}

// Package lookup puts every lookup mode behind one context-aware interface so
// the HTTP layer does not care where answers come from.
package lookup

import (
	"context"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/embedded"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/ondemand"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/preload"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
)

// Source answers bank and branch lookups. A false result means the code is
// unknown; errors are reserved for failures of the backing storage.
type Source interface {
	Banks(ctx context.Context) (zengin.Banks, error)
	Bank(ctx context.Context, code string) (zengin.Bank, bool, error)
	Branches(ctx context.Context, bankCode string) (zengin.Branches, bool, error)
	Branch(ctx context.Context, bankCode, branchCode string) (zengin.Branch, bool, error)
}

// Index adapts a loaded preload.Index. Queries panic if it is not loaded.
type Index struct {
	idx *preload.Index
}

func FromIndex(idx *preload.Index) *Index {
	return &Index{idx: idx}
}

func (s *Index) Banks(context.Context) (zengin.Banks, error) {
	return s.idx.Banks(), nil
}

func (s *Index) Bank(_ context.Context, code string) (zengin.Bank, bool, error) {
	b, ok := s.idx.Bank(code)
	return b, ok, nil
}

func (s *Index) Branches(_ context.Context, bankCode string) (zengin.Branches, bool, error) {
	brs, ok := s.idx.Branches(bankCode)
	return brs, ok, nil
}

func (s *Index) Branch(_ context.Context, bankCode, branchCode string) (zengin.Branch, bool, error) {
	br, ok := s.idx.Branch(bankCode, branchCode)
	return br, ok, nil
}

// Embedded adapts the compiled-in tables.
type Embedded struct{}

func (Embedded) Banks(context.Context) (zengin.Banks, error) {
	return embedded.Banks(), nil
}

func (Embedded) Bank(_ context.Context, code string) (zengin.Bank, bool, error) {
	b, ok := embedded.Bank(code)
	return b, ok, nil
}

// Branches reports absence for an unknown bank, unlike embedded.Branches
// which returns an empty map.
func (Embedded) Branches(_ context.Context, bankCode string) (zengin.Branches, bool, error) {
	if _, ok := embedded.Bank(bankCode); !ok {
		return nil, false, nil
	}
	return embedded.Branches(bankCode), true, nil
}

func (Embedded) Branch(_ context.Context, bankCode, branchCode string) (zengin.Branch, bool, error) {
	br, ok := embedded.Branch(bankCode, branchCode)
	return br, ok, nil
}

// OnDemand adapts an ondemand.Accessor; every call reads the source files.
type OnDemand struct {
	acc *ondemand.Accessor
}

func FromAccessor(acc *ondemand.Accessor) *OnDemand {
	return &OnDemand{acc: acc}
}

func (s *OnDemand) Banks(context.Context) (zengin.Banks, error) {
	return s.acc.Banks()
}

func (s *OnDemand) Bank(_ context.Context, code string) (zengin.Bank, bool, error) {
	return s.acc.Bank(code)
}

func (s *OnDemand) Branches(_ context.Context, bankCode string) (zengin.Branches, bool, error) {
	return s.acc.Branches(bankCode)
}

func (s *OnDemand) Branch(_ context.Context, bankCode, branchCode string) (zengin.Branch, bool, error) {
	return s.acc.Branch(bankCode, branchCode)
}

// Package ondemand answers each lookup by reading the source files it needs,
// with no caching between calls. Bank existence is checked against
// banks.json first; a bank's branch file is read only when the bank exists.
package ondemand

import (
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/source"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
)

// Accessor performs fresh reads through a source.Reader on every call.
type Accessor struct {
	reader *source.Reader
}

// New returns an Accessor reading through r.
func New(r *source.Reader) *Accessor {
	return &Accessor{reader: r}
}

// Banks reads banks.json.
func (a *Accessor) Banks() (zengin.Banks, error) {
	return a.reader.ReadBanks()
}

// Bank reads banks.json and looks up code. A false result means the bank is
// absent; errors only come from reading or parsing the file.
func (a *Accessor) Bank(code string) (zengin.Bank, bool, error) {
	banks, err := a.reader.ReadBanks()
	if err != nil {
		return zengin.Bank{}, false, err
	}
	bank, ok := banks[code]
	return bank, ok, nil
}

// Branches returns false when the bank does not exist; otherwise it reads
// the bank's branch file, which may hold no branches.
func (a *Accessor) Branches(bankCode string) (zengin.Branches, bool, error) {
	_, ok, err := a.Bank(bankCode)
	if err != nil || !ok {
		return nil, false, err
	}
	brs, err := a.reader.ReadBranches(bankCode)
	if err != nil {
		return nil, false, err
	}
	return brs, true, nil
}

// Branch reads the bank's branch file and looks up branchCode. It reports
// false when the bank or branch is absent.
func (a *Accessor) Branch(bankCode, branchCode string) (zengin.Branch, bool, error) {
	brs, ok, err := a.Branches(bankCode)
	if err != nil || !ok {
		return zengin.Branch{}, false, err
	}
	br, ok := brs[branchCode]
	return br, ok, nil
}

// Banks reads every bank from dir.
func Banks(dir string, opts ...source.Option) (zengin.Banks, error) {
	return New(source.NewDirReader(dir, opts...)).Banks()
}

// Bank reads banks.json under dir and looks up code.
func Bank(code, dir string, opts ...source.Option) (zengin.Bank, bool, error) {
	return New(source.NewDirReader(dir, opts...)).Bank(code)
}

// Branches reads the branches of bankCode under dir.
func Branches(bankCode, dir string, opts ...source.Option) (zengin.Branches, bool, error) {
	return New(source.NewDirReader(dir, opts...)).Branches(bankCode)
}

// Branch reads one branch of bankCode under dir.
func Branch(bankCode, branchCode, dir string, opts ...source.Option) (zengin.Branch, bool, error) {
	return New(source.NewDirReader(dir, opts...)).Branch(bankCode, branchCode)
}

// Package zengin defines the bank and branch records shared by every lookup
// mode, and the Dataset that indexes branches under their owning bank.
package zengin

import "sort"

// Bank is a financial institution identified by a code unique across banks.
type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kana string `json:"kana"`
	Hira string `json:"hira"`
	Roma string `json:"roma"`
}

// Branch is an office of a bank. Its code is unique only within that bank.
type Branch struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kana string `json:"kana"`
	Hira string `json:"hira"`
	Roma string `json:"roma"`
}

// Banks maps bank code to Bank.
type Banks map[string]Bank

// Branches maps branch code to Branch.
type Branches map[string]Branch

// Clone returns an independent copy. A nil receiver yields an empty map.
func (b Banks) Clone() Banks {
	out := make(Banks, len(b))
	for code, bank := range b {
		out[code] = bank
	}
	return out
}

// Sorted returns the banks ordered by code.
func (b Banks) Sorted() []Bank {
	out := make([]Bank, 0, len(b))
	for _, code := range SortedCodes(b) {
		out = append(out, b[code])
	}
	return out
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (b Branches) Clone() Branches {
	out := make(Branches, len(b))
	for code, branch := range b {
		out[code] = branch
	}
	return out
}

// Sorted returns the branches ordered by code.
func (b Branches) Sorted() []Branch {
	out := make([]Branch, 0, len(b))
	for _, code := range SortedCodes(b) {
		out = append(out, b[code])
	}
	return out
}

// BankWithBranches pairs a bank with all of its branches.
type BankWithBranches struct {
	Bank     Bank
	Branches Branches
}

// Dataset is the full index: bank code to the bank and its branch map. Once
// built it is never modified; accessors hand out copies.
type Dataset struct {
	entries map[string]BankWithBranches
}

// NewDataset builds a Dataset from banks and a branch map per bank code. Banks
// without an entry in branches get an empty branch map.
func NewDataset(banks Banks, branches map[string]Branches) *Dataset {
	entries := make(map[string]BankWithBranches, len(banks))
	for code, bank := range banks {
		entries[code] = BankWithBranches{
			Bank:     bank,
			Branches: branches[code].Clone(),
		}
	}
	return &Dataset{entries: entries}
}

// Len returns the number of banks.
func (d *Dataset) Len() int {
	return len(d.entries)
}

// Codes returns every bank code in lexicographic order.
func (d *Dataset) Codes() []string {
	return SortedCodes(d.entries)
}

// Banks returns a copy of every bank keyed by code.
func (d *Dataset) Banks() Banks {
	out := make(Banks, len(d.entries))
	for code, e := range d.entries {
		out[code] = e.Bank
	}
	return out
}

// Bank returns the bank with the given code, or false when no such bank
// exists.
func (d *Dataset) Bank(code string) (Bank, bool) {
	e, ok := d.entries[code]
	return e.Bank, ok
}

// Branches returns a copy of the bank's branch map, or false when the bank is
// unknown.
func (d *Dataset) Branches(bankCode string) (Branches, bool) {
	e, ok := d.entries[bankCode]
	if !ok {
		return nil, false
	}
	return e.Branches.Clone(), true
}

// Branch returns one branch of a bank. It reports false when either the bank
// or the branch code is unknown.
func (d *Dataset) Branch(bankCode, branchCode string) (Branch, bool) {
	e, ok := d.entries[bankCode]
	if !ok {
		return Branch{}, false
	}
	br, ok := e.Branches[branchCode]
	return br, ok
}

// BranchCount returns the number of branches across all banks.
func (d *Dataset) BranchCount() int {
	n := 0
	for _, e := range d.entries {
		n += len(e.Branches)
	}
	return n
}

// SortedCodes returns the keys of m in lexicographic order.
func SortedCodes[M ~map[string]V, V any](m M) []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Package embedded serves lookups from the dataset compiled into the binary.
// No initialization is needed and no call can fail: the tables are generated
// from data/ by cmd/zengin-gen, so an unknown code simply means absence.
package embedded

//go:generate go run ../../cmd/zengin-gen -source ../../data -out zz_generated.go

import "github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"

var dataset = zengin.NewDataset(banks, branches)

// Dataset returns the compiled-in dataset. It is shared and read-only; its
// accessors hand out copies.
func Dataset() *zengin.Dataset {
	return dataset
}

// Banks returns a copy of every compiled-in bank.
func Banks() zengin.Banks {
	return dataset.Banks()
}

// Bank returns the compiled-in bank with the given code, or false when it is
// absent.
func Bank(code string) (zengin.Bank, bool) {
	return dataset.Bank(code)
}

// Branches returns a copy of the bank's branches. An unknown bank yields an
// empty map.
func Branches(bankCode string) zengin.Branches {
	brs, ok := dataset.Branches(bankCode)
	if !ok {
		return zengin.Branches{}
	}
	return brs
}

// Branch returns one compiled-in branch, or false when the bank or branch is
// absent.
func Branch(bankCode, branchCode string) (zengin.Branch, bool) {
	return dataset.Branch(bankCode, branchCode)
}

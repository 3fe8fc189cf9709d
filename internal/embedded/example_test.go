package embedded_test

import (
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/embedded"
)

func ExampleBank() {
	if bank, ok := embedded.Bank("0001"); ok {
		fmt.Println(bank.Name, bank.Roma)
	}
	_, ok := embedded.Bank("9999")
	fmt.Println("9999 known:", ok)
	// Output:
	// みずほ mizuho
	// 9999 known: false
}

func ExampleBranch() {
	if branch, ok := embedded.Branch("0001", "988"); ok {
		fmt.Println(branch.Name, branch.Roma)
	}
	_, ok := embedded.Branch("0001", "000")
	fmt.Println("0001/000 known:", ok)
	_, ok = embedded.Branch("9999", "001")
	fmt.Println("9999/001 known:", ok)
	// Output:
	// カゴメ kagome
	// 0001/000 known: false
	// 9999/001 known: false
}

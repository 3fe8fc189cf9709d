package zengin

import (
	"reflect"
	"testing"
)

func sampleDataset() *Dataset {
	banks := Banks{
		"0005": {Code: "0005", Name: "三菱UFJ"},
		"0001": {Code: "0001", Name: "みずほ", Kana: "ミズホ", Hira: "みずほ", Roma: "mizuho"},
		"9900": {Code: "9900", Name: "ゆうちょ"},
	}
	branches := map[string]Branches{
		"0001": {
			"988": {Code: "988", Name: "カゴメ", Kana: "カゴメ", Hira: "かごめ", Roma: "kagome"},
			"001": {Code: "001", Name: "東京営業部"},
		},
		"0005": {"001": {Code: "001", Name: "本店"}},
	}
	return NewDataset(banks, branches)
}

func TestDatasetLookups(t *testing.T) {
	ds := sampleDataset()

	if ds.Len() != 3 {
		t.Fatalf("expected 3 banks, got %d", ds.Len())
	}
	if got := ds.Codes(); !reflect.DeepEqual(got, []string{"0001", "0005", "9900"}) {
		t.Errorf("codes not sorted: %v", got)
	}

	bank, ok := ds.Bank("0001")
	if !ok || bank.Code != "0001" || bank.Roma != "mizuho" {
		t.Errorf("unexpected bank: %+v ok=%v", bank, ok)
	}
	if _, ok := ds.Bank("9999"); ok {
		t.Error("expected 9999 to be absent")
	}

	br, ok := ds.Branch("0001", "988")
	if !ok || br.Name != "カゴメ" {
		t.Errorf("unexpected branch: %+v ok=%v", br, ok)
	}
	if _, ok := ds.Branch("0001", "000"); ok {
		t.Error("expected branch 000 to be absent")
	}
	if _, ok := ds.Branch("9999", "001"); ok {
		t.Error("expected branch of unknown bank to be absent")
	}
	if ds.BranchCount() != 3 {
		t.Errorf("expected 3 branches, got %d", ds.BranchCount())
	}
}

func TestDatasetBankWithoutBranchesHasEmptyMap(t *testing.T) {
	ds := sampleDataset()
	branches, ok := ds.Branches("9900")
	if !ok {
		t.Fatal("expected bank 9900 to exist")
	}
	if branches == nil || len(branches) != 0 {
		t.Errorf("expected empty non-nil branch map, got %#v", branches)
	}
	if _, ok := ds.Branches("9999"); ok {
		t.Error("expected unknown bank to report absence")
	}
}

func TestDatasetReturnsCopies(t *testing.T) {
	ds := sampleDataset()

	banks := ds.Banks()
	delete(banks, "0001")
	banks["7777"] = Bank{Code: "7777"}
	if _, ok := ds.Bank("0001"); !ok {
		t.Error("deleting from returned banks mutated the dataset")
	}
	if _, ok := ds.Bank("7777"); ok {
		t.Error("inserting into returned banks mutated the dataset")
	}

	branches, _ := ds.Branches("0001")
	branches["988"] = Branch{Code: "988", Name: "changed"}
	br, _ := ds.Branch("0001", "988")
	if br.Name != "カゴメ" {
		t.Errorf("branch mutated through returned map: %+v", br)
	}
}

func TestNewDatasetCopiesInput(t *testing.T) {
	banks := Banks{"0001": {Code: "0001"}}
	branches := map[string]Branches{"0001": {"001": {Code: "001"}}}
	ds := NewDataset(banks, branches)

	branches["0001"]["002"] = Branch{Code: "002"}
	if _, ok := ds.Branch("0001", "002"); ok {
		t.Error("dataset shares branch map with caller")
	}
}

func TestSortedEnumeration(t *testing.T) {
	ds := sampleDataset()
	branches, _ := ds.Branches("0001")
	sorted := branches.Sorted()
	if len(sorted) != 2 || sorted[0].Code != "001" || sorted[1].Code != "988" {
		t.Errorf("unexpected order: %+v", sorted)
	}
	banks := ds.Banks().Sorted()
	if banks[0].Code != "0001" || banks[2].Code != "9900" {
		t.Errorf("unexpected bank order: %+v", banks)
	}
}

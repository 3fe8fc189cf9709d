package source

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/zengin/data"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	apperrors "github.com/Adithya-Monish-Kumar-K/zengin/pkg/errors"
	"github.com/spf13/afero"
)

const (
	fixtureBanks = `{
  "0001": {"code": "0001", "name": "みずほ", "kana": "ミズホ", "hira": "みずほ", "roma": "mizuho"},
  "0005": {"code": "0005", "name": "三菱UFJ", "kana": "ミツビシユ－エフジエイ", "hira": "みつびしゆ－えふじえい", "roma": "mitsubishiyu-efujiei"}
}`
	fixtureBranches0001 = `{
  "001": {"code": "001", "name": "東京営業部", "kana": "トウキヨウ", "hira": "とうきよう", "roma": "toukiyou"},
  "988": {"code": "988", "name": "カゴメ", "kana": "カゴメ", "hira": "かごめ", "roma": "kagome"}
}`
)

func newFixtureFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for name, content := range files {
		if err := afero.WriteFile(fsys, name, []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture %s: %v", name, err)
		}
	}
	return fsys
}

func TestReadBanks(t *testing.T) {
	r := NewReader(newFixtureFs(t, map[string]string{BanksFile: fixtureBanks}))
	banks, err := r.ReadBanks()
	if err != nil {
		t.Fatalf("ReadBanks: %v", err)
	}
	if len(banks) != 2 {
		t.Fatalf("expected 2 banks, got %d", len(banks))
	}
	want := zengin.Bank{Code: "0001", Name: "みずほ", Kana: "ミズホ", Hira: "みずほ", Roma: "mizuho"}
	if banks["0001"] != want {
		t.Errorf("got %+v, want %+v", banks["0001"], want)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		read     func(r *Reader) error
		wantKind error
	}{
		{
			name:     "missing banks file",
			files:    map[string]string{},
			read:     func(r *Reader) error { _, err := r.ReadBanks(); return err },
			wantKind: apperrors.ErrRead,
		},
		{
			name:     "malformed banks file",
			files:    map[string]string{BanksFile: `{"0001": "not a record"}`},
			read:     func(r *Reader) error { _, err := r.ReadBanks(); return err },
			wantKind: apperrors.ErrParse,
		},
		{
			name:     "banks file is an array",
			files:    map[string]string{BanksFile: `[]`},
			read:     func(r *Reader) error { _, err := r.ReadBanks(); return err },
			wantKind: apperrors.ErrParse,
		},
		{
			name:     "missing branches file",
			files:    map[string]string{BanksFile: fixtureBanks},
			read:     func(r *Reader) error { _, err := r.ReadBranches("0001"); return err },
			wantKind: apperrors.ErrRead,
		},
		{
			name:     "truncated branches file",
			files:    map[string]string{"branches/0001.json": `{"001": {"code": "001"`},
			read:     func(r *Reader) error { _, err := r.ReadBranches("0001"); return err },
			wantKind: apperrors.ErrParse,
		},
		{
			name:     "bank code escaping branches dir",
			files:    map[string]string{"banks.json": fixtureBanks},
			read:     func(r *Reader) error { _, err := r.ReadBranches("../banks"); return err },
			wantKind: apperrors.ErrRead,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewReader(newFixtureFs(t, tt.files)))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantKind) {
				t.Errorf("expected %v, got %v", tt.wantKind, err)
			}
		})
	}
}

func TestMissingBranchesPolicy(t *testing.T) {
	files := map[string]string{
		BanksFile:            fixtureBanks,
		"branches/0001.json": fixtureBranches0001,
	}

	t.Run("strict by default", func(t *testing.T) {
		_, err := NewReader(newFixtureFs(t, files)).ReadDataset()
		if !errors.Is(err, apperrors.ErrRead) {
			t.Fatalf("expected read error for missing branches/0005.json, got %v", err)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("expected cause fs.ErrNotExist, got %v", err)
		}
	})

	t.Run("empty when allowed", func(t *testing.T) {
		ds, err := NewReader(newFixtureFs(t, files), WithMissingBranchesAsEmpty()).ReadDataset()
		if err != nil {
			t.Fatalf("ReadDataset: %v", err)
		}
		branches, ok := ds.Branches("0005")
		if !ok {
			t.Fatal("expected bank 0005 to exist")
		}
		if len(branches) != 0 {
			t.Errorf("expected no branches, got %d", len(branches))
		}
	})

	t.Run("parse errors still propagate when allowed", func(t *testing.T) {
		bad := map[string]string{
			BanksFile:            fixtureBanks,
			"branches/0001.json": `not json`,
		}
		_, err := NewReader(newFixtureFs(t, bad), WithMissingBranchesAsEmpty()).ReadDataset()
		if !errors.Is(err, apperrors.ErrParse) {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}

func TestReadDataset(t *testing.T) {
	files := map[string]string{
		BanksFile:            fixtureBanks,
		"branches/0001.json": fixtureBranches0001,
		"branches/0005.json": `{}`,
	}
	ds, err := NewReader(newFixtureFs(t, files)).ReadDataset()
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Len() != 2 || ds.BranchCount() != 2 {
		t.Errorf("unexpected sizes: banks=%d branches=%d", ds.Len(), ds.BranchCount())
	}
	br, ok := ds.Branch("0001", "988")
	want := zengin.Branch{Code: "988", Name: "カゴメ", Kana: "カゴメ", Hira: "かごめ", Roma: "kagome"}
	if !ok || br != want {
		t.Errorf("got %+v ok=%v, want %+v", br, ok, want)
	}
}

func TestEmbeddedSnapshotIsComplete(t *testing.T) {
	ds, err := NewEmbedReader(data.FS).ReadDataset()
	if err != nil {
		t.Fatalf("reading embedded snapshot: %v", err)
	}
	for _, code := range ds.Codes() {
		bank, _ := ds.Bank(code)
		if bank.Code != code {
			t.Errorf("bank keyed %s has code %s", code, bank.Code)
		}
		branches, _ := ds.Branches(code)
		for brCode, br := range branches {
			if br.Code != brCode {
				t.Errorf("bank %s: branch keyed %s has code %s", code, brCode, br.Code)
			}
		}
	}
}

func TestNewDirReader(t *testing.T) {
	ds, err := NewDirReader("../../data").ReadDataset()
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	bank, ok := ds.Bank("0001")
	if !ok || bank.Name != "みずほ" {
		t.Errorf("unexpected bank 0001: %+v ok=%v", bank, ok)
	}
}

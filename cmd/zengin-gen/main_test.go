package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesFormattedSource(t *testing.T) {
	out := filepath.Join(t.TempDir(), "zz_generated.go")
	if err := run("../../data", out, "embedded", false); err != nil {
		t.Fatalf("run: %v", err)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.HasPrefix(string(src), "// Code generated by zengin-gen. DO NOT EDIT.") {
		t.Errorf("missing generated header")
	}
	if !strings.Contains(string(src), `"988": {Code: "988"`) {
		t.Errorf("branch 988 not rendered")
	}
	if _, err := os.Stat(out + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestRunFailsOnMissingSource(t *testing.T) {
	out := filepath.Join(t.TempDir(), "zz_generated.go")
	if err := run(t.TempDir(), out, "embedded", false); err == nil {
		t.Fatal("expected error for empty source dir")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written despite failure")
	}
}

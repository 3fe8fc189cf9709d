// Command zengin-gen compiles the JSON source files into Go tables for the
// embedded lookup package.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/codegen"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/source"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/logger"
)

func main() {
	sourceDir := flag.String("source", source.DefaultDir, "directory holding banks.json and branches/")
	out := flag.String("out", "zz_generated.go", "output file")
	pkg := flag.String("pkg", "embedded", "package name of the generated file")
	allowMissing := flag.Bool("allow-missing-branches", false, "treat a missing branch file as an empty branch set")
	flag.Parse()

	logger.Setup("info", "text")

	if err := run(*sourceDir, *out, *pkg, *allowMissing); err != nil {
		fmt.Fprintf(os.Stderr, "zengin-gen: %v\n", err)
		os.Exit(1)
	}
}

func run(sourceDir, out, pkg string, allowMissing bool) error {
	var opts []source.Option
	if allowMissing {
		opts = append(opts, source.WithMissingBranchesAsEmpty())
	}
	ds, err := source.NewDirReader(sourceDir, opts...).ReadDataset()
	if err != nil {
		return err
	}
	src, err := codegen.Render(pkg, ds)
	if err != nil {
		return err
	}
	tmp := out + ".tmp"
	if err := os.WriteFile(tmp, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	slog.Info("generated embedded dataset",
		"out", filepath.Clean(out),
		"banks", ds.Len(),
		"branches", ds.BranchCount(),
		"bytes", len(src),
	)
	return nil
}

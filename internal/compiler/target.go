package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lhaig/calcc/internal/backend"
	"github.com/lhaig/calcc/internal/eval"
)

// OutputPath derives the artifact path for an input file, e.g.
// "prog.calc" -> "prog.s" for the asm target. Standard input ("-") maps to
// "out" plus the extension.
func OutputPath(inputPath, target string) string {
	base := "out"
	if inputPath != "" && inputPath != "-" {
		base = strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	}
	return base + backend.FileExtension(target)
}

// EmitToTarget compiles source and writes the artifact listing to outPath.
// The result is returned even when compilation fails, so callers can
// report its diagnostics.
func EmitToTarget(source, outPath string, opts Options) (*Result, error) {
	res := CompileWith(source, opts)
	if res.Diagnostics.HasErrors() {
		return res, fmt.Errorf("compilation errors:\n%s", res.Diagnostics.Format("input"))
	}

	// Ensure output directory exists
	outDir := filepath.Dir(outPath)
	if outDir != "." && outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return res, fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	if err := os.WriteFile(outPath, []byte(res.Artifact.Listing()), 0644); err != nil {
		return res, fmt.Errorf("failed to write output file: %w", err)
	}
	return res, nil
}

// RunOnTarget compiles source and executes the artifact on the target's
// machine, returning the printed values.
func RunOnTarget(source string, opts Options) (*Result, []eval.Value, error) {
	res := CompileWith(source, opts)
	if res.Diagnostics.HasErrors() {
		return res, nil, fmt.Errorf("compilation errors:\n%s", res.Diagnostics.Format("input"))
	}
	out, err := res.Artifact.Run()
	if err != nil {
		return res, nil, fmt.Errorf("run on %s: %w", res.Target, err)
	}
	return res, out, nil
}

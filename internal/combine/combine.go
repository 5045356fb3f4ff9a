// Package combine concatenates every file of one extension under a
// directory into a single annotated output file.
package combine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/devflow-tools/wtm/internal/logging"
)

const headerRule = "================================================================================"

// Result reports what a combine run produced.
type Result struct {
	OutputPath string
	FileCount  int
}

// DefaultOutputName returns the output filename for an extension,
// e.g. "combined_md_files.txt" for ".md".
func DefaultOutputName(ext string) string {
	return fmt.Sprintf("combined_%s_files.txt", strings.TrimPrefix(ext, "."))
}

// NormalizeExt lowercases an extension and ensures the leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Run collects every file matching the extension under dir (recursively),
// sorted by path, and writes them into a single output file with a
// header per section. The output file itself is excluded from the
// collection. Individual unreadable files are recorded inline and do
// not abort the run.
func Run(dir, ext, outputName string) (*Result, error) {
	ext = NormalizeExt(ext)
	if outputName == "" {
		outputName = DefaultOutputName(ext)
	}

	outputPath, err := filepath.Abs(filepath.Join(dir, outputName))
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(dir), "**/*"+ext)
	if err != nil {
		return nil, fmt.Errorf("glob failed in %s: %w", dir, err)
	}

	var targets []string
	for _, match := range matches {
		full, err := filepath.Abs(filepath.Join(dir, filepath.FromSlash(match)))
		if err != nil {
			continue
		}
		if full == outputPath {
			continue
		}
		targets = append(targets, full)
	}
	sort.Strings(targets)

	if len(targets) == 0 {
		return nil, fmt.Errorf("no %s files found in %s", ext, dir)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outputPath, err)
	}
	defer out.Close()

	for _, target := range targets {
		fmt.Fprintf(out, "%s\n", headerRule)
		fmt.Fprintf(out, "FILE: %s\n", filepath.Base(target))
		fmt.Fprintf(out, "PATH: %s\n", target)
		fmt.Fprintf(out, "%s\n\n", headerRule)

		content, err := os.ReadFile(target)
		if err != nil {
			logging.Warn("failed to read file", "path", target, "error", err)
			fmt.Fprintf(out, "!!! Error reading file: %v\n", err)
		} else {
			out.Write(content)
		}

		fmt.Fprint(out, "\n\n")
	}

	return &Result{OutputPath: outputPath, FileCount: len(targets)}, nil
}

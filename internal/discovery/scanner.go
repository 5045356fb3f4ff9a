package discovery

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	securejoin "github.com/cyphar/filepath-securejoin"
	"gopkg.in/yaml.v3"

	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/logging"
)

// Doc is one discoverable document.
type Doc struct {
	// Path is the document location relative to the scan root, with
	// forward slashes.
	Path string

	// Summary is the front-matter summary line.
	Summary string

	// ReadWhen lists the triggers under which the document should be
	// consulted.
	ReadWhen []string
}

// Options configures a scan.
type Options struct {
	// Dirs are the directories to scan, relative to the root.
	Dirs []string

	// Ignore lists case-insensitive filename substrings to skip.
	Ignore []string
}

// frontMatter is the decoded YAML header.
type frontMatter struct {
	Summary  string     `yaml:"summary"`
	ReadWhen stringList `yaml:"read_when"`
}

// stringList accepts either a YAML scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = stringList(items)
		return nil
	default:
		return fmt.Errorf("read_when must be a string or a list of strings")
	}
}

// Scan walks the configured directories under root and returns every
// discoverable document, sorted by path. Missing directories are
// skipped; unreadable or malformed files are logged and skipped.
func Scan(root string, opts Options) ([]Doc, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.DiscoveryError("invalid scan root "+root, err)
	}

	var docs []Doc
	for _, dir := range opts.Dirs {
		// Configured dirs come from user config; keep them inside the root.
		searchDir, err := securejoin.SecureJoin(absRoot, dir)
		if err != nil {
			return nil, errors.DiscoveryError("invalid scan directory "+dir, err)
		}

		info, err := os.Stat(searchDir)
		if err != nil || !info.IsDir() {
			logging.Debug("skipping scan directory", "dir", searchDir)
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(searchDir), "**/*.md")
		if err != nil {
			return nil, errors.DiscoveryError("glob failed in "+searchDir, err)
		}

		for _, match := range matches {
			if isNoise(filepath.Base(match), opts.Ignore) {
				continue
			}

			fullPath := filepath.Join(searchDir, filepath.FromSlash(match))
			fm, ok, err := extractFrontMatter(fullPath)
			if err != nil {
				logging.Warn("skipping unreadable document", "path", fullPath, "error", err)
				continue
			}
			if !ok {
				continue
			}

			docs = append(docs, Doc{
				Path:     filepath.ToSlash(filepath.Join(dir, filepath.FromSlash(match))),
				Summary:  fm.Summary,
				ReadWhen: fm.ReadWhen,
			})
		}
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// isNoise reports whether a filename matches any of the ignore
// substrings, case-insensitively.
func isNoise(name string, ignore []string) bool {
	lower := strings.ToLower(name)
	for _, substr := range ignore {
		if substr != "" && strings.Contains(lower, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

// extractFrontMatter reads just the YAML header of a markdown file.
// It returns ok=false when the file has no front matter, the block is
// never closed, or a required field is missing.
func extractFrontMatter(path string) (*frontMatter, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil, false, nil
	}

	var lines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, err
	}
	if !closed {
		return nil, false, nil
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(strings.Join(lines, "\n")), &fm); err != nil {
		logging.Debug("malformed front matter", "path", path, "error", err)
		return nil, false, nil
	}

	if fm.Summary == "" || len(fm.ReadWhen) == 0 {
		return nil, false, nil
	}
	return &fm, true, nil
}

// StripFrontMatter removes a leading front-matter block from document
// content, returning the body unchanged when no block exists.
func StripFrontMatter(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}
	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return content
	}
	return strings.TrimLeft(parts[2], "\n")
}

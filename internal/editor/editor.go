// Package editor launches the user's editor on a directory.
package editor

import (
	"context"
	"os"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/devflow-tools/wtm/internal/errors"
	"github.com/devflow-tools/wtm/internal/logging"
	"github.com/devflow-tools/wtm/internal/system"
)

// fallbackEditor is used when nothing is configured anywhere.
const fallbackEditor = "code"

// Resolve picks the editor command line: explicit configuration wins,
// then $VISUAL, then $EDITOR, then the fallback.
func Resolve(configured string) string {
	if configured != "" {
		return configured
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return fallbackEditor
}

// Open runs the editor command line with path appended, attached to the
// terminal. The command line is shell-split, so values like
// "code --wait" work.
func Open(ctx context.Context, commandLine, path string) error {
	words, err := shellquote.Split(commandLine)
	if err != nil {
		return errors.EditorError("invalid editor command "+commandLine, err)
	}
	if len(words) == 0 {
		return errors.EditorError("empty editor command", nil)
	}

	logging.Debug("opening editor", "command", words[0], "path", path)

	args := append(words[1:], path)
	if err := system.DefaultExecutor().ExecuteInteractive(ctx, words[0], args...); err != nil {
		return errors.EditorError("failed to launch "+words[0], err)
	}
	return nil
}

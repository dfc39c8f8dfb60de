// Package output writes rendered recipe text to disk with diff previews
// for overwrites.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/conn-castle/recipegen/internal/messages"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

// Result describes the outcome of writing a rendered recipe.
type Result struct {
	// Path is the file that was written.
	Path string
	// Created reports whether the file did not exist before.
	Created bool
	// Changed reports whether the file content changed.
	Changed bool
	// Diff is a unified diff against the previous content, truncated to
	// the configured line cap. Empty when the file is new or unchanged.
	Diff string
	// Truncated reports whether Diff was cut at the line cap.
	Truncated bool
}

// Writer writes rendered text through a System.
type Writer struct {
	sys       System
	diffLines int
}

// NewWriter returns a Writer. diffLines caps the per-file diff preview;
// non-positive values disable truncation.
func NewWriter(sys System, diffLines int) (*Writer, error) {
	if sys == nil {
		return nil, errors.New(messages.OutputSystemRequired)
	}
	return &Writer{sys: sys, diffLines: diffLines}, nil
}

// Write stores content at path, creating parent directories as needed.
// Unchanged files are left untouched.
func (w *Writer) Write(path string, content []byte) (Result, error) {
	result := Result{Path: path}

	previous, err := w.sys.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(previous, content) {
			return result, nil
		}
		result.Changed = true
		result.Diff, result.Truncated = w.diff(path, previous, content)
	case os.IsNotExist(err):
		result.Created = true
		result.Changed = true
	default:
		return Result{}, fmt.Errorf(messages.OutputReadFmt, path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := w.sys.MkdirAll(dir, dirPerm); err != nil {
			return Result{}, fmt.Errorf(messages.OutputMkdirFmt, dir, err)
		}
	}
	if err := w.sys.WriteFileAtomic(path, content, filePerm); err != nil {
		return Result{}, fmt.Errorf(messages.OutputWriteFmt, path, err)
	}
	return result, nil
}

func (w *Writer) diff(path string, previous, next []byte) (string, bool) {
	diff := udiff.Unified(path+" (previous)", path+" (updated)", string(previous), string(next))
	lines := splitDiffLines(diff)
	if w.diffLines <= 0 || len(lines) <= w.diffLines {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := lines[:w.diffLines]
	truncated = append(truncated, fmt.Sprintf(messages.OutputDiffTruncatedFmt, w.diffLines))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

// FprintDiff writes a unified diff with added lines in green and removed
// lines in red.
func FprintDiff(out io.Writer, diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			_, _ = fmt.Fprintln(out, color.GreenString("%s", line))
		case strings.HasPrefix(line, "-"):
			_, _ = fmt.Fprintln(out, color.RedString("%s", line))
		default:
			_, _ = fmt.Fprintln(out, line)
		}
	}
}

package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// fakeSystem is an in-memory System that records writes.
type fakeSystem struct {
	files  map[string][]byte
	mkdirs []string
	writes int
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{files: make(map[string][]byte)}
}

func (s *fakeSystem) Stat(name string) (os.FileInfo, error) {
	if _, ok := s.files[name]; ok {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (s *fakeSystem) ReadFile(name string) ([]byte, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (s *fakeSystem) MkdirAll(path string, perm os.FileMode) error {
	s.mkdirs = append(s.mkdirs, path)
	return nil
}

func (s *fakeSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	s.writes++
	s.files[filename] = append([]byte(nil), data...)
	return nil
}

func newTestWriter(t *testing.T, sys System, diffLines int) *Writer {
	t.Helper()
	w, err := NewWriter(sys, diffLines)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	return w
}

func TestNewWriterRequiresSystem(t *testing.T) {
	if _, err := NewWriter(nil, 10); err == nil {
		t.Fatal("expected error for nil system")
	}
}

func TestWriteCreatesFile(t *testing.T) {
	sys := newFakeSystem()
	w := newTestWriter(t, sys, 10)

	result, err := w.Write("out/Dockerfile", []byte("FROM debian:11\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !result.Created || !result.Changed || result.Diff != "" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if string(sys.files["out/Dockerfile"]) != "FROM debian:11\n" {
		t.Fatalf("unexpected content: %q", sys.files["out/Dockerfile"])
	}
	if len(sys.mkdirs) != 1 || sys.mkdirs[0] != "out" {
		t.Fatalf("unexpected mkdirs: %v", sys.mkdirs)
	}
}

func TestWriteUnchangedSkipsWrite(t *testing.T) {
	sys := newFakeSystem()
	sys.files["Dockerfile"] = []byte("FROM debian:11\n")
	w := newTestWriter(t, sys, 10)

	result, err := w.Write("Dockerfile", []byte("FROM debian:11\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if result.Created || result.Changed {
		t.Fatalf("unexpected result: %+v", result)
	}
	if sys.writes != 0 {
		t.Fatalf("unchanged content must not be rewritten, writes = %d", sys.writes)
	}
}

func TestWriteOverwriteProducesDiff(t *testing.T) {
	sys := newFakeSystem()
	sys.files["Dockerfile"] = []byte("FROM debian:10\n")
	w := newTestWriter(t, sys, 10)

	result, err := w.Write("Dockerfile", []byte("FROM debian:11\n"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if result.Created || !result.Changed || result.Truncated {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !strings.Contains(result.Diff, "-FROM debian:10") || !strings.Contains(result.Diff, "+FROM debian:11") {
		t.Fatalf("unexpected diff:\n%s", result.Diff)
	}
}

func TestWriteDiffTruncation(t *testing.T) {
	sys := newFakeSystem()
	var old, next bytes.Buffer
	for i := 0; i < 50; i++ {
		old.WriteString("old line\n")
		next.WriteString("new line\n")
	}
	sys.files["Dockerfile"] = old.Bytes()
	w := newTestWriter(t, sys, 5)

	result, err := w.Write("Dockerfile", next.Bytes())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !result.Truncated {
		t.Fatal("expected truncated diff")
	}
	lines := strings.Split(strings.TrimRight(result.Diff, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("diff lines = %d, want cap plus marker", len(lines))
	}
	if !strings.Contains(lines[5], "truncated to 5 lines") {
		t.Fatalf("missing truncation marker: %q", lines[5])
	}
}

func TestWriteReadFailure(t *testing.T) {
	w := newTestWriter(t, &erroringSystem{fakeSystem: newFakeSystem()}, 10)
	if _, err := w.Write("Dockerfile", []byte("x")); err == nil {
		t.Fatal("expected read error to propagate")
	}
}

type erroringSystem struct {
	*fakeSystem
}

func (s *erroringSystem) ReadFile(name string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func TestRealSystemWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Dockerfile")
	sys := RealSystem{}

	if err := sys.WriteFileAtomic(path, []byte("one\n"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic: %v", err)
	}
	if err := sys.WriteFileAtomic(path, []byte("two\n"), 0o644); err != nil {
		t.Fatalf("WriteFileAtomic overwrite: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "two\n" {
		t.Fatalf("content = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files must not survive, entries = %d", len(entries))
	}
}

func TestFprintDiff(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	var buf bytes.Buffer
	FprintDiff(&buf, "--- a\n+++ b\n-old\n+new\n context\n")
	want := "--- a\n+++ b\n-old\n+new\n context\n"
	if buf.String() != want {
		t.Fatalf("FprintDiff = %q, want %q", buf.String(), want)
	}
}

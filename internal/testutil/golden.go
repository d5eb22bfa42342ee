package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// UpdateGoldenVar is the environment variable that switches golden
// comparisons into record mode.
const UpdateGoldenVar = "TASKHUB_UPDATE_GOLDEN"

// Golden compares got against testdata/<name>.golden in the calling
// package. With TASKHUB_UPDATE_GOLDEN set, the file is rewritten from
// got instead and the comparison is skipped.
func Golden(t *testing.T, name string, got []byte) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if os.Getenv(UpdateGoldenVar) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("create testdata dir: %v", err)
		}
		if err := os.WriteFile(path, got, 0644); err != nil {
			t.Fatalf("record golden %s: %v", path, err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v\ngot:\n%s", path, err, got)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("%s differs from golden\nwant:\n%s\ngot:\n%s", name, want, got)
	}
}

// GoldenString is Golden for string output.
func GoldenString(t *testing.T, name string, got string) {
	t.Helper()
	Golden(t, name, []byte(got))
}

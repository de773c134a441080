package testutil

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

var (
	rootOnce sync.Once
	rootDir  string
)

// Fixture returns the raw contents of a file under the repo's testdata
// directory. The repo root is found by walking up to go.mod.
func Fixture(t *testing.T, rel string) []byte {
	t.Helper()
	rootOnce.Do(func() { rootDir = findRoot() })
	if rootDir == "" {
		t.Fatalf("testdata %s: no go.mod above working directory", rel)
	}
	data, err := os.ReadFile(filepath.Join(rootDir, "testdata", filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("testdata %s: %v", rel, err)
	}
	return data
}

// LoadJSON unmarshals a JSON fixture into v.
func LoadJSON(t *testing.T, rel string, v any) {
	t.Helper()
	if err := json.Unmarshal(Fixture(t, rel), v); err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
}

// LoadHex returns a hex fixture as trimmed text.
func LoadHex(t *testing.T, rel string) string {
	t.Helper()
	return strings.TrimSpace(string(Fixture(t, rel)))
}

// LoadHexBytes returns the bytes a hex fixture encodes.
func LoadHexBytes(t *testing.T, rel string) []byte {
	t.Helper()
	b, err := hex.DecodeString(LoadHex(t, rel))
	if err != nil {
		t.Fatalf("decode %s: %v", rel, err)
	}
	return b
}

func findRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

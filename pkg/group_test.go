package dupfiles

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTestFile creates dir/name (and parent directories) with content
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func mustAlgorithm(t *testing.T, name string) *HashAlgorithm {
	t.Helper()
	algorithm, err := GetHashAlgorithm(name)
	if err != nil {
		t.Fatalf("Failed to get %s algorithm: %v", name, err)
	}
	return algorithm
}

func TestOrderedGroups_KeepsFirstSeenOrder(t *testing.T) {
	og := newOrderedGroups[int64]()
	og.Add(30, "a")
	og.Add(10, "b")
	og.Add(30, "c")
	og.Add(20, "d")
	og.Add(10, "e")

	if og.Len() != 3 {
		t.Errorf("Expected 3 keys, got %d", og.Len())
	}

	var keys []int64
	var groups [][]string
	og.Duplicates(func(key int64, paths []string) {
		keys = append(keys, key)
		groups = append(groups, paths)
	})

	if !reflect.DeepEqual(keys, []int64{30, 10}) {
		t.Errorf("Expected keys [30 10], got %v", keys)
	}
	expected := [][]string{{"a", "c"}, {"b", "e"}}
	if !reflect.DeepEqual(groups, expected) {
		t.Errorf("Expected groups %v, got %v", expected, groups)
	}
}

func TestGroupBySize(t *testing.T) {
	tempDir := t.TempDir()
	a := writeTestFile(t, tempDir, "a", "xx")
	b := writeTestFile(t, tempDir, "b", "yyy")
	c := writeTestFile(t, tempDir, "c", "zz")
	d := writeTestFile(t, tempDir, "d", "")
	e := writeTestFile(t, tempDir, "e", "")
	f := writeTestFile(t, tempDir, "f", "w")

	groups, err := GroupBySize([]string{a, b, c, d, e, f})
	if err != nil {
		t.Fatalf("GroupBySize failed: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("Expected 1 size group, got %d: %v", len(groups), groups)
	}
	if groups[0].Size != 2 {
		t.Errorf("Expected size 2, got %d", groups[0].Size)
	}
	if !reflect.DeepEqual(groups[0].Files, []string{a, c}) {
		t.Errorf("Expected files [%s %s], got %v", a, c, groups[0].Files)
	}
}

func TestGroupBySize_EmptyFilesNeverGrouped(t *testing.T) {
	tempDir := t.TempDir()
	var paths []string
	for _, name := range []string{"e1", "e2", "e3"} {
		paths = append(paths, writeTestFile(t, tempDir, name, ""))
	}

	groups, err := GroupBySize(paths)
	if err != nil {
		t.Fatalf("GroupBySize failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("Expected no groups for empty files, got %v", groups)
	}
}

func TestGroupBySize_StatFailureIsFatal(t *testing.T) {
	tempDir := t.TempDir()
	a := writeTestFile(t, tempDir, "a", "data")
	missing := filepath.Join(tempDir, "missing")

	if _, err := GroupBySize([]string{a, missing}); err == nil {
		t.Error("Expected error for a path that cannot be stat'ed")
	}
}

func TestGroupByChecksum(t *testing.T) {
	tempDir := t.TempDir()
	a := writeTestFile(t, tempDir, "a", "same")
	b := writeTestFile(t, tempDir, "b", "diff")
	c := writeTestFile(t, tempDir, "c", "same")
	d := writeTestFile(t, tempDir, "d", "diff")
	e := writeTestFile(t, tempDir, "e", "solo")

	groups := GroupByChecksum([]string{a, b, c, d, e}, mustAlgorithm(t, "md5"))

	if len(groups) != 2 {
		t.Fatalf("Expected 2 checksum groups, got %d: %v", len(groups), groups)
	}
	if !reflect.DeepEqual(groups[0].Files, []string{a, c}) {
		t.Errorf("Expected first group [%s %s], got %v", a, c, groups[0].Files)
	}
	if !reflect.DeepEqual(groups[1].Files, []string{b, d}) {
		t.Errorf("Expected second group [%s %s], got %v", b, d, groups[1].Files)
	}
	if groups[0].Hash != "51037a4a37730f52c8732586d3aaa316" {
		t.Errorf("Expected md5 of \"same\", got %q", groups[0].Hash)
	}
}

func TestGroupByChecksum_SkipsUnreadableFiles(t *testing.T) {
	tempDir := t.TempDir()
	a := writeTestFile(t, tempDir, "a", "same")
	b := writeTestFile(t, tempDir, "b", "same")
	missing := filepath.Join(tempDir, "vanished")

	groups := GroupByChecksum([]string{a, missing, b}, mustAlgorithm(t, "sha256"))

	if len(groups) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(groups))
	}
	if !reflect.DeepEqual(groups[0].Files, []string{a, b}) {
		t.Errorf("Expected [%s %s], got %v", a, b, groups[0].Files)
	}
}

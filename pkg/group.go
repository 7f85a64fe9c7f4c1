package dupfiles

import (
	"fmt"
	"os"
)

// orderedGroups maps a key to the paths sharing it, remembering the order in
// which keys were first seen so output is deterministic for a fixed input.
type orderedGroups[K comparable] struct {
	keys   []K
	groups map[K][]string
}

func newOrderedGroups[K comparable]() *orderedGroups[K] {
	return &orderedGroups[K]{
		groups: make(map[K][]string),
	}
}

// Add appends path to the group for key
func (og *orderedGroups[K]) Add(key K, path string) {
	existing, ok := og.groups[key]
	if !ok {
		og.keys = append(og.keys, key)
	}
	og.groups[key] = append(existing, path)
}

// Len returns the number of distinct keys
func (og *orderedGroups[K]) Len() int {
	return len(og.keys)
}

// Duplicates calls fn, in first-seen key order, for each key holding at least two paths
func (og *orderedGroups[K]) Duplicates(fn func(key K, paths []string)) {
	for _, key := range og.keys {
		if paths := og.groups[key]; len(paths) > 1 {
			fn(key, paths)
		}
	}
}

// GroupBySize buckets paths by file size. Empty files are dropped and only
// sizes shared by two or more files are returned. Failing to stat any path
// is an error.
func GroupBySize(paths []string) ([]DuplicateGroup, error) {
	defer VerboseEnter()()

	bySize := newOrderedGroups[int64]()
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to get size of %s: %w", path, err)
		}
		if info.Size() == 0 {
			continue
		}
		bySize.Add(info.Size(), path)
	}

	var groups []DuplicateGroup
	bySize.Duplicates(func(size int64, files []string) {
		groups = append(groups, DuplicateGroup{Files: files, Size: size})
	})

	VerboseLog(2, "Size grouping: %d distinct sizes, %d shared", bySize.Len(), len(groups))
	return groups, nil
}

// GroupByChecksum buckets paths by the digest of their whole content. Files
// that cannot be read are left out rather than failing the run, since they
// may have vanished or changed permissions since the scan.
func GroupByChecksum(paths []string, algorithm *HashAlgorithm) []DuplicateGroup {
	defer VerboseEnter()()

	byHash := newOrderedGroups[string]()
	for _, path := range paths {
		digest, err := HashFileToHexString(path, algorithm)
		if err != nil {
			VerboseLog(1, "Skipping unreadable file: %v", err)
			continue
		}
		DebugLog(DebugHash, "%s %s %s", algorithm.Name, digest, path)
		byHash.Add(digest, path)
	}

	var groups []DuplicateGroup
	byHash.Duplicates(func(digest string, files []string) {
		groups = append(groups, DuplicateGroup{Files: files, Hash: digest})
	})
	return groups
}

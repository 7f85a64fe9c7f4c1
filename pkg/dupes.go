package dupfiles

import (
	"fmt"
)

// DuplicateGroup represents two or more files considered identical
type DuplicateGroup struct {
	Hash  string   `json:"hash,omitempty" yaml:"hash,omitempty"` // empty for byte comparison
	Size  int64    `json:"size" yaml:"size"`
	Files []string `json:"files" yaml:"files"`
}

// ScanResult is the ordered list of duplicate groups found in one run
type ScanResult []DuplicateGroup

// Paths returns the file lists of every group; never nil
func (r ScanResult) Paths() [][]string {
	paths := make([][]string, 0, len(r))
	for _, group := range r {
		paths = append(paths, group.Files)
	}
	return paths
}

// Strategy selects how duplicates are detected
type Strategy int

const (
	// StrategyChecksum groups by size, then by content digest
	StrategyChecksum Strategy = iota
	// StrategyCompare clusters by pairwise byte comparison
	StrategyCompare
)

// Finder runs the duplicate detection strategies
type Finder struct {
	Algorithm  *HashAlgorithm
	Comparator *Comparator
}

// NewFinder creates a finder; nil arguments fall back to md5 and a shallow
// comparator with the default chunk size
func NewFinder(algorithm *HashAlgorithm, comparator *Comparator) (*Finder, error) {
	if algorithm == nil {
		var err error
		algorithm, err = GetHashAlgorithm(DefaultHashAlgorithm)
		if err != nil {
			return nil, err
		}
	}
	if comparator == nil {
		comparator = NewComparator(DefaultChunkSize, true)
	}
	return &Finder{
		Algorithm:  algorithm,
		Comparator: comparator,
	}, nil
}

// NewFinderFromConfig creates a finder using the hash and compare sections of cfg
func NewFinderFromConfig(cfg *Config) (*Finder, error) {
	algorithm, err := GetHashAlgorithm(cfg.GetHashConfig().Default)
	if err != nil {
		return nil, err
	}

	compareConfig := cfg.GetCompareConfig()
	chunkSize, err := ParseHumanSize(compareConfig.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("invalid chunk size: %w", err)
	}

	return NewFinder(algorithm, NewComparator(chunkSize, compareConfig.Shallow))
}

// FindDuplicates groups paths by size and then, within each size, by content
// digest. Files with a unique size and empty files are never read.
func (f *Finder) FindDuplicates(paths []string) (ScanResult, error) {
	defer VerboseEnter()()

	sizeGroups, err := GroupBySize(paths)
	if err != nil {
		return nil, err
	}

	result := ScanResult{}
	for _, sizeGroup := range sizeGroups {
		for _, group := range GroupByChecksum(sizeGroup.Files, f.Algorithm) {
			group.Size = sizeGroup.Size
			result = append(result, group)
		}
	}

	VerboseLog(2, "Checksum strategy: %d groups from %d files", len(result), len(paths))
	return result, nil
}

// FindDuplicatesByCompare clusters paths by pairwise comparison. The first
// remaining path (in scan order) is compared against every other remaining
// path; it and its matches leave the pool together, and become a group when
// there are at least two of them and they are not empty.
func (f *Finder) FindDuplicatesByCompare(paths []string) ScanResult {
	defer VerboseEnter()()

	pool := newRemainingPool(paths)
	result := ScanResult{}

	for !pool.IsEmpty() {
		current := pool.First()
		cluster := []string{current.path}
		clustered := []int{current.index}

		pool.Each(func(entry *poolEntry) bool {
			if entry.index != current.index && f.Comparator.Equal(current.path, entry.path) {
				cluster = append(cluster, entry.path)
				clustered = append(clustered, entry.index)
			}
			return true
		})
		pool.Remove(clustered)

		if len(cluster) < 2 {
			continue
		}

		sig, err := statSignatureOf(current.path)
		if err != nil {
			VerboseLog(1, "Compare: dropping cluster: %v", err)
			continue
		}
		if sig.size == 0 {
			DebugLog(DebugCompare, "dropping %d empty files", len(cluster))
			continue
		}

		result = append(result, DuplicateGroup{Files: cluster, Size: sig.size})
	}

	VerboseLog(2, "Compare strategy: %d groups from %d files", len(result), len(paths))
	return result
}

// Find runs the chosen strategy over paths
func (f *Finder) Find(paths []string, strategy Strategy) (ScanResult, error) {
	switch strategy {
	case StrategyChecksum:
		return f.FindDuplicates(paths)
	case StrategyCompare:
		return f.FindDuplicatesByCompare(paths), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %d", strategy)
	}
}

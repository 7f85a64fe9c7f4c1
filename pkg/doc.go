// Package dupfiles finds groups of duplicate files below a directory.
//
// # Core API
//
// Run scans a directory and applies one of two strategies:
//
//	cfg, _ := dupfiles.LoadConfig(dupfiles.DefaultConfigPath())
//	result, err := dupfiles.Run(cfg, "~/Pictures", dupfiles.StrategyChecksum)
//	for _, group := range result {
//		fmt.Println(group.Files)
//	}
//
// StrategyChecksum buckets files by size and hashes only files that share a
// size with another file. StrategyCompare clusters files by direct pairwise
// comparison with a Comparator, which by default trusts identical stat
// signatures (type, size, mtime) without reading content.
//
// The pieces are usable on their own: Scanner (or ScanFiles), GroupBySize,
// GroupByChecksum, Comparator and Finder.
//
// # Policies
//
// Symbolic links and non-regular files are never scanned. Empty files never
// appear in a group. An unreadable root or a failed size lookup aborts the
// run; a file that cannot be hashed or compared is quietly left out.
//
// # Configuration
//
// Configuration is an INI file (see LoadConfig) with [filehash], [compare],
// [output], [verbose] and [scan] sections. Debug output is enabled with:
//
//	dupfiles.SetDebugFlags("scan,hash,compare")
//	dupfiles.SetVerboseLevel(2)
package dupfiles

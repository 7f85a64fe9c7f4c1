package dupfiles

import "strings"

// Hash type constants
const (
	HashTypeMD5    uint16 = 1 // MD5 (16 bytes)
	HashTypeSHA1   uint16 = 2 // SHA-1 (20 bytes)
	HashTypeSHA256 uint16 = 3 // SHA-256 (32 bytes)
	HashTypeSHA512 uint16 = 4 // SHA-512 (64 bytes)
)

// Hash size constants
const (
	HashSizeMD5    = 16
	HashSizeSHA1   = 20
	HashSizeSHA256 = 32
	HashSizeSHA512 = 64
)

// Defaults used when no config file overrides them
const (
	DefaultHashAlgorithm = "md5"
	DefaultChunkSize     = 8 * 1024
	MaxChunkSize         = 64 * 1024 * 1024
	DefaultOutputFormat  = "json"
)

// Output formats
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatFdupes = "fdupes"
	FormatHuman  = "human"
)

// Debug flag names understood by IsDebugEnabled
const (
	DebugScan    = "scan"
	DebugHash    = "hash"
	DebugCompare = "compare"
	DebugAll     = "all" // every flag in KnownDebugFlags
)

// HashTypeFromName returns the hash type constant from a name (case-insensitive)
func HashTypeFromName(name string) (uint16, bool) {
	switch strings.ToLower(name) {
	case "md5":
		return HashTypeMD5, true
	case "sha1":
		return HashTypeSHA1, true
	case "sha256":
		return HashTypeSHA256, true
	case "sha512":
		return HashTypeSHA512, true
	default:
		return 0, false
	}
}

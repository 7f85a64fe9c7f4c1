package dupfiles

import "fmt"

// This file defines the public API entry points used by the CLI

// InitLogging applies the verbose level and debug flags from cfg
func InitLogging(cfg *Config) {
	verboseConfig := cfg.GetVerboseConfig()
	SetVerboseLevel(verboseConfig.Level)
	SetDebugFlags(verboseConfig.Debug)
	if verboseConfig.Debug != "" {
		VerboseLog(1, "Debug flags initialised: %s", verboseConfig.Debug)
	}
}

// NewScannerFromConfig creates a scanner, loading the ignore file named in cfg if any
func NewScannerFromConfig(cfg *Config) (*Scanner, error) {
	scanConfig := cfg.GetScanConfig()
	if scanConfig.IgnoreFile == "" {
		return NewScanner(nil), nil
	}

	ignoreFile, err := ExpandPath(scanConfig.IgnoreFile)
	if err != nil {
		return nil, err
	}
	ignore := NewIgnoreManager(ignoreFile)
	if err := ignore.LoadIgnorePatterns(); err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns from %s: %w", ignoreFile, err)
	}
	return NewScanner(ignore), nil
}

// Run scans root and reports its duplicate files using strategy and cfg
func Run(cfg *Config, root string, strategy Strategy) (ScanResult, error) {
	defer VerboseEnter()()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	scanner, err := NewScannerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	finder, err := NewFinderFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	paths, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	return finder.Find(paths, strategy)
}

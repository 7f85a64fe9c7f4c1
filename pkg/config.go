package dupfiles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dupfiles configuration
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Default string // Hash algorithm for the checksum strategy
}

// CompareConfig represents byte comparison configuration
type CompareConfig struct {
	ChunkSize string // Read chunk size, human readable (default: "8K")
	Shallow   bool   // Trust identical stat signatures without reading content
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	Format string // json, yaml, fdupes, human
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // 0=quiet, 1=skipped files, 2=pipeline stages, 3=trace
	Debug string // comma-separated debug flags
}

// ScanConfig represents directory scan configuration
type ScanConfig struct {
	IgnoreFile string // Optional file of regex patterns to skip
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash    *HashConfig
	Compare *CompareConfig
	Output  *OutputConfig
	Verbose *VerboseConfig
	Scan    *ScanConfig
}

// DefaultConfigPath returns $HOME/.dupfiles/config, or "" when there is no home directory
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dupfiles", "config")
}

// LoadConfig loads configuration from configPath. A missing file (or an
// empty path) yields the built-in defaults; nothing is written to disk.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		configPath: configPath,
	}

	if configPath == "" {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		return cfg, nil
	}

	iniFile, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ini = iniFile

	return cfg, nil
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	defaults := []struct {
		section, key, value string
	}{
		{"filehash", "default", DefaultHashAlgorithm},
		{"compare", "chunk_size", "8K"},
		{"compare", "shallow", "true"},
		{"output", "format", DefaultOutputFormat},
		{"verbose", "level", "0"},
		{"verbose", "debug", ""},
		{"scan", "ignore_file", ""},
	}

	for _, d := range defaults {
		section, err := c.ini.GetSection(d.section)
		if err != nil {
			section, err = c.ini.NewSection(d.section)
			if err != nil {
				return fmt.Errorf("failed to create %s section: %w", d.section, err)
			}
		}
		if _, err := section.NewKey(d.key, d.value); err != nil {
			return fmt.Errorf("failed to set default %s.%s: %w", d.section, d.key, err)
		}
	}

	return nil
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		Default: DefaultHashAlgorithm,
	}

	if c.ini.HasSection("filehash") {
		section := c.ini.Section("filehash")
		if section.HasKey("default") {
			hashConfig.Default = section.Key("default").String()
		}
	}

	return hashConfig
}

// GetCompareConfig returns the byte comparison configuration
func (c *Config) GetCompareConfig() *CompareConfig {
	compareConfig := &CompareConfig{
		ChunkSize: "8K",
		Shallow:   true,
	}

	if c.ini.HasSection("compare") {
		section := c.ini.Section("compare")
		if section.HasKey("chunk_size") {
			if chunkSize := section.Key("chunk_size").String(); chunkSize != "" {
				compareConfig.ChunkSize = chunkSize
			}
		}
		if section.HasKey("shallow") {
			if shallow, err := section.Key("shallow").Bool(); err == nil {
				compareConfig.Shallow = shallow
			}
		}
	}

	return compareConfig
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format: DefaultOutputFormat,
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("format") {
			outputConfig.Format = section.Key("format").String()
		}
	}

	return outputConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetScanConfig returns the scan configuration
func (c *Config) GetScanConfig() *ScanConfig {
	scanConfig := &ScanConfig{}

	if c.ini.HasSection("scan") {
		section := c.ini.Section("scan")
		if section.HasKey("ignore_file") {
			scanConfig.IgnoreFile = section.Key("ignore_file").String()
		}
	}

	return scanConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:    c.GetHashConfig(),
		Compare: c.GetCompareConfig(),
		Output:  c.GetOutputConfig(),
		Verbose: c.GetVerboseConfig(),
		Scan:    c.GetScanConfig(),
	}
}

// Path returns the file the configuration was loaded from (or will be saved to)
func (c *Config) Path() string {
	return c.configPath
}

// Save writes the configuration to its path, creating the parent directory
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config path to save to")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return c.ini.SaveTo(c.configPath)
}

// ApplyOverrides applies command-line overrides to the configuration
// Accepts strings like "default:sha256", "chunk_size:64K", "shallow:false", "format:yaml"
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "default", "hash":
			c.ini.Section("filehash").Key("default").SetValue(value)
		case "chunk_size":
			c.ini.Section("compare").Key("chunk_size").SetValue(value)
		case "shallow":
			c.ini.Section("compare").Key("shallow").SetValue(value)
		case "format":
			c.ini.Section("output").Key("format").SetValue(value)
		case "level":
			c.ini.Section("verbose").Key("level").SetValue(value)
		case "debug":
			c.ini.Section("verbose").Key("debug").SetValue(value)
		case "ignore_file":
			c.ini.Section("scan").Key("ignore_file").SetValue(value)
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: default, hash, chunk_size, shallow, format, level, debug, ignore_file)", key)
		}
	}

	return nil
}

// Validate checks every configured value, returning the first problem found
func (c *Config) Validate() error {
	all := c.GetAllConfig()

	if err := ValidateHashAlgorithm(all.Hash.Default); err != nil {
		return err
	}
	if err := ValidateChunkSize(all.Compare.ChunkSize); err != nil {
		return err
	}
	if c.ini.Section("compare").HasKey("shallow") {
		if _, err := c.ini.Section("compare").Key("shallow").Bool(); err != nil {
			return fmt.Errorf("invalid shallow value: %s", c.ini.Section("compare").Key("shallow").String())
		}
	}
	if err := ValidateOutputFormat(all.Output.Format); err != nil {
		return err
	}
	if c.ini.Section("verbose").HasKey("level") {
		if _, err := c.ini.Section("verbose").Key("level").Int(); err != nil {
			return fmt.Errorf("invalid verbose level: %s", c.ini.Section("verbose").Key("level").String())
		}
	}
	if err := ValidateVerboseLevel(all.Verbose.Level); err != nil {
		return err
	}
	return ValidateDebugFlags(all.Verbose.Debug)
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	if _, ok := HashTypeFromName(algorithm); !ok {
		return fmt.Errorf("unsupported hash algorithm: %s (supported: md5, sha1, sha256, sha512)", algorithm)
	}
	return nil
}

// ValidateChunkSize validates a human readable comparison chunk size
func ValidateChunkSize(chunkSize string) error {
	size, err := ParseHumanSize(chunkSize)
	if err != nil {
		return fmt.Errorf("invalid chunk size: %w", err)
	}
	if size > MaxChunkSize {
		return fmt.Errorf("invalid chunk size: %s exceeds the 64M maximum", chunkSize)
	}
	return nil
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatJSON, FormatYAML, FormatFdupes, FormatHuman:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: json, yaml, fdupes, human)", format)
	}
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

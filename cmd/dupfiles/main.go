package main

import (
	"fmt"
	"os"
	"strconv"

	dupfiles "github.com/mattkeenan/dupfiles/pkg"
	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "dupfiles: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "dupfiles",
		Usage:   "report groups of duplicate files below a directory",
		Version: version,
		Description: "Scans --path recursively and prints the duplicate groups it finds. " +
			"By default files are grouped by size and then by checksum; --compare " +
			"compares files directly instead.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "the root directory to start scanning for duplicate files",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "compare",
				Aliases: []string{"c"},
				Usage:   "find duplicates by comparing files instead of checksums",
			},
			&cli.BoolFlag{
				Name:  "deep",
				Usage: "with --compare, always read file content (disable the stat signature shortcut)",
			},
			&cli.StringFlag{
				Name:  "hash",
				Usage: "checksum algorithm: md5, sha1, sha256, sha512",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: json, yaml, fdupes, human",
			},
			&cli.StringFlag{
				Name:  "ignore-file",
				Usage: "file of regular expressions for paths to skip",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (default: ~/.dupfiles/config)",
			},
			&cli.StringSliceFlag{
				Name:  "set",
				Usage: "override a config value, as key:value (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "save-config",
				Usage: "write the effective configuration back to the config file",
			},
			// -v belongs to the built-in --version flag
			&cli.IntFlag{
				Name:  "verbose",
				Usage: "verbose level 0-3, written to stderr",
			},
			&cli.StringFlag{
				Name:  "debug",
				Usage: "comma-separated debug flags: scan, hash, compare, all",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	configPath := c.String("config")
	if configPath == "" {
		configPath = dupfiles.DefaultConfigPath()
	}

	cfg, err := dupfiles.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyOverrides(flagOverrides(c)); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	dupfiles.InitLogging(cfg)

	if c.Bool("save-config") {
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		dupfiles.VerboseLog(1, "Saved configuration to %s", cfg.Path())
	}

	strategy := dupfiles.StrategyChecksum
	if c.Bool("compare") {
		strategy = dupfiles.StrategyCompare
	}

	result, err := dupfiles.Run(cfg, c.String("path"), strategy)
	if err != nil {
		return err
	}

	buffers, err := dupfiles.FormatResult(result, cfg.GetOutputConfig().Format)
	if err != nil {
		return err
	}
	return dupfiles.WriteResult(os.Stdout, buffers)
}

// flagOverrides turns dedicated flags into config overrides; --set values
// come last so they win
func flagOverrides(c *cli.Context) []string {
	var overrides []string
	if c.IsSet("hash") {
		overrides = append(overrides, "default:"+c.String("hash"))
	}
	if c.IsSet("format") {
		overrides = append(overrides, "format:"+c.String("format"))
	}
	if c.IsSet("ignore-file") {
		overrides = append(overrides, "ignore_file:"+c.String("ignore-file"))
	}
	if c.Bool("deep") {
		overrides = append(overrides, "shallow:false")
	}
	if c.IsSet("verbose") {
		overrides = append(overrides, "level:"+strconv.Itoa(c.Int("verbose")))
	}
	if c.IsSet("debug") {
		overrides = append(overrides, "debug:"+c.String("debug"))
	}
	return append(overrides, c.StringSlice("set")...)
}

package main

import (
	"fmt"
	"os"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// Global state shared by the subcommands
var (
	config *common.Config
	logger arbor.ILogger
)

func usage() {
	fmt.Fprintf(os.Stderr, `Factsheet - static property fact sheet generator

Usage:
  factsheet <command> [flags]

Commands:
  generate    Build the site once and exit
  dev         Build, then serve with file watching and live reload
  init        Scaffold a new site in a directory
  version     Print version information

Run 'factsheet <command> -h' for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "dev":
		runDev(os.Args[2:])
	case "init":
		runInit(os.Args[2:])
	case "version", "-version", "-v":
		runVersion()
	case "-h", "-help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

// setup runs the shared startup sequence (REQUIRED ORDER):
// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
// 2. Apply CLI overrides (highest priority)
// 3. Initialize logger
// 4. Print banner
func setup(configFiles configPaths, port int, host string) {
	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("factsheet.toml"); err == nil {
			configFiles = append(configFiles, "factsheet.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		tempLogger := arbor.NewLogger()
		if len(configFiles) == 0 {
			tempLogger.Fatal().Err(err).Msg("Failed to load configuration")
		} else {
			tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		}
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, port, host)

	logger = common.InitLogger(config)

	common.PrintBanner(common.GetVersion())

	logger.Debug().
		Str("data_dir", config.Site.DataDir).
		Str("output_dir", config.Site.OutputDir).
		Str("log_level", config.Logging.Level).
		Msg("Resolved configuration")
}

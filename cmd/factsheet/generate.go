package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ternarybob/factsheet/internal/site"
)

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var configFiles configPaths
	fs.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	fs.Var(&configFiles, "c", "Configuration file path (shorthand)")
	strict := fs.Bool("strict", false, "Exit non-zero if any property fails to build")
	fs.Parse(args)

	setup(configFiles, 0, "")

	generator, err := site.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize generator")
	}

	summary, err := generator.Build(context.Background())
	if err != nil {
		logger.Fatal().Err(err).Msg("Site build failed")
	}

	fmt.Printf("\nBuild complete: %d succeeded, %d failed (%s)\n",
		summary.Succeeded, summary.Failed, summary.Duration.Round(time.Millisecond))
	for propertyID, msg := range summary.Errors {
		fmt.Printf("  FAILED %s: %s\n", propertyID, msg)
	}

	if *strict && summary.Failed > 0 {
		os.Exit(1)
	}
}

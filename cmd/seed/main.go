// Package main provides a developer CLI that seeds the people table.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"github.com/offthegrid/offthegrid/internal/bootstrap"
	"github.com/offthegrid/offthegrid/internal/config"
	"github.com/offthegrid/offthegrid/internal/database"
	"github.com/offthegrid/offthegrid/internal/logging"
	"github.com/offthegrid/offthegrid/internal/types"
)

// options are the command line overrides applied on top of configuration
type options struct {
	count      int
	batchSize  int
	randomSeed uint64
	preview    int
}

func main() {
	var opts options
	flag.IntVar(&opts.count, "count", -1, "Rows to generate (default SEED_COUNT)")
	flag.IntVar(&opts.batchSize, "batch-size", 0, "Rows per committed batch (default SEED_BATCH_SIZE)")
	flag.Uint64Var(&opts.randomSeed, "random-seed", 0, "Random seed for reproducible data (default SEED_RANDOM_SEED)")
	flag.IntVar(&opts.preview, "preview", 5, "Print the first N people after seeding")
	flag.Parse()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger, closer, err := logging.New(appConfig.Logging, "offthegrid-seed", "")
	if err != nil {
		log.Fatalf("FATAL: Failed to set up logging: %v", err)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, os.Stdout, appConfig, logger, opts); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

// applyOverrides returns a copy of cfg with flag values taking precedence
func applyOverrides(cfg *config.Config, opts options) (*config.Config, error) {
	out := *cfg
	out.Seed.Enabled = true
	if opts.count >= 0 {
		out.Seed.Count = opts.count
	}
	if opts.batchSize > 0 {
		out.Seed.BatchSize = opts.batchSize
	}
	if opts.randomSeed != 0 {
		out.Seed.RandomSeed = opts.randomSeed
	}
	if err := config.Validate(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func run(ctx context.Context, w io.Writer, cfg *config.Config, logger *logging.Logger, opts options) error {
	cfg, err := applyOverrides(cfg, opts)
	if err != nil {
		return err
	}

	result, err := bootstrap.Run(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if result.Skipped {
		fmt.Fprintf(w, "Table already holds %d people, nothing generated\n", result.Existing)
	} else {
		fmt.Fprintf(w, "Generated %d people in %d batches (%s)\n",
			result.Inserted, result.Batches, result.Duration.Round(time.Millisecond))
	}

	if opts.preview <= 0 {
		return nil
	}
	return printPreview(ctx, w, cfg, opts.preview)
}

func printPreview(ctx context.Context, w io.Writer, cfg *config.Config, n int) error {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	people, err := database.NewPeopleRepository(db, nil).ListPeople(ctx, types.ListPeopleParams{Limit: n})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE\tHOBBY")
	for _, p := range people {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.ID, p.Name, p.Age, p.Hobby)
	}
	return tw.Flush()
}

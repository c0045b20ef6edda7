package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/fieldops/route-audit/pkg/audit"
)

func main() {
	app := &cli.App{
		Name:  "route-audit",
		Usage: "Cross-check a route index against per-route coordinate tables and report data-quality anomalies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML config file",
			},
			&cli.StringFlag{
				Name:    "index",
				Aliases: []string{"i"},
				Usage:   "Path to the index CSV driving the batch",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Folder containing the per-route Excel files",
			},
			&cli.StringFlag{
				Name:  "ext",
				Usage: "Extension of the per-route data files",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Path for the summary report",
			},
			&cli.StringFlag{
				Name:  "problem-out",
				Usage: "Path for the non-Good routes report",
			},
			&cli.StringFlag{
				Name:  "missing-out",
				Usage: "Path for the missing-files report",
			},
			&cli.BoolFlag{
				Name:    "parallel",
				Aliases: []string{"p"},
				Usage:   "Process routes with a worker pool",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Worker count when --parallel is set (default: CPUs minus one)",
			},
			&cli.Float64Flag{
				Name:  "min-lat",
				Usage: "Southern edge of the region of interest",
			},
			&cli.Float64Flag{
				Name:  "max-lat",
				Usage: "Northern edge of the region of interest",
			},
			&cli.Float64Flag{
				Name:  "min-lon",
				Usage: "Western edge of the region of interest",
			},
			&cli.Float64Flag{
				Name:  "max-lon",
				Usage: "Eastern edge of the region of interest",
			},
			&cli.Float64Flag{
				Name:  "jump-km",
				Usage: "Segment length treated as a large jump",
			},
			&cli.Float64Flag{
				Name:  "stationary-km",
				Usage: "Segment length below which movement counts as stationary",
			},
			&cli.IntFlag{
				Name:  "stationary-count",
				Usage: "Stationary segments tolerated before flagging",
			},
			&cli.Float64Flag{
				Name:  "alternation-fraction",
				Usage: "Region transitions per point before flagging frequent alternation",
			},
			&cli.Float64Flag{
				Name:  "poor-quality-yield",
				Usage: "Minimum valid/total point fraction for a usable route",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Verbose development logging",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	var zapLogger *zap.Logger
	var err error
	if c.Bool("debug") {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	records, err := audit.LoadIndexFile(cfg.IndexFile)
	if err != nil {
		return err
	}
	log.Infof("loaded index %s with %d entries", cfg.IndexFile, len(records))

	runner := audit.NewRunner(cfg, audit.NewEvaluator(cfg), log)
	results := runner.Run(records)

	if err := audit.WriteReports(cfg, results, log); err != nil {
		return err
	}
	audit.LogSummary(results, log)
	return nil
}

// buildConfig overlays the optional YAML file on the defaults, then applies
// any flags the user set explicitly.
func buildConfig(c *cli.Context) (audit.Config, error) {
	cfg := audit.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = audit.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}
	if c.IsSet("index") {
		cfg.IndexFile = c.String("index")
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("ext") {
		cfg.DataExt = c.String("ext")
	}
	if c.IsSet("out") {
		cfg.SummaryFile = c.String("out")
	}
	if c.IsSet("problem-out") {
		cfg.ProblemFile = c.String("problem-out")
	}
	if c.IsSet("missing-out") {
		cfg.MissingFile = c.String("missing-out")
	}
	if c.IsSet("parallel") {
		cfg.Parallel = c.Bool("parallel")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("min-lat") {
		cfg.Region.MinLat = c.Float64("min-lat")
	}
	if c.IsSet("max-lat") {
		cfg.Region.MaxLat = c.Float64("max-lat")
	}
	if c.IsSet("min-lon") {
		cfg.Region.MinLon = c.Float64("min-lon")
	}
	if c.IsSet("max-lon") {
		cfg.Region.MaxLon = c.Float64("max-lon")
	}
	if c.IsSet("jump-km") {
		cfg.LargeJumpKM = c.Float64("jump-km")
	}
	if c.IsSet("stationary-km") {
		cfg.StationaryKM = c.Float64("stationary-km")
	}
	if c.IsSet("stationary-count") {
		cfg.StationaryCount = c.Int("stationary-count")
	}
	if c.IsSet("alternation-fraction") {
		cfg.AlternationFraction = c.Float64("alternation-fraction")
	}
	if c.IsSet("poor-quality-yield") {
		cfg.PoorQualityYield = c.Float64("poor-quality-yield")
	}
	return cfg, nil
}

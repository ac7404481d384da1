package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/drakos74/offset-model/infra/config"
	"github.com/drakos74/offset-model/internal/data"
	"github.com/drakos74/offset-model/internal/fit"
	"github.com/drakos74/offset-model/internal/metrics"
	"github.com/drakos74/offset-model/internal/model"
	"github.com/drakos74/offset-model/internal/report"
	"github.com/rs/zerolog/log"
)

var axes = []model.Axis{model.Azimuth, model.Elevation}

func fitCommand(args []string, stdout, stderr io.Writer) error {
	d := config.Default()

	fs := flag.NewFlagSet("fit", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	degree := fs.Int("degree", d.Degree, "polynomial degree")
	z := fs.Float64("z", d.ZThreshold, "z-score at which a sample is rejected")
	output := fs.String("output", d.Output, "diagnostics summary file")
	plotEnabled := fs.Bool("plot", d.Plot.Enabled, "save a plot per axis")
	plotDir := fs.String("plot-dir", d.Plot.Dir, "directory of the plots")
	metricsFile := fs.String("metrics", d.Metrics, "write fit metrics to this file in the prometheus text format")
	dryRun := fs.Bool("dry-run", false, "fit and report without saving the models")
	v := fs.Bool("v", false, "debug logging")
	sf := bindStoreFlags(fs)

	if err := parse(fs, args, stderr); err != nil {
		return err
	}
	verbose(*v)
	if fs.NArg() != 1 {
		return usage("fit needs exactly one table, found %d arguments %v", fs.NArg(), fs.Args())
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "degree":
			cfg.Degree = *degree
		case "z":
			cfg.ZThreshold = *z
		case "output":
			cfg.Output = *output
		case "plot":
			cfg.Plot.Enabled = *plotEnabled
		case "plot-dir":
			cfg.Plot.Dir = *plotDir
		case "metrics":
			cfg.Metrics = *metricsFile
		default:
			sf.apply(f.Name, &cfg)
		}
	})
	if *dryRun {
		cfg.Store.Backend = config.VoidBackend
	}
	if err := cfg.Validate(); err != nil {
		return usage("fit: %v", err)
	}

	table, err := data.Load(fs.Arg(0), data.Format{
		Delimiter: cfg.DelimiterRune(),
		Comment:   cfg.CommentRune(),
	})
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	m := metrics.New()

	// both axes are fitted before anything is saved
	results := make(map[model.Axis]fit.Result, len(axes))
	for _, axis := range axes {
		r, err := table.Samples(axis).Fit(cfg.Degree, fit.WithZThreshold(cfg.ZThreshold))
		if err != nil {
			return fmt.Errorf("fit %s: %w", axis, err)
		}
		log.Info().
			Str("axis", string(axis)).
			Int("retained", r.Count()).
			Int("rejected", r.Rejected()).
			Float64("r2", r.RSquared).
			Msg("fitted")
		m.Observe(axis, r)
		results[axis] = r
	}

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()
	saved, err := store.SaveAll(results)
	if err != nil {
		return err
	}
	for _, axis := range axes {
		m.Saved(axis)
		log.Info().Str("axis", string(axis)).Str("id", saved[axis].ID).Str("backend", cfg.Store.Backend).Msg("saved model")
	}

	for _, axis := range axes {
		fmt.Fprintln(stdout, report.Section(axis, results[axis]))
	}

	summary := report.Summarize(results[model.Azimuth], results[model.Elevation])
	if err := report.Write(cfg.Output, summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	fmt.Fprintf(stdout, "Summary saved to: %s\n", cfg.Output)

	if cfg.Plot.Enabled {
		if err := os.MkdirAll(cfg.Plot.Dir, 0755); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		for _, axis := range axes {
			path := report.PlotFile(cfg.Plot.Dir, axis)
			if err := report.Plot(axis, table.Samples(axis), results[axis], path); err != nil {
				return fmt.Errorf("plot %s: %w", axis, err)
			}
			log.Info().Str("axis", string(axis)).Str("path", path).Msg("saved plot")
		}
	}

	if cfg.Metrics != "" {
		if err := m.WriteFile(cfg.Metrics); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}
	return nil
}

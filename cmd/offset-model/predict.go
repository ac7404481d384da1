package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/drakos74/offset-model/infra/config"
	"github.com/drakos74/offset-model/internal/model"
)

func predictCommand(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "config file")
	az := fs.Float64("az", 0, "azimuth to predict the offset at (deg)")
	el := fs.Float64("el", 0, "elevation to predict the offset at (deg)")
	axisName := fs.String("axis", "", fmt.Sprintf("axis to predict, one of %s or its input column, with -at", strings.Join(model.KnownAxes(), ", ")))
	at := fs.Float64("at", 0, "angle to predict the -axis offset at (deg)")
	v := fs.Bool("v", false, "debug logging")
	sf := bindStoreFlags(fs)

	if err := parse(fs, args, stderr); err != nil {
		return err
	}
	verbose(*v)
	if fs.NArg() != 0 {
		return usage("predict takes no arguments, found %v", fs.Args())
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	queries := make(map[model.Axis]float64)
	atSet := false
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "az":
			queries[model.Azimuth] = *az
		case "el":
			queries[model.Elevation] = *el
		case "at":
			atSet = true
		default:
			sf.apply(f.Name, &cfg)
		}
	})
	if *axisName != "" || atSet {
		if *axisName == "" || !atSet {
			return usage("predict: -axis and -at go together")
		}
		axis, err := model.ParseAxis(*axisName)
		if err != nil {
			return usage("predict: %v", err)
		}
		if _, ok := queries[axis]; ok {
			return usage("predict: %s is queried twice", axis)
		}
		queries[axis] = *at
	}
	if len(queries) == 0 {
		return usage("predict needs at least one of -az, -el or -axis with -at")
	}
	for axis, q := range queries {
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return usage("predict: %s query must be finite, found %v", axis.Input(), q)
		}
	}
	if err := cfg.Validate(); err != nil {
		return usage("predict: %v", err)
	}

	store, closeStore, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	for _, axis := range axes {
		q, ok := queries[axis]
		if !ok {
			continue
		}
		p, err := store.Predict(axis, q)
		if err != nil {
			return fmt.Errorf("predict %s: %w", axis, err)
		}
		fmt.Fprintf(stdout, "Predicted %s: %.4f arcsec\n", axis, p)
	}
	return nil
}

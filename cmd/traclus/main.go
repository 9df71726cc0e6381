// Package main provides the traclus command: it partitions trajectories,
// clusters the segments and writes one representative path per cluster.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/banshee-data/traclus/internal/config"
	"github.com/banshee-data/traclus/internal/monitoring"
	"github.com/banshee-data/traclus/internal/traclus/pipeline"
	"github.com/banshee-data/traclus/internal/traclus/trajio"
	"github.com/banshee-data/traclus/internal/version"
)

// Options holds the parsed command-line flags.
type Options struct {
	Input      string
	ConfigPath string
	Output     string
	Verbose    bool
	Quiet      bool
	Version    bool

	// Overrides applied on top of the loaded tuning config; only flags the
	// user actually set are copied in.
	Algorithm  string
	Theta      float64
	Epsilon    float64
	ClusterEps float64
	MinLines   int
	MinDist    float64

	set map[string]bool
}

var errMissingInput = errors.New("-input is required")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("traclus: %v", err)
	}
}

func parseFlags(args []string) (*Options, error) {
	opts := &Options{}
	defaults := config.EmptyTuningConfig()

	fs := flag.NewFlagSet("traclus", flag.ContinueOnError)
	fs.StringVar(&opts.Input, "input", "", "Trajectory file (.csv with traj_id,x,y rows, or .geojson)")
	fs.StringVar(&opts.ConfigPath, "config", "", "Tuning config JSON file (defaults apply when omitted)")
	fs.StringVar(&opts.Output, "output", "", "Result file (.json or .geojson); JSON summary to stdout when omitted")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Enable per-trajectory and per-cluster debug logging")
	fs.BoolVar(&opts.Quiet, "quiet", false, "Suppress all logging")
	fs.BoolVar(&opts.Version, "version", false, "Print version and exit")

	fs.StringVar(&opts.Algorithm, "algorithm", defaults.GetAlgorithm(), "Partitioning algorithm: mdl or rdp")
	fs.Float64Var(&opts.Theta, "theta", defaults.GetTheta(), "MDL compression penalty")
	fs.Float64Var(&opts.Epsilon, "epsilon", defaults.GetRDPEpsilon(), "RDP maximum deviation")
	fs.Float64Var(&opts.ClusterEps, "cluster-eps", defaults.GetClusterEpsilon(), "Clustering neighbourhood radius")
	fs.IntVar(&opts.MinLines, "min-lines", defaults.GetMinLines(), "Minimum neighbourhood size for a core segment")
	fs.Float64Var(&opts.MinDist, "min-dist", defaults.GetMinDist(), "Minimum spacing between representative points")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// tuningConfig loads the config file (if any) and applies explicitly set
// flag overrides.
func (o *Options) tuningConfig() (*config.TuningConfig, error) {
	cfg := config.EmptyTuningConfig()
	if o.ConfigPath != "" {
		loaded, err := config.LoadTuningConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.set["algorithm"] {
		cfg.Algorithm = &o.Algorithm
	}
	if o.set["theta"] {
		cfg.Theta = &o.Theta
	}
	if o.set["epsilon"] {
		cfg.RDPEpsilon = &o.Epsilon
	}
	if o.set["cluster-eps"] {
		cfg.ClusterEpsilon = &o.ClusterEps
	}
	if o.set["min-lines"] {
		cfg.MinLines = &o.MinLines
	}
	if o.set["min-dist"] {
		cfg.MinDist = &o.MinDist
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// setupLogging routes monitoring output through zap and returns a flush
// function.
func setupLogging(opts *Options) (func(), error) {
	if opts.Quiet {
		monitoring.SetLogger(nil)
		monitoring.SetDebugLogger(nil)
		return func() {}, nil
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	if opts.Verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	sugar := logger.Sugar()

	monitoring.SetLogger(sugar.Infof)
	if opts.Verbose {
		monitoring.SetDebugLogger(sugar.Debugf)
	} else {
		monitoring.SetDebugLogger(nil)
	}
	return func() { _ = logger.Sync() }, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	if opts.Version {
		fmt.Fprintln(stdout, version.String())
		return nil
	}
	if opts.Input == "" {
		return errMissingInput
	}

	flush, err := setupLogging(opts)
	if err != nil {
		return err
	}
	defer flush()

	tuning, err := opts.tuningConfig()
	if err != nil {
		return err
	}
	cfg, err := pipeline.ConfigFromTuning(tuning)
	if err != nil {
		return err
	}

	trajectories, err := trajio.LoadFile(opts.Input)
	if err != nil {
		return err
	}
	monitoring.Logf("loaded %d trajectories from %s", len(trajectories), opts.Input)

	result, err := pipeline.Run(trajectories, cfg)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		return trajio.WriteJSON(stdout, result)
	}
	if err := trajio.SaveFile(opts.Output, result); err != nil {
		return err
	}
	monitoring.Logf("wrote %d clusters to %s", len(result.Clusters), opts.Output)
	return nil
}

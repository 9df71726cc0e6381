package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/traclus/internal/config"
	"github.com/banshee-data/traclus/internal/monitoring"
	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
	"github.com/banshee-data/traclus/internal/traclus/l3partition"
	"github.com/banshee-data/traclus/internal/traclus/l4cluster"
	"github.com/banshee-data/traclus/internal/traclus/l5represent"
)

// ErrNoTrajectories is returned when Run is given nothing to cluster.
var ErrNoTrajectories = errors.New("no trajectories")

// Trajectory is one input movement trace.
type Trajectory struct {
	ID     int
	Points []l1geometry.Point
}

// Config holds the parameters of one pipeline run.
type Config struct {
	Algorithm      l3partition.Algorithm
	PartitionParam float64 // Theta for MDL, epsilon for RDP

	Cluster l4cluster.Params

	// MinClusterSegments skips representative generation for kept clusters
	// with fewer segments. Zero keeps every cluster.
	MinClusterSegments int

	Represent l5represent.Params

	// Clusterer overrides the density clusterer built from Cluster.
	Clusterer l4cluster.SegmentClusterer
}

// DefaultConfig returns the pipeline configuration loaded from the
// canonical tuning defaults file (config/traclus.defaults.json).
// Panics if the file cannot be found; intended for tests.
func DefaultConfig() Config {
	cfg, err := ConfigFromTuning(config.MustLoadDefaultConfig())
	if err != nil {
		panic(err)
	}
	return cfg
}

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) (Config, error) {
	algo, err := l3partition.ParseAlgorithm(cfg.GetAlgorithm())
	if err != nil {
		return Config{}, err
	}
	return Config{
		Algorithm:      algo,
		PartitionParam: cfg.GetPartitionParam(),
		Cluster: l4cluster.Params{
			Eps:             cfg.GetClusterEpsilon(),
			MinLines:        cfg.GetMinLines(),
			MinTrajectories: cfg.GetMinTrajectories(),
		},
		MinClusterSegments: cfg.GetMinClusterSegments(),
		Represent: l5represent.Params{
			MinLines:       cfg.GetRepMinLines(),
			MinDist:        cfg.GetMinDist(),
			SignedRotation: cfg.GetSignedRotation(),
		},
	}, nil
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID string

	// Segments is the pooled partition output in trajectory order.
	// Clustering.Labels is indexed like it.
	Segments   []l2segments.Segment
	Clustering l4cluster.Result

	// Clusters holds the kept clusters large enough for representative
	// generation; Representatives is keyed by the same ids.
	Clusters        l4cluster.Clusters
	Representatives map[int][]l1geometry.Point
}

// Run partitions every trajectory, clusters the pooled segments and
// generates a representative path per cluster.
func Run(trajectories []Trajectory, cfg Config) (*Result, error) {
	if len(trajectories) == 0 {
		return nil, ErrNoTrajectories
	}

	runID := uuid.New().String()

	var segments []l2segments.Segment
	for _, traj := range trajectories {
		part, err := l3partition.Partition(traj.Points, traj.ID, cfg.Algorithm, cfg.PartitionParam)
		if err != nil {
			return nil, err
		}
		segments = append(segments, part...)
	}
	monitoring.Logf("[traclus] run %s: %d trajectories partitioned (%s) into %d segments",
		runID, len(trajectories), cfg.Algorithm, len(segments))

	clusterer := cfg.Clusterer
	if clusterer == nil {
		clusterer = l4cluster.NewDensityClusterer(cfg.Cluster.Eps, cfg.Cluster.MinLines, cfg.Cluster.MinTrajectories)
	}
	clustering := clusterer.Cluster(segments)

	clusters := make(l4cluster.Clusters, len(clustering.Kept))
	for _, cid := range clustering.Kept.IDs() {
		members := clustering.Kept[cid]
		if len(members) < cfg.MinClusterSegments {
			monitoring.Debugf("[traclus] cluster %d skipped: %d segments < %d", cid, len(members), cfg.MinClusterSegments)
			continue
		}
		clusters[cid] = members
	}

	reps, err := l5represent.Generate(clusters, cfg.Represent)
	if err != nil {
		return nil, fmt.Errorf("representatives: %w", err)
	}
	monitoring.Logf("[traclus] run %s: %d representative paths", runID, len(reps))

	return &Result{
		RunID:           runID,
		Segments:        segments,
		Clustering:      clustering,
		Clusters:        clusters,
		Representatives: reps,
	}, nil
}

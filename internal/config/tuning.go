package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/traclus.defaults.json"

// TuningConfig represents the root configuration for partitioning,
// clustering and representative generation. Every field is optional: the
// Get* accessors fall back to the built-in defaults for anything omitted.
type TuningConfig struct {
	// Partitioning
	Algorithm  *string  `json:"algorithm,omitempty"` // "mdl" or "rdp"
	Theta      *float64 `json:"theta,omitempty"`     // MDL compression penalty
	RDPEpsilon *float64 `json:"rdp_epsilon,omitempty"`

	// Clustering
	ClusterEpsilon  *float64 `json:"cluster_epsilon,omitempty"`
	MinLines        *int     `json:"min_lines,omitempty"`
	MinTrajectories *int     `json:"min_trajectories,omitempty"`

	// Representative generation
	MinClusterSegments *int     `json:"min_cluster_segments,omitempty"`
	RepMinLines        *int     `json:"rep_min_lines,omitempty"`
	MinDist            *float64 `json:"min_dist,omitempty"`
	SignedRotation     *bool    `json:"signed_rotation,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field set to its
// built-in default.
func DefaultTuningConfig() *TuningConfig {
	c := EmptyTuningConfig()
	return &TuningConfig{
		Algorithm:          ptrString(c.GetAlgorithm()),
		Theta:              ptrFloat64(c.GetTheta()),
		RDPEpsilon:         ptrFloat64(c.GetRDPEpsilon()),
		ClusterEpsilon:     ptrFloat64(c.GetClusterEpsilon()),
		MinLines:           ptrInt(c.GetMinLines()),
		MinTrajectories:    ptrInt(c.GetMinTrajectories()),
		MinClusterSegments: ptrInt(c.GetMinClusterSegments()),
		RepMinLines:        ptrInt(c.GetRepMinLines()),
		MinDist:            ptrFloat64(c.GetMinDist()),
		SignedRotation:     ptrBool(c.GetSignedRotation()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/traclus/pipeline/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.Algorithm != nil {
		switch strings.ToLower(*c.Algorithm) {
		case "mdl", "rdp":
		default:
			return fmt.Errorf("algorithm must be \"mdl\" or \"rdp\", got %q", *c.Algorithm)
		}
	}

	if c.Theta != nil && (math.IsNaN(*c.Theta) || math.IsInf(*c.Theta, 0)) {
		return fmt.Errorf("theta must be finite, got %f", *c.Theta)
	}

	if c.RDPEpsilon != nil && !(*c.RDPEpsilon >= 0) {
		return fmt.Errorf("rdp_epsilon must be non-negative, got %f", *c.RDPEpsilon)
	}

	if c.ClusterEpsilon != nil && !(*c.ClusterEpsilon >= 0) {
		return fmt.Errorf("cluster_epsilon must be non-negative, got %f", *c.ClusterEpsilon)
	}

	if c.MinLines != nil && *c.MinLines < 1 {
		return fmt.Errorf("min_lines must be at least 1, got %d", *c.MinLines)
	}

	if c.MinTrajectories != nil && *c.MinTrajectories < 1 {
		return fmt.Errorf("min_trajectories must be at least 1, got %d", *c.MinTrajectories)
	}

	if c.MinClusterSegments != nil && *c.MinClusterSegments < 0 {
		return fmt.Errorf("min_cluster_segments must be non-negative, got %d", *c.MinClusterSegments)
	}

	if c.RepMinLines != nil && *c.RepMinLines < 1 {
		return fmt.Errorf("rep_min_lines must be at least 1, got %d", *c.RepMinLines)
	}

	if c.MinDist != nil && !(*c.MinDist >= 0) {
		return fmt.Errorf("min_dist must be non-negative, got %f", *c.MinDist)
	}

	return nil
}

// GetAlgorithm returns the algorithm value (lower-cased) or the default.
func (c *TuningConfig) GetAlgorithm() string {
	if c.Algorithm == nil || *c.Algorithm == "" {
		return "mdl"
	}
	return strings.ToLower(*c.Algorithm)
}

// GetTheta returns the theta value or the default.
func (c *TuningConfig) GetTheta() float64 {
	if c.Theta == nil {
		return 5.0
	}
	return *c.Theta
}

// GetRDPEpsilon returns the rdp_epsilon value or the default.
func (c *TuningConfig) GetRDPEpsilon() float64 {
	if c.RDPEpsilon == nil {
		return 1.0
	}
	return *c.RDPEpsilon
}

// GetPartitionParam returns theta for MDL and rdp_epsilon for RDP.
func (c *TuningConfig) GetPartitionParam() float64 {
	if c.GetAlgorithm() == "rdp" {
		return c.GetRDPEpsilon()
	}
	return c.GetTheta()
}

// GetClusterEpsilon returns the cluster_epsilon value or the default.
func (c *TuningConfig) GetClusterEpsilon() float64 {
	if c.ClusterEpsilon == nil {
		return 2.0
	}
	return *c.ClusterEpsilon
}

// GetMinLines returns the min_lines value or the default.
func (c *TuningConfig) GetMinLines() int {
	if c.MinLines == nil {
		return 5
	}
	return *c.MinLines
}

// GetMinTrajectories returns the min_trajectories value or the default.
func (c *TuningConfig) GetMinTrajectories() int {
	if c.MinTrajectories == nil {
		return 2
	}
	return *c.MinTrajectories
}

// GetMinClusterSegments returns the min_cluster_segments value or the default
// (0: every kept cluster gets a representative).
func (c *TuningConfig) GetMinClusterSegments() int {
	if c.MinClusterSegments == nil {
		return 0
	}
	return *c.MinClusterSegments
}

// GetRepMinLines returns the rep_min_lines value or the default.
func (c *TuningConfig) GetRepMinLines() int {
	if c.RepMinLines == nil {
		return 3
	}
	return *c.RepMinLines
}

// GetMinDist returns the min_dist value or the default.
func (c *TuningConfig) GetMinDist() float64 {
	if c.MinDist == nil {
		return 2.0
	}
	return *c.MinDist
}

// GetSignedRotation returns the signed_rotation value or the default.
func (c *TuningConfig) GetSignedRotation() bool {
	if c.SignedRotation == nil {
		return false
	}
	return *c.SignedRotation
}

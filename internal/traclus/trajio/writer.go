package trajio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/l2segments"
	"github.com/banshee-data/traclus/internal/traclus/pipeline"
)

// Summary is the JSON form of a pipeline result.
type Summary struct {
	RunID           string           `json:"run_id"`
	SegmentCount    int              `json:"segment_count"`
	NoiseCount      int              `json:"noise_count"`
	RemovedClusters int              `json:"removed_clusters"`
	Clusters        []ClusterSummary `json:"clusters"`
}

// ClusterSummary describes one cluster and its representative path.
type ClusterSummary struct {
	ID             int          `json:"id"`
	SegmentCount   int          `json:"segment_count"`
	Trajectories   []int        `json:"trajectories"`
	Representative [][2]float64 `json:"representative"`
	// Polyline is the representative path in Google encoded polyline
	// format with y as the first coordinate, at five decimal places.
	Polyline string `json:"polyline"`
}

// Summarize builds the JSON summary of result, clusters in ascending id
// order.
func Summarize(result *pipeline.Result) Summary {
	summary := Summary{
		RunID:           result.RunID,
		SegmentCount:    len(result.Segments),
		NoiseCount:      len(result.Clustering.Noise()),
		RemovedClusters: len(result.Clustering.Removed),
		Clusters:        make([]ClusterSummary, 0, len(result.Clusters)),
	}
	for _, cid := range result.Clusters.IDs() {
		rep := result.Representatives[cid]
		path := make([][2]float64, len(rep))
		for i, p := range rep {
			path[i] = [2]float64{p.X, p.Y}
		}
		summary.Clusters = append(summary.Clusters, ClusterSummary{
			ID:             cid,
			SegmentCount:   len(result.Clusters[cid]),
			Trajectories:   trajectoryIDs(result.Clusters[cid]),
			Representative: path,
			Polyline:       EncodePolyline(rep),
		})
	}
	return summary
}

// EncodePolyline encodes points as a Google encoded polyline of (y, x)
// pairs.
func EncodePolyline(points []l1geometry.Point) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Y, p.X})
	}
	return string(polyline.EncodeCoords(coords))
}

func trajectoryIDs(segments []l2segments.Segment) []int {
	seen := make(map[int]struct{}, len(segments))
	ids := make([]int, 0)
	for _, s := range segments {
		if _, ok := seen[s.TrajectoryID]; ok {
			continue
		}
		seen[s.TrajectoryID] = struct{}{}
		ids = append(ids, s.TrajectoryID)
	}
	sort.Ints(ids)
	return ids
}

// WriteJSON writes the indented JSON summary of result to w.
func WriteJSON(w io.Writer, result *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Summarize(result)); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}

// FeatureCollection builds a GeoJSON FeatureCollection holding, per cluster,
// a MultiLineString of its member segments and a LineString of its
// representative path (omitted when the path has fewer than two points).
func FeatureCollection(result *pipeline.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, cid := range result.Clusters.IDs() {
		members := make(orb.MultiLineString, 0, len(result.Clusters[cid]))
		for _, s := range result.Clusters[cid] {
			members = append(members, orb.LineString{toOrb(s.Start), toOrb(s.End)})
		}
		seg := geojson.NewFeature(members)
		seg.Properties["run_id"] = result.RunID
		seg.Properties["cluster_id"] = cid
		seg.Properties["kind"] = "segments"
		seg.Properties["trajectories"] = trajectoryIDs(result.Clusters[cid])
		fc.Append(seg)

		rep := result.Representatives[cid]
		if len(rep) < 2 {
			continue
		}
		line := make(orb.LineString, len(rep))
		for i, p := range rep {
			line[i] = toOrb(p)
		}
		f := geojson.NewFeature(line)
		f.Properties["run_id"] = result.RunID
		f.Properties["cluster_id"] = cid
		f.Properties["kind"] = "representative"
		fc.Append(f)
	}
	return fc
}

func toOrb(p l1geometry.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

// WriteGeoJSON writes the FeatureCollection of result to w.
func WriteGeoJSON(w io.Writer, result *pipeline.Result) error {
	data, err := FeatureCollection(result).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}

// SaveFile writes result to path, choosing the writer by extension: .json
// for the summary, .geojson for the FeatureCollection.
func SaveFile(path string, result *pipeline.Result) error {
	var write func(io.Writer, *pipeline.Result) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		write = WriteJSON
	case ".geojson":
		write = WriteGeoJSON
	default:
		return fmt.Errorf("output %q: %w", ext, ErrUnsupportedFormat)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

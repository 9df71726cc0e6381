package trajio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/banshee-data/traclus/internal/traclus/l1geometry"
	"github.com/banshee-data/traclus/internal/traclus/pipeline"
)

var (
	// ErrUnsupportedFormat is returned for a file extension with no reader or
	// writer.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrOddCoordinates is returned when a flat coordinate list has an odd
	// length.
	ErrOddCoordinates = errors.New("flat coordinates must come in x,y pairs")
	// ErrInvalidTrajectoryID is returned for a GeoJSON id that is not an
	// integer.
	ErrInvalidTrajectoryID = errors.New("trajectory id must be an integer")
	// ErrDuplicateTrajectoryID is returned when two GeoJSON features carry the
	// same trajectory id.
	ErrDuplicateTrajectoryID = errors.New("duplicate trajectory id")
)

// TrajectoryIDProperty is the GeoJSON feature property holding the
// trajectory id.
const TrajectoryIDProperty = "traj_id"

// maxInputSize caps the bytes read from a GeoJSON input.
const maxInputSize = 256 * 1024 * 1024 // 256MB

// FromFlatCoords builds a trajectory from [x0, y0, x1, y1, ...].
func FromFlatCoords(id int, coords []float64) (pipeline.Trajectory, error) {
	if len(coords)%2 != 0 {
		return pipeline.Trajectory{}, fmt.Errorf("trajectory %d has %d values: %w", id, len(coords), ErrOddCoordinates)
	}
	points := make([]l1geometry.Point, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		points = append(points, l1geometry.NewTrajectoryPoint(coords[i], coords[i+1], id))
	}
	return pipeline.Trajectory{ID: id, Points: points}, nil
}

// LoadFile reads trajectories from path, choosing the reader by extension:
// .csv for CSV, .geojson or .json for GeoJSON.
func LoadFile(path string) ([]pipeline.Trajectory, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return ReadCSV(f)
	case ".geojson", ".json":
		return ReadGeoJSON(f)
	default:
		return nil, fmt.Errorf("input %q: %w", ext, ErrUnsupportedFormat)
	}
}

// ReadCSV reads rows of traj_id,x,y. A leading header row is skipped when its
// first field is not an integer. Rows may interleave trajectories; points keep
// their row order within a trajectory and trajectories are returned in order
// of first appearance.
func ReadCSV(r io.Reader) ([]pipeline.Trajectory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var (
		trajectories []pipeline.Trajectory
		index        = make(map[int]int)
		row          int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		row++

		id, err := strconv.Atoi(record[0])
		if err != nil {
			if row == 1 {
				continue // Header
			}
			return nil, fmt.Errorf("row %d: invalid traj_id %q: %w", row, record[0], err)
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid x %q: %w", row, record[1], err)
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid y %q: %w", row, record[2], err)
		}

		i, ok := index[id]
		if !ok {
			i = len(trajectories)
			index[id] = i
			trajectories = append(trajectories, pipeline.Trajectory{ID: id})
		}
		trajectories[i].Points = append(trajectories[i].Points, l1geometry.NewTrajectoryPoint(x, y, id))
	}
	return trajectories, nil
}

// ReadGeoJSON reads a FeatureCollection in which each LineString feature is
// one trajectory. Ids come from the traj_id property, then a numeric feature
// id. Features with neither are numbered upwards from the largest explicit
// id, so every LineString gets a distinct trajectory id. Explicit ids must be
// integral and unique. Features of other geometry types are skipped.
func ReadGeoJSON(r io.Reader) ([]pipeline.Trajectory, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize))
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	type tagged struct {
		line     orb.LineString
		id       int
		explicit bool
	}
	var (
		features []tagged
		seen     = make(map[int]int)
		nextID   = 0
	)
	for i, feature := range fc.Features {
		line, ok := feature.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		id, explicit, err := featureID(feature)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		if explicit {
			if prev, dup := seen[id]; dup {
				return nil, fmt.Errorf("features %d and %d share id %d: %w", prev, i, id, ErrDuplicateTrajectoryID)
			}
			seen[id] = i
			if id >= nextID {
				nextID = id + 1
			}
		}
		features = append(features, tagged{line: line, id: id, explicit: explicit})
	}

	trajectories := make([]pipeline.Trajectory, 0, len(features))
	for _, f := range features {
		if !f.explicit {
			f.id = nextID
			nextID++
		}
		trajectories = append(trajectories, lineToTrajectory(f.id, f.line))
	}
	return trajectories, nil
}

// featureID returns the explicit trajectory id of f, if it has one.
func featureID(f *geojson.Feature) (int, bool, error) {
	if v, ok := f.Properties[TrajectoryIDProperty]; ok {
		if n, ok := v.(float64); ok {
			return integralID(n)
		}
	}
	if n, ok := f.ID.(float64); ok {
		return integralID(n)
	}
	return 0, false, nil
}

func integralID(n float64) (int, bool, error) {
	if n != math.Trunc(n) || math.IsInf(n, 0) {
		return 0, false, fmt.Errorf("id %v: %w", n, ErrInvalidTrajectoryID)
	}
	return int(n), true, nil
}

func lineToTrajectory(id int, line orb.LineString) pipeline.Trajectory {
	points := make([]l1geometry.Point, len(line))
	for i, p := range line {
		points[i] = l1geometry.NewTrajectoryPoint(p.X(), p.Y(), id)
	}
	return pipeline.Trajectory{ID: id, Points: points}
}

package globepins

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	geom "github.com/peterstace/simplefeatures/geom"
)

var (
	ErrEmptyCatalog    = errors.New("catalog has no markers")
	ErrInvalidFeature  = errors.New("invalid catalog feature")
	ErrMarkersTooClose = errors.New("markers too close together")
)

type CatalogEntry struct {
	Label       string
	Description string
	Coord       GeoCoordinate
}

// DefaultCatalog returns the two built-in sample markers. The coordinates are fixtures and are
// not checked against the places they are labeled with.
func DefaultCatalog() []CatalogEntry {
	return []CatalogEntry{
		{
			Label:       "novaScotia",
			Description: "Nova Scotia",
			Coord:       GeoCoordinate{Latitude: 40.2048, Longitude: 66.0331},
		},
		{
			Label:       "calgary",
			Description: "Calgary",
			Coord:       GeoCoordinate{Latitude: 51.0447, Longitude: 114.0719},
		},
	}
}

type catalogFeature struct {
	Type       string     `json:"type"`
	Geometry   geom.Point `json:"geometry"`
	Properties struct {
		Label       string `json:"label"`
		Description string `json:"description"`
	} `json:"properties"`
}

type catalogCollection struct {
	Type     string           `json:"type"`
	Features []catalogFeature `json:"features"`
}

// LoadCatalog reads a GeoJSON FeatureCollection of Point features. Positions are [long, lat];
// the label and description come from the feature properties.
func LoadCatalog(path string) ([]CatalogEntry, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(buf)
}

func ParseCatalog(buf []byte) ([]CatalogEntry, error) {
	var fc catalogCollection
	if err := json.Unmarshal(buf, &fc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: top level type %q", ErrInvalidFeature, fc.Type)
	}
	if len(fc.Features) == 0 {
		return nil, ErrEmptyCatalog
	}

	entries := make([]CatalogEntry, 0, len(fc.Features))
	labels := map[string]bool{}
	for i, f := range fc.Features {
		if f.Properties.Label == "" {
			return nil, fmt.Errorf("%w: feature %d has no label", ErrInvalidFeature, i)
		}
		if labels[f.Properties.Label] {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidFeature, f.Properties.Label)
		}
		labels[f.Properties.Label] = true
		c, ok := f.Geometry.Coordinates()
		if !ok {
			return nil, fmt.Errorf("%w: feature %q has an empty point", ErrInvalidFeature, f.Properties.Label)
		}
		coord := GeoCoordinate{Latitude: c.XY.Y, Longitude: c.XY.X}
		if !coord.InRange() {
			log.WithField("marker", f.Properties.Label).Warnf("coordinate %+v outside lat/long range", coord)
		}
		entries = append(entries, CatalogEntry{
			Label:       f.Properties.Label,
			Description: f.Properties.Description,
			Coord:       coord,
		})
	}
	return entries, nil
}

// CheckSeparation projects every entry at radius and fails if any two land closer than minDistance.
func CheckSeparation(entries []CatalogEntry, radius, minDistance float64) error {
	for i, a := range entries {
		pa := Project(a.Coord, radius)
		for _, b := range entries[i+1:] {
			d := pa.Distance(Project(b.Coord, radius))
			if d <= minDistance {
				return fmt.Errorf("%w: %s and %s are %.4f apart", ErrMarkersTooClose, a.Label, b.Label, d)
			}
		}
	}
	return nil
}

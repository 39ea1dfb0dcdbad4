package types

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BoundingBox is the axis-aligned envelope of a polygon. It is derived per
// request and never persisted.
type BoundingBox struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
}

// BoundingBoxOf computes the elementwise min/max envelope of the vertices.
// The caller must pass at least one coordinate.
func BoundingBoxOf(coordinates []Coordinate) BoundingBox {
	box := BoundingBox{
		MinLatitude:  coordinates[0].Latitude,
		MaxLatitude:  coordinates[0].Latitude,
		MinLongitude: coordinates[0].Longitude,
		MaxLongitude: coordinates[0].Longitude,
	}
	for _, c := range coordinates[1:] {
		if c.Latitude < box.MinLatitude {
			box.MinLatitude = c.Latitude
		}
		if c.Latitude > box.MaxLatitude {
			box.MaxLatitude = c.Latitude
		}
		if c.Longitude < box.MinLongitude {
			box.MinLongitude = c.Longitude
		}
		if c.Longitude > box.MaxLongitude {
			box.MaxLongitude = c.Longitude
		}
	}
	return box
}

// Contains reports whether the coordinate lies inside the box, bounds
// inclusive.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Latitude >= b.MinLatitude && c.Latitude <= b.MaxLatitude &&
		c.Longitude >= b.MinLongitude && c.Longitude <= b.MaxLongitude
}

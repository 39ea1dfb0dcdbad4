package store

import "github.com/nestfit/nestfit/pkg/types"

// polygonContains reports whether p lies inside the polygon, boundary
// included, by even-odd ray casting. Degenerate polygons (one or two
// vertices) contain exactly the points on their vertices or edge. The
// polygon closes itself; the last vertex need not repeat the first.
func polygonContains(polygon []types.Coordinate, p types.Coordinate) bool {
	n := len(polygon)
	if n == 0 {
		return false
	}

	for i := range n {
		if onSegment(polygon[i], polygon[(i+1)%n], p) {
			return true
		}
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Longitude > p.Longitude) == (b.Longitude > p.Longitude) {
			continue
		}
		t := (p.Longitude - a.Longitude) / (b.Longitude - a.Longitude)
		if p.Latitude < a.Latitude+t*(b.Latitude-a.Latitude) {
			inside = !inside
		}
	}
	return inside
}

// onSegment reports whether p lies on the closed segment ab.
func onSegment(a, b, p types.Coordinate) bool {
	cross := (b.Latitude-a.Latitude)*(p.Longitude-a.Longitude) -
		(b.Longitude-a.Longitude)*(p.Latitude-a.Latitude)
	if cross != 0 {
		return false
	}
	return p.Latitude >= min(a.Latitude, b.Latitude) && p.Latitude <= max(a.Latitude, b.Latitude) &&
		p.Longitude >= min(a.Longitude, b.Longitude) && p.Longitude <= max(a.Longitude, b.Longitude)
}

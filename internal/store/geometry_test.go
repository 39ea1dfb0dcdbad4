package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nestfit/nestfit/pkg/types"
)

func coord(lat, lon float64) types.Coordinate {
	return types.Coordinate{Latitude: lat, Longitude: lon}
}

func TestPolygonContains_Triangle(t *testing.T) {
	triangle := []types.Coordinate{coord(0, 0), coord(10, 0), coord(0, 10)}

	tests := []struct {
		name string
		p    types.Coordinate
		want bool
	}{
		{"interior point", coord(2, 2), true},
		{"outside beyond hypotenuse", coord(6, 6), false},
		{"far outside", coord(100, 100), false},
		{"vertex", coord(0, 0), true},
		{"on horizontal edge", coord(5, 0), true},
		{"on hypotenuse", coord(5, 5), true},
		{"just outside hypotenuse", coord(5.1, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, polygonContains(triangle, tt.p))
		})
	}
}

func TestPolygonContains_Square(t *testing.T) {
	square := []types.Coordinate{coord(0, 0), coord(4, 0), coord(4, 4), coord(0, 4)}

	tests := []struct {
		name string
		p    types.Coordinate
		want bool
	}{
		{"center", coord(2, 2), true},
		{"on left edge", coord(0, 2), true},
		{"on top edge", coord(2, 4), true},
		{"left of square", coord(-1, 2), false},
		{"above square", coord(2, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, polygonContains(square, tt.p))
		})
	}
}

func TestPolygonContains_Concave(t *testing.T) {
	// An L shape: the notch at the top right is outside.
	shape := []types.Coordinate{
		coord(0, 0), coord(4, 0), coord(4, 2), coord(2, 2), coord(2, 4), coord(0, 4),
	}

	assert.True(t, polygonContains(shape, coord(1, 3)), "point in the upright of the L")
	assert.True(t, polygonContains(shape, coord(3, 1)), "point in the foot of the L")
	assert.False(t, polygonContains(shape, coord(3, 3)), "point in the notch")
}

func TestPolygonContains_Degenerate(t *testing.T) {
	t.Run("empty polygon contains nothing", func(t *testing.T) {
		assert.False(t, polygonContains(nil, coord(0, 0)))
	})

	t.Run("single vertex contains only itself", func(t *testing.T) {
		point := []types.Coordinate{coord(3, 4)}
		assert.True(t, polygonContains(point, coord(3, 4)))
		assert.False(t, polygonContains(point, coord(3, 5)))
	})

	t.Run("two vertices contain only the segment", func(t *testing.T) {
		segment := []types.Coordinate{coord(0, 0), coord(4, 4)}
		assert.True(t, polygonContains(segment, coord(2, 2)))
		assert.True(t, polygonContains(segment, coord(4, 4)))
		assert.False(t, polygonContains(segment, coord(2, 3)))
		assert.False(t, polygonContains(segment, coord(5, 5)), "beyond the endpoint is off the segment")
	})
}

func TestOnSegment(t *testing.T) {
	a, b := coord(0, 0), coord(10, 10)

	assert.True(t, onSegment(a, b, coord(5, 5)))
	assert.True(t, onSegment(a, b, coord(0, 0)))
	assert.True(t, onSegment(a, b, coord(10, 10)))
	assert.False(t, onSegment(a, b, coord(5, 6)), "off the line")
	assert.False(t, onSegment(a, b, coord(11, 11)), "collinear but past the end")
}

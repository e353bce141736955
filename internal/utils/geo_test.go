package utils

import (
	"math"
	"testing"

	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name      string
		point1    models.GeoPoint
		point2    models.GeoPoint
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same point",
			point1:    models.GeoPoint{Latitude: 37.7749, Longitude: -122.4194},
			point2:    models.GeoPoint{Latitude: 37.7749, Longitude: -122.4194},
			expected:  0,
			tolerance: 0.001,
		},
		{
			name:      "San Francisco to Oakland (approximately)",
			point1:    models.GeoPoint{Latitude: 37.7749, Longitude: -122.4194},
			point2:    models.GeoPoint{Latitude: 37.8044, Longitude: -122.2712},
			expected:  13400,
			tolerance: 500,
		},
		{
			name:      "Ten meters north",
			point1:    models.GeoPoint{Latitude: 37.7749, Longitude: -122.4194},
			point2:    models.GeoPoint{Latitude: 37.7749 + 10/111195.0, Longitude: -122.4194},
			expected:  10,
			tolerance: 0.05,
		},
		{
			name:      "Cross equator",
			point1:    models.GeoPoint{Latitude: -1.0, Longitude: 0},
			point2:    models.GeoPoint{Latitude: 1.0, Longitude: 0},
			expected:  222390,
			tolerance: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMeters(tt.point1, tt.point2)
			assert.True(t, math.Abs(got-tt.expected) <= tt.tolerance,
				"expected %.3f within %.3f, got %.3f", tt.expected, tt.tolerance, got)
		})
	}
}

func TestWithGeohash(t *testing.T) {
	sample := models.LocationSample{Latitude: 37.7749, Longitude: -122.4194, TimestampMs: 1}

	got := WithGeohash(sample)

	assert.Len(t, got.Geohash, GeohashPrecision)
	assert.Equal(t, "9q8yy", got.Geohash[:5])
	assert.Empty(t, sample.Geohash, "input is not mutated")
}

package utils

import (
	"math"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/kidtrack/internal/pkg/models"
)

// GeohashPrecision is the precision samples are indexed with (cells of roughly 5x5 meters)
const GeohashPrecision = 9

// earthRadiusMeters is the mean earth radius used by the haversine formula
const earthRadiusMeters = 6371000.0

// EncodeSample returns the geohash of a sample
func EncodeSample(sample models.LocationSample) string {
	return geohash.EncodeWithPrecision(sample.Latitude, sample.Longitude, GeohashPrecision)
}

// WithGeohash returns a copy of sample with its geohash populated
func WithGeohash(sample models.LocationSample) models.LocationSample {
	sample.Geohash = EncodeSample(sample)
	return sample
}

// PointOf drops the timestamp of a sample
func PointOf(sample models.LocationSample) models.GeoPoint {
	return models.GeoPoint{Latitude: sample.Latitude, Longitude: sample.Longitude}
}

// DistanceMeters calculates the great-circle distance between two points using the Haversine formula
func DistanceMeters(point1, point2 models.GeoPoint) float64 {
	lat1 := point1.Latitude * math.Pi / 180.0
	lon1 := point1.Longitude * math.Pi / 180.0
	lat2 := point2.Latitude * math.Pi / 180.0
	lon2 := point2.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0088

// DetHash digests the given parts into a 48-bit integer. It is a stable,
// content-keyed stand-in for a seeded PRNG: the same parts always yield the
// same value across runs, so estimates derived from it are reproducible.
// Not a security use of hashing.
func DetHash(parts ...string) uint64 {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return binary.BigEndian.Uint64(sum[:8]) >> 16
}

// DrawInRange maps key deterministically into [low, high).
func DrawInRange(low, high float64, key string) float64 {
	span := high - low
	if span <= 0 {
		return low
	}
	frac := float64(DetHash(key)%10_000) / 10_000.0
	return low + frac*span
}

// DrawIntInRange maps key deterministically into [low, high] inclusive.
func DrawIntInRange(low, high int, key string) int {
	if low >= high {
		return low
	}
	return low + int(DetHash(key)%uint64(high-low+1))
}

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// BucketIndex picks one of five distance buckets for a node pair when no
// coordinates are available. The hash of (a, b, city) mod 10 is weighted
// 2/3/3/1/1 across the buckets, biasing toward short and medium hops.
func BucketIndex(aID, bID, city string) int {
	switch pick := DetHash(aID, bID, city) % 10; {
	case pick <= 1:
		return 0
	case pick <= 4:
		return 1
	case pick <= 7:
		return 2
	case pick == 8:
		return 3
	default:
		return 4
	}
}

// TravelMinutes converts a distance at a speed into whole minutes, plus any
// fixed extra (e.g. a transit wait buffer). Zero when inputs are unusable.
func TravelMinutes(distanceKm, kmh, extraMin float64) int {
	if kmh <= 0 {
		return 0
	}
	return int(math.Round(distanceKm/kmh*60.0 + extraMin))
}

// Round2 rounds to two decimals for money amounts.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package geo converts drawn farm boundaries into areas.
package geo

import (
	"math"

	"github.com/and161185/agrocarbon/internal/model"
)

// AcresPerSquareDegree converts a shoelace area in square degrees to acres.
const AcresPerSquareDegree = 24710.5

// AreaAcres returns the area enclosed by boundary, rounded to one decimal.
// Points are taken in drawing order and the polygon is closed implicitly.
// Fewer than three points enclose nothing.
func AreaAcres(boundary []model.LatLng) float64 {
	n := len(boundary)
	if n < 3 {
		return 0
	}
	var twice float64
	for i := 0; i < n; i++ {
		a, b := boundary[i], boundary[(i+1)%n]
		twice += a.Lng*b.Lat - b.Lng*a.Lat
	}
	return Round1(math.Abs(twice) / 2 * AcresPerSquareDegree)
}

// Round1 rounds x to one decimal place, halves away from zero.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Package insight holds the pure scoring, recommendation and alert rules.
// Nothing here touches storage; services feed it slices and persist results.
package insight

import (
	"math"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/agrocarbon/internal/geo"
	"github.com/and161185/agrocarbon/internal/model"
)

// Scoring constants.
const (
	BaseScore        = 50
	MaxScore         = 100
	pointsPerFarm    = 5
	maxFarmPoints    = 15
	practiceWeight   = 3
	pointsPerProof   = 2
	maxProofPoints   = 20
	TimeFactor       = 0.5
	treesPerCredit   = 45
	carsPerCredit    = 2
	recommendationsN = 3
)

// CarbonScore returns the 0..100 green score for a user's activity.
func CarbonScore(farms []model.Farm, practices []model.Practice, proofs []model.Proof) int {
	score := float64(BaseScore)
	score += math.Min(float64(len(farms)*pointsPerFarm), maxFarmPoints)
	for _, p := range practices {
		if ep, ok := model.PracticeByID(p.PracticeID); ok {
			score += ep.CarbonImpact * practiceWeight
		}
	}
	score += math.Min(float64(len(proofs)*pointsPerProof), maxProofPoints)
	return int(math.Min(math.Round(score), MaxScore))
}

// FarmImpact sums the carbon impact of practices declared on farmID.
func FarmImpact(farmID uuid.UUID, practices []model.Practice) float64 {
	var impact float64
	for _, p := range practices {
		if p.FarmID != farmID {
			continue
		}
		if ep, ok := model.PracticeByID(p.PracticeID); ok {
			impact += ep.CarbonImpact
		}
	}
	return impact
}

// CarbonCredits returns the derived credit estimate, rounded to one decimal.
func CarbonCredits(farms []model.Farm, practices []model.Practice) float64 {
	var total float64
	for _, f := range farms {
		// explicit conversion keeps the product from being fused into the sum
		contrib := float64(f.Area * FarmImpact(f.ID, practices) * model.CarbonFactorFor(f.CropType) * TimeFactor)
		total += contrib
	}
	return geo.Round1(total)
}

// PracticeStat is the per-practice breakdown entry.
type PracticeStat struct {
	Practice model.EcoPractice
	Count    int
}

// Breakdown counts declarations per catalog practice, in catalog order.
// Practices never declared are omitted.
func Breakdown(practices []model.Practice) []PracticeStat {
	counts := make(map[string]int, len(model.EcoPractices))
	for _, p := range practices {
		counts[p.PracticeID]++
	}
	var out []PracticeStat
	for _, ep := range model.EcoPractices {
		if n := counts[ep.ID]; n > 0 {
			out = append(out, PracticeStat{Practice: ep, Count: n})
		}
	}
	return out
}

// Equivalents expresses credits as trees planted and cars taken off the road.
func Equivalents(credits float64) (trees, cars int64) {
	return int64(math.Round(credits * treesPerCredit)), int64(math.Round(credits * carsPerCredit))
}

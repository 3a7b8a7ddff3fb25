package insight

import (
	"math"
	"sort"

	"github.com/and161185/agrocarbon/internal/geo"
	"github.com/and161185/agrocarbon/internal/model"
)

// incomeBaselineAcres is the farm size the catalog's IncomeIncrease is quoted for.
const incomeBaselineAcres = 5

// PriorityFor ranks a practice by its carbon impact.
func PriorityFor(impact float64) model.Priority {
	switch {
	case impact > 2.0:
		return model.PriorityHigh
	case impact > 1.3:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// Recommend returns up to three practices not yet declared on farm, highest
// potential income first. practices may include other farms' declarations.
// IDs and timestamps are left for the caller to stamp.
func Recommend(farm model.Farm, practices []model.Practice) []model.Recommendation {
	declared := make(map[string]bool)
	for _, p := range practices {
		if p.FarmID == farm.ID {
			declared[p.PracticeID] = true
		}
	}

	var recs []model.Recommendation
	for _, ep := range model.EcoPractices {
		if declared[ep.ID] {
			continue
		}
		recs = append(recs, model.Recommendation{
			UserID:           farm.UserID,
			FarmID:           farm.ID,
			PracticeID:       ep.ID,
			Title:            ep.Name,
			Icon:             ep.Icon,
			PotentialIncome:  int64(math.Round(farm.Area * float64(ep.IncomeIncrease) / incomeBaselineAcres)),
			PotentialCredits: geo.Round1(farm.Area * ep.CarbonImpact * TimeFactor),
			Priority:         PriorityFor(ep.CarbonImpact),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].PotentialIncome > recs[j].PotentialIncome
	})
	if len(recs) > recommendationsN {
		recs = recs[:recommendationsN]
	}
	return recs
}

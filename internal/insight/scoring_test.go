package insight

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/and161185/agrocarbon/internal/model"
)

func farm(area float64, crop string) model.Farm {
	return model.Farm{ID: uuid.Must(uuid.NewV4()), Area: area, CropType: crop}
}

func declare(f model.Farm, ids ...string) []model.Practice {
	out := make([]model.Practice, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Practice{ID: uuid.Must(uuid.NewV4()), FarmID: f.ID, PracticeID: id})
	}
	return out
}

func proofs(n int, status model.ProofStatus, ts time.Time) []model.Proof {
	out := make([]model.Proof, n)
	for i := range out {
		out[i] = model.Proof{ID: uuid.Must(uuid.NewV4()), Status: status, Timestamp: ts}
	}
	return out
}

func TestEmptyUser(t *testing.T) {
	t.Parallel()

	require.Equal(t, 50, CarbonScore(nil, nil, nil))
	require.Equal(t, 0.0, CarbonCredits(nil, nil))
}

func TestCarbonScore_ProofsMonotoneAndCapped(t *testing.T) {
	t.Parallel()

	f := farm(5, "wheat")
	farms := []model.Farm{f}
	prev := CarbonScore(farms, nil, nil)
	require.Equal(t, 55, prev)

	for n := 1; n <= 15; n++ {
		got := CarbonScore(farms, nil, proofs(n, model.ProofVerified, time.Now()))
		require.GreaterOrEqual(t, got, prev, "n=%d", n)
		prev = got
	}
	require.Equal(t, 75, prev) // 50 + 5 + 20 cap
}

func TestCarbonScore_FarmCapAndMax(t *testing.T) {
	t.Parallel()

	farms := []model.Farm{farm(1, "wheat"), farm(1, "wheat"), farm(1, "wheat"), farm(1, "wheat")}
	require.Equal(t, 65, CarbonScore(farms, nil, nil))

	var practices []model.Practice
	for i := 0; i < 10; i++ {
		practices = append(practices, declare(farms[0], "agroforestry")...)
	}
	require.Equal(t, MaxScore, CarbonScore(farms, practices, proofs(10, model.ProofPending, time.Now())))
}

func TestCarbonScore_DemoUser(t *testing.T) {
	t.Parallel()

	f := farm(5.5, "wheat")
	// 50 + 5 + 3.6 + 7.5 + 4 = 70.1
	got := CarbonScore([]model.Farm{f}, declare(f, "organic", "agroforestry"), proofs(2, model.ProofVerified, time.Now()))
	require.Equal(t, 70, got)
}

func TestCarbonScore_UnknownPracticeIgnored(t *testing.T) {
	t.Parallel()

	f := farm(5, "wheat")
	require.Equal(t, 55, CarbonScore([]model.Farm{f}, declare(f, "bogus"), nil))
}

func TestCarbonCredits_Scenario(t *testing.T) {
	t.Parallel()

	f := farm(5, "wheat")
	// 5 * (1.2 + 2.5) * 1.0 * 0.5 = 9.25, half rounds up
	require.Equal(t, 9.3, CarbonCredits([]model.Farm{f}, declare(f, "organic", "agroforestry")))
}

func TestCarbonCredits_LinearInArea(t *testing.T) {
	t.Parallel()

	small := farm(4, "sugarcane")
	big := farm(8, "sugarcane")
	a := CarbonCredits([]model.Farm{small}, declare(small, "reduced_tillage"))
	b := CarbonCredits([]model.Farm{big}, declare(big, "reduced_tillage"))
	require.InDelta(t, 2*a, b, 0.1)
	require.Equal(t, 3.9, a) // 4 * 1.5 * 1.3 * 0.5
	require.Equal(t, 7.8, b)
}

func TestCarbonCredits_NonDecreasingWithPractices(t *testing.T) {
	t.Parallel()

	f := farm(3, "rice")
	var practices []model.Practice
	prev := CarbonCredits([]model.Farm{f}, practices)
	require.Zero(t, prev)
	for _, ep := range model.EcoPractices {
		practices = append(practices, declare(f, ep.ID)...)
		got := CarbonCredits([]model.Farm{f}, practices)
		require.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestCarbonCredits_OnlyOwnFarmPractices(t *testing.T) {
	t.Parallel()

	a, b := farm(2, "wheat"), farm(2, "unknown-crop")
	practices := declare(a, "agroforestry")
	// b has no practices and contributes nothing; unknown crop would use factor 1.0
	require.Equal(t, 2.5, CarbonCredits([]model.Farm{a, b}, practices))
	require.Equal(t, 2.5, CarbonCredits([]model.Farm{b}, declare(b, "agroforestry")))
}

func TestBreakdownAndEquivalents(t *testing.T) {
	t.Parallel()

	f := farm(1, "wheat")
	stats := Breakdown(append(declare(f, "agroforestry", "organic"), declare(f, "organic")...))
	require.Len(t, stats, 2)
	require.Equal(t, "organic", stats[0].Practice.ID)
	require.Equal(t, 2, stats[0].Count)
	require.Equal(t, "agroforestry", stats[1].Practice.ID)
	require.Equal(t, 1, stats[1].Count)

	trees, cars := Equivalents(9.3)
	require.Equal(t, int64(419), trees) // 418.5 rounds up
	require.Equal(t, int64(19), cars)   // 18.6
}

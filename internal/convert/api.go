// Package convert maps domain models to API messages and parses API input.
package convert

import (
	"fmt"
	"strings"

	"github.com/and161185/agrocarbon/internal/api"
	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/insight"
	"github.com/and161185/agrocarbon/internal/model"
	u "github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// --- helpers ---

// Money renders rupees with two decimals.
func Money(d decimal.Decimal) string { return d.StringFixed(2) }

// ParseMoney parses a non-negative decimal amount.
func ParseMoney(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", errs.ErrInvalidArgument)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: bad amount %q", errs.ErrInvalidArgument, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative amount", errs.ErrInvalidArgument)
	}
	return d, nil
}

// ParseID parses a UUID from its text form.
func ParseID(s string) (u.UUID, error) {
	id, err := u.FromString(strings.TrimSpace(s))
	if err != nil {
		return u.Nil, fmt.Errorf("%w: invalid id", errs.ErrInvalidArgument)
	}
	return id, nil
}

func text(t model.LocalizedText) api.LocalizedText {
	return api.LocalizedText{En: t.En, Hi: t.Hi, Mr: t.Mr}
}

func point(p model.LatLng) api.LatLng { return api.LatLng{Lat: p.Lat, Lng: p.Lng} }

// FromAPILatLng converts an API point to the domain.
func FromAPILatLng(p api.LatLng) model.LatLng { return model.LatLng{Lat: p.Lat, Lng: p.Lng} }

// FromAPILatLngs converts a ring of API points.
func FromAPILatLngs(in []api.LatLng) []model.LatLng {
	if in == nil {
		return nil
	}
	out := make([]model.LatLng, 0, len(in))
	for _, p := range in {
		out = append(out, FromAPILatLng(p))
	}
	return out
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

// --- users ---

// ToAPIUser converts a domain user.
func ToAPIUser(m model.User) api.User {
	return api.User{
		ID:          m.ID.String(),
		Mobile:      m.Mobile,
		Name:        m.Name,
		Language:    string(m.Language),
		Village:     m.Village,
		District:    m.District,
		State:       m.State,
		IsOnboarded: m.IsOnboarded,
		CreatedAt:   m.CreatedAt,
	}
}

// FromAPIUserPatch converts a profile update. IsOnboarded is server-owned.
func FromAPIUserPatch(r *api.UpdateProfileRequest) model.UserPatch {
	p := model.UserPatch{
		Name:     r.Name,
		Village:  r.Village,
		District: r.District,
		State:    r.State,
	}
	if r.Language != nil {
		l := model.Language(*r.Language)
		p.Language = &l
	}
	return p
}

// FromAPISignup builds the profile of a new user.
func FromAPISignup(r *api.SignupRequest) model.User {
	return model.User{
		Name:     strings.TrimSpace(r.Name),
		Language: model.Language(r.Language),
		Village:  r.Village,
		District: r.District,
		State:    r.State,
	}
}

// --- catalog ---

// ToAPICatalog converts the fixed practice and crop catalogs.
func ToAPICatalog() *api.CatalogResponse {
	return &api.CatalogResponse{
		Practices: mapSlice(model.EcoPractices, func(p model.EcoPractice) api.EcoPractice {
			return api.EcoPractice{
				ID:             p.ID,
				Name:           text(p.Name),
				Icon:           p.Icon,
				CarbonImpact:   p.CarbonImpact,
				Description:    p.Description,
				IncomeIncrease: p.IncomeIncrease,
			}
		}),
		Crops: mapSlice(model.CropTypes, func(c model.CropType) api.CropType {
			return api.CropType{ID: c.ID, Name: text(c.Name), CarbonFactor: c.CarbonFactor}
		}),
	}
}

// --- farms ---

// ToAPIFarm converts a farm.
func ToAPIFarm(f model.Farm) api.Farm {
	return api.Farm{
		ID:        f.ID.String(),
		UserID:    f.UserID.String(),
		Area:      f.Area,
		CropType:  f.CropType,
		Location:  point(f.Location),
		Boundary:  mapSlice(f.Boundary, point),
		CreatedAt: f.CreatedAt,
	}
}

// ToAPIFarms converts a slice of farms.
func ToAPIFarms(fs []model.Farm) []api.Farm { return mapSlice(fs, ToAPIFarm) }

// ToAPIPractice converts a practice declaration.
func ToAPIPractice(p model.Practice) api.Practice {
	return api.Practice{
		ID:         p.ID.String(),
		FarmID:     p.FarmID.String(),
		PracticeID: p.PracticeID,
		StartDate:  p.StartDate,
		CreatedAt:  p.CreatedAt,
	}
}

// ToAPIPractices converts a slice of declarations.
func ToAPIPractices(ps []model.Practice) []api.Practice { return mapSlice(ps, ToAPIPractice) }

// ToAPIProof converts a proof.
func ToAPIProof(p model.Proof) api.Proof {
	return api.Proof{
		ID:          p.ID.String(),
		FarmID:      p.FarmID.String(),
		PracticeID:  p.PracticeID,
		Type:        string(p.Type),
		Description: p.Description,
		FileName:    p.FileName,
		FileSize:    p.FileSize,
		Timestamp:   p.Timestamp,
		Status:      string(p.Status),
		ReviewedAt:  p.ReviewedAt,
	}
}

// ToAPIProofs converts a slice of proofs.
func ToAPIProofs(ps []model.Proof) []api.Proof { return mapSlice(ps, ToAPIProof) }

// --- ledger ---

// ToAPICredit converts a ledger record.
func ToAPICredit(c model.CarbonCredit) api.CarbonCredit {
	return api.CarbonCredit{
		ID:        c.ID.String(),
		Credits:   c.Credits,
		Value:     Money(c.Value),
		Period:    c.Period,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}

// ToAPICredits converts a slice of ledger records.
func ToAPICredits(cs []model.CarbonCredit) []api.CarbonCredit { return mapSlice(cs, ToAPICredit) }

// ToAPIListing converts a marketplace listing.
func ToAPIListing(l model.MarketListing) api.Listing {
	return api.Listing{
		ID:             l.ID.String(),
		SellerID:       l.UserID.String(),
		SellerName:     l.SellerName,
		Location:       l.Location,
		Credits:        l.Credits,
		PricePerCredit: Money(l.PricePerCredit),
		TotalValue:     Money(l.TotalValue),
		Status:         l.Status,
		CreatedAt:      l.CreatedAt,
	}
}

// ToAPIListings converts a slice of listings.
func ToAPIListings(ls []model.MarketListing) []api.Listing { return mapSlice(ls, ToAPIListing) }

// --- alerts and insights ---

// ToAPIAlert converts an alert.
func ToAPIAlert(a model.Alert) api.Alert {
	return api.Alert{
		ID:        a.ID.String(),
		Type:      string(a.Type),
		Title:     text(a.Title),
		Message:   text(a.Message),
		Icon:      a.Icon,
		Action:    a.Action,
		CreatedAt: a.CreatedAt,
	}
}

// ToAPIAlerts converts a slice of alerts.
func ToAPIAlerts(as []model.Alert) []api.Alert { return mapSlice(as, ToAPIAlert) }

// ToAPIRecommendation converts a recommendation.
func ToAPIRecommendation(r model.Recommendation) api.Recommendation {
	return api.Recommendation{
		ID:               r.ID.String(),
		FarmID:           r.FarmID.String(),
		PracticeID:       r.PracticeID,
		Title:            text(r.Title),
		Icon:             r.Icon,
		PotentialIncome:  r.PotentialIncome,
		PotentialCredits: r.PotentialCredits,
		Priority:         string(r.Priority),
	}
}

// ToAPIRecommendations converts a slice of recommendations.
func ToAPIRecommendations(rs []model.Recommendation) []api.Recommendation {
	return mapSlice(rs, ToAPIRecommendation)
}

// ToAPIBreakdown converts per-practice stats.
func ToAPIBreakdown(ss []insight.PracticeStat) []api.PracticeStat {
	return mapSlice(ss, func(s insight.PracticeStat) api.PracticeStat {
		return api.PracticeStat{
			PracticeID:   s.Practice.ID,
			Name:         text(s.Practice.Name),
			Count:        s.Count,
			CarbonImpact: s.Practice.CarbonImpact,
		}
	})
}

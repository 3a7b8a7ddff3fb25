// Package seed loads the demo farmer used by walkthroughs and tests.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/model"
	"github.com/and161185/agrocarbon/internal/repository"
	"github.com/and161185/agrocarbon/internal/service"
)

// DemoMobile is the mobile number of the seeded farmer.
const DemoMobile = "9876543210"

const day = 24 * time.Hour

var namespace = uuid.NewV5(uuid.NamespaceURL, "https://agrocarbon.local/demo")

// ID returns the stable identifier of a named demo entity.
func ID(name string) uuid.UUID { return uuid.NewV5(namespace, name) }

// Demo inserts the demo farmer with one farm, two practices, two verified
// proofs, a ledger record and three marketplace listings, then derives
// recommendations and alerts. Entities carry fixed ids and each one is
// created only when missing, so a run cut short is completed by the next.
func Demo(ctx context.Context, store repository.Store, insights service.InsightService, alerts service.AlertService, now time.Time) error {
	user, err := store.Users.GetByMobile(ctx, DemoMobile)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		user = &model.User{
			ID:          ID("user_demo"),
			Mobile:      DemoMobile,
			Name:        "राज पाटील",
			Language:    model.LangHindi,
			IsOnboarded: true,
			CreatedAt:   now.Add(-90 * day),
		}
		if err := store.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	case err != nil:
		return err
	}

	farm := &model.Farm{
		ID:       ID("farm_demo1"),
		UserID:   user.ID,
		Area:     5.5,
		CropType: "wheat",
		Location: model.LatLng{Lat: 21.1458, Lng: 79.0882},
		Boundary: []model.LatLng{
			{Lat: 21.1458, Lng: 79.0882},
			{Lat: 21.1468, Lng: 79.0892},
			{Lat: 21.1468, Lng: 79.0872},
			{Lat: 21.1458, Lng: 79.0862},
		},
		CreatedAt: now.Add(-85 * day),
	}
	if _, err := store.Farms.GetByID(ctx, farm.ID); errors.Is(err, errs.ErrNotFound) {
		if err := store.Farms.Create(ctx, farm); err != nil {
			return fmt.Errorf("seed farm: %w", err)
		}
	} else if err != nil {
		return err
	}

	practices, err := store.Practices.ListByFarm(ctx, farm.ID)
	if err != nil {
		return err
	}
	seen := map[uuid.UUID]bool{}
	for _, p := range practices {
		seen[p.ID] = true
	}

	for i, p := range []struct {
		practice string
		ago      time.Duration
	}{
		{"organic", 80 * day},
		{"agroforestry", 75 * day},
	} {
		id := ID(fmt.Sprintf("practice_demo%d", i+1))
		if seen[id] {
			continue
		}
		at := now.Add(-p.ago)
		err := store.Practices.Create(ctx, &model.Practice{
			ID:         id,
			UserID:     user.ID,
			FarmID:     farm.ID,
			PracticeID: p.practice,
			StartDate:  at,
			CreatedAt:  at,
		})
		if err != nil {
			return fmt.Errorf("seed practice: %w", err)
		}
	}

	for i, p := range []struct {
		desc string
		ago  time.Duration
	}{
		{"Organic farming setup", 60 * day},
		{"Tree plantation", 45 * day},
	} {
		id := ID(fmt.Sprintf("proof_demo%d", i+1))
		if _, err := store.Proofs.GetByID(ctx, id); err == nil {
			continue
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		ts := now.Add(-p.ago)
		err := store.Proofs.Create(ctx, &model.Proof{
			ID:          id,
			UserID:      user.ID,
			FarmID:      farm.ID,
			Type:        model.ProofPhoto,
			Description: p.desc,
			Timestamp:   ts,
			Status:      model.ProofVerified,
			ReviewedAt:  &ts,
		})
		if err != nil {
			return fmt.Errorf("seed proof: %w", err)
		}
	}

	credits, err := store.Credits.ListByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, c := range credits {
		seen[c.ID] = true
	}
	if !seen[ID("credit_demo1")] {
		err := store.Credits.Create(ctx, &model.CarbonCredit{
			ID:        ID("credit_demo1"),
			UserID:    user.ID,
			Credits:   24.5,
			Value:     decimal.NewFromInt(24500),
			Period:    "6 months",
			Status:    model.CreditStatusVerified,
			CreatedAt: now.Add(-15 * day),
		})
		if err != nil {
			return fmt.Errorf("seed credit: %w", err)
		}
	}

	listings, err := store.Listings.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, l := range listings {
		seen[l.ID] = true
	}

	for _, l := range []struct {
		id, seller, sellerName, location string
		credits                          float64
		price                            int64
		ago                              time.Duration
	}{
		{"listing_demo1", "user_demo", user.Name, "", 10, 1000, 10 * day},
		{"listing_other1", "user_other", "अजय शर्मा", "पुणे", 15, 950, 8 * day},
		{"listing_other2", "user_other2", "सुनीता देवी", "नागपूर", 20, 1050, 5 * day},
	} {
		if seen[ID(l.id)] {
			continue
		}
		price := decimal.NewFromInt(l.price)
		err := store.Listings.Create(ctx, &model.MarketListing{
			ID:             ID(l.id),
			UserID:         ID(l.seller),
			SellerName:     l.sellerName,
			Location:       l.location,
			Credits:        l.credits,
			PricePerCredit: price,
			TotalValue:     service.ListingTotal(l.credits, price),
			Status:         model.ListingStatusActive,
			CreatedAt:      now.Add(-l.ago),
		})
		if err != nil {
			return fmt.Errorf("seed listing: %w", err)
		}
	}

	if _, err := insights.GenerateRecommendations(ctx, farm.ID); err != nil {
		return fmt.Errorf("seed recommendations: %w", err)
	}
	if _, err := alerts.GenerateSmartAlerts(ctx, user.ID); err != nil {
		return fmt.Errorf("seed alerts: %w", err)
	}
	return nil
}

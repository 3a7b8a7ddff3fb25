package convert

import (
	"errors"
	"testing"
	"time"

	"github.com/and161185/agrocarbon/internal/api"
	"github.com/and161185/agrocarbon/internal/errs"
	"github.com/and161185/agrocarbon/internal/insight"
	"github.com/and161185/agrocarbon/internal/model"
	u "github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

func TestParseMoney(t *testing.T) {
	t.Parallel()

	d, err := ParseMoney(" 2500.5 ")
	if err != nil {
		t.Fatalf("ParseMoney: %v", err)
	}
	if !d.Equal(decimal.RequireFromString("2500.5")) {
		t.Fatalf("amount mismatch: %s", d)
	}

	for _, bad := range []string{"", "  ", "abc", "-1"} {
		if _, err := ParseMoney(bad); !errors.Is(err, errs.ErrInvalidArgument) {
			t.Fatalf("%q: want ErrInvalidArgument, got %v", bad, err)
		}
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	want := u.Must(u.NewV4())
	got, err := ParseID(want.String())
	if err != nil || got != want {
		t.Fatalf("ParseID: got=%s err=%v", got, err)
	}
	if _, err := ParseID("not-a-uuid"); !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("want ErrInvalidArgument, got %v", err)
	}
}

func TestMoney_TwoDecimals(t *testing.T) {
	t.Parallel()

	if got := Money(decimal.NewFromInt(24500)); got != "24500.00" {
		t.Fatalf("got %q", got)
	}
}

func TestFromAPIUserPatch(t *testing.T) {
	t.Parallel()

	name, lang := "Ravi", "mr"
	p := FromAPIUserPatch(&api.UpdateProfileRequest{Name: &name, Language: &lang})
	if p.Name == nil || *p.Name != "Ravi" {
		t.Fatalf("name not carried")
	}
	if p.Language == nil || *p.Language != model.LangMarathi {
		t.Fatalf("language not carried")
	}
	if p.Village != nil || p.IsOnboarded != nil {
		t.Fatalf("unset fields must stay nil")
	}
}

func TestToAPIListing_Money(t *testing.T) {
	t.Parallel()

	l := model.MarketListing{
		ID:             u.Must(u.NewV4()),
		UserID:         u.Must(u.NewV4()),
		Credits:        5,
		PricePerCredit: decimal.NewFromInt(2400),
		TotalValue:     decimal.NewFromInt(12000),
		Status:         model.ListingStatusActive,
	}
	got := ToAPIListing(l)
	if got.SellerID != l.UserID.String() {
		t.Fatalf("seller mismatch")
	}
	if got.PricePerCredit != "2400.00" || got.TotalValue != "12000.00" {
		t.Fatalf("money mismatch: %+v", got)
	}
}

func TestToAPIFarm_Boundary(t *testing.T) {
	t.Parallel()

	f := model.Farm{
		ID:        u.Must(u.NewV4()),
		UserID:    u.Must(u.NewV4()),
		Area:      2.5,
		CropType:  "rice",
		Location:  model.LatLng{Lat: 18.5, Lng: 73.8},
		Boundary:  []model.LatLng{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}, {Lat: 5, Lng: 6}},
		CreatedAt: time.Now(),
	}
	got := ToAPIFarm(f)
	if len(got.Boundary) != 3 || got.Boundary[2].Lng != 6 {
		t.Fatalf("boundary mismatch: %+v", got.Boundary)
	}
	back := FromAPILatLngs(got.Boundary)
	if back[1] != f.Boundary[1] {
		t.Fatalf("roundtrip mismatch")
	}
	if FromAPILatLngs(nil) != nil {
		t.Fatalf("nil ring must stay nil")
	}
}

func TestToAPICatalog(t *testing.T) {
	t.Parallel()

	c := ToAPICatalog()
	if len(c.Practices) != len(model.EcoPractices) || len(c.Crops) != len(model.CropTypes) {
		t.Fatalf("catalog size mismatch")
	}
	if c.Practices[0].ID != model.EcoPractices[0].ID || c.Practices[0].Name.Hi == "" {
		t.Fatalf("first practice mismatch: %+v", c.Practices[0])
	}
}

func TestToAPIBreakdown(t *testing.T) {
	t.Parallel()

	p := model.EcoPractices[1]
	got := ToAPIBreakdown([]insight.PracticeStat{{Practice: p, Count: 2}})
	if len(got) != 1 || got[0].PracticeID != p.ID || got[0].Count != 2 || got[0].CarbonImpact != p.CarbonImpact {
		t.Fatalf("breakdown mismatch: %+v", got)
	}
}

func TestToAPIProof_ReviewedAt(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	p := model.Proof{ID: u.Must(u.NewV4()), Type: model.ProofPhoto, Status: model.ProofVerified, ReviewedAt: &at}
	got := ToAPIProof(p)
	if got.Status != "verified" || got.Type != "photo" || got.ReviewedAt == nil || !got.ReviewedAt.Equal(at) {
		t.Fatalf("proof mismatch: %+v", got)
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	u "github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/metadata"

	"github.com/and161185/agrocarbon/internal/api"
)

// ------- validators -------

var reMobile = regexp.MustCompile(`^\d{10}$`)

func validMobile(m string) bool { return reMobile.MatchString(m) }

func validUUID(s string) bool {
	_, err := u.FromString(s)
	return err == nil
}

// validMoney accepts positive decimal amounts.
func validMoney(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && d.IsPositive()
}

// parseBoundary reads "lat,lng;lat,lng;..." into points.
func parseBoundary(s string) ([]api.LatLng, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var out []api.LatLng
	for i, pair := range strings.Split(s, ";") {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("point %d: want lat,lng", i)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d lat: %w", i, err)
		}
		lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d lng: %w", i, err)
		}
		out = append(out, api.LatLng{Lat: lat, Lng: lng})
	}
	if len(out) < 3 {
		return nil, errors.New("boundary needs at least 3 points")
	}
	return out, nil
}

// parseDate reads YYYY-MM-DD; empty means unset.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", s, err)
	}
	return &t, nil
}

// proofTypeFor guesses the proof type from a file extension.
func proofTypeFor(path string) string {
	if strings.HasPrefix(mime.TypeByExtension(strings.ToLower(filepath.Ext(path))), "image/") {
		return "photo"
	}
	return "log"
}

func optString(fs *flag.FlagSet, name string) *string {
	var set bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	if !set {
		return nil
	}
	v := fs.Lookup(name).Value.String()
	return &v
}

// ------- account -------

func cmdOTP(c conn, args []string) {
	fs := flag.NewFlagSet("otp", flag.ExitOnError)
	mobile := fs.String("mobile", "", "mobile number")
	_ = fs.Parse(args)
	need(validMobile(*mobile), "need -mobile (10 digits)")

	c.run(false, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		return cli.RequestOTP(ctx, &api.RequestOTPRequest{Mobile: *mobile})
	})
}

func storeSession(res *api.AuthResponse) (any, error) {
	if err := saveToken(tokenFile{AccessToken: res.AccessToken, ExpiresAt: res.ExpiresAt, UserID: res.User.ID}); err != nil {
		return nil, err
	}
	return res.User, nil
}

func cmdLogin(c conn, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	mobile := fs.String("mobile", "", "mobile number")
	otp := fs.String("otp", "", "one-time password")
	_ = fs.Parse(args)
	need(validMobile(*mobile) && *otp != "", "need -mobile and -otp")

	c.run(false, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		res, err := cli.Login(ctx, &api.LoginRequest{Mobile: *mobile, OTP: *otp})
		if err != nil {
			return nil, err
		}
		return storeSession(res)
	})
}

func cmdSignup(c conn, args []string) {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	mobile := fs.String("mobile", "", "mobile number")
	otp := fs.String("otp", "", "one-time password")
	name := fs.String("name", "", "full name")
	lang := fs.String("lang", "", "language: hi, en or mr")
	village := fs.String("village", "", "village")
	district := fs.String("district", "", "district")
	state := fs.String("state", "", "state")
	_ = fs.Parse(args)
	need(validMobile(*mobile) && *otp != "" && *name != "", "need -mobile -otp -name")

	c.run(false, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		res, err := cli.Signup(ctx, &api.SignupRequest{
			Mobile: *mobile, OTP: *otp, Name: *name, Language: *lang,
			Village: *village, District: *district, State: *state,
		})
		if err != nil {
			return nil, err
		}
		return storeSession(res)
	})
}

func cmdProfile(c conn, args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	fs.String("name", "", "full name")
	fs.String("lang", "", "language")
	fs.String("village", "", "village")
	fs.String("district", "", "district")
	fs.String("state", "", "state")
	_ = fs.Parse(args)

	req := &api.UpdateProfileRequest{
		Name:     optString(fs, "name"),
		Language: optString(fs, "lang"),
		Village:  optString(fs, "village"),
		District: optString(fs, "district"),
		State:    optString(fs, "state"),
	}
	c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		return cli.UpdateProfile(ctx, req)
	})
}

// ------- farms -------

func cmdFarmAdd(c conn, args []string) {
	fs := flag.NewFlagSet("farm-add", flag.ExitOnError)
	crop := fs.String("crop", "", "crop type id")
	area := fs.Float64("area", 0, "area in acres (0: derive from boundary)")
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	boundary := fs.String("boundary", "", `polygon "lat,lng;lat,lng;..."`)
	_ = fs.Parse(args)
	need(*crop != "", "need -crop")

	ring, err := parseBoundary(*boundary)
	if err != nil {
		fail(err)
	}
	need(*area > 0 || len(ring) > 0, "need -area or -boundary")

	c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		return cli.SaveFarm(ctx, &api.SaveFarmRequest{
			Area: *area, CropType: *crop, Location: api.LatLng{Lat: *lat, Lng: *lng}, Boundary: ring,
		})
	})
}

func cmdPractice(c conn, args []string) {
	fs := flag.NewFlagSet("practice", flag.ExitOnError)
	farm := fs.String("farm", "", "farm id (uuid)")
	practice := fs.String("practice", "", "practice id")
	start := fs.String("start", "", "start date YYYY-MM-DD")
	_ = fs.Parse(args)
	need(validUUID(*farm) && *practice != "", "need -farm <uuid> and -practice")

	date, err := parseDate(*start)
	if err != nil {
		fail(err)
	}
	c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		return cli.DeclarePractice(ctx, &api.DeclarePracticeRequest{FarmID: *farm, PracticeID: *practice, StartDate: date})
	})
}

func cmdProof(c conn, args []string) {
	fs := flag.NewFlagSet("proof", flag.ExitOnError)
	farm := fs.String("farm", "", "farm id (uuid)")
	practice := fs.String("practice", "", "practice id")
	typ := fs.String("type", "", "photo, satellite or log (default: from file)")
	file := fs.String("file", "", "evidence file; only its name and size are sent")
	desc := fs.String("desc", "", "description")
	_ = fs.Parse(args)
	need(validUUID(*farm), "need -farm <uuid>")

	req := &api.SubmitProofRequest{FarmID: *farm, PracticeID: *practice, Type: *typ, Description: *desc}
	if *file != "" {
		st, err := os.Stat(*file)
		if err != nil {
			fail(err)
		}
		req.FileName, req.FileSize = filepath.Base(*file), st.Size()
		if req.Type == "" {
			req.Type = proofTypeFor(*file)
		}
	}
	need(req.Type != "", "need -type or -file")

	c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		return cli.SubmitProof(ctx, req)
	})
}

func cmdReview(c conn, args []string) {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	proof := fs.String("proof", "", "proof id (uuid)")
	st := fs.String("status", "", "verified or rejected")
	key := fs.String("key", os.Getenv("AGRO_REVIEWER_KEY"), "reviewer key")
	_ = fs.Parse(args)
	need(validUUID(*proof) && (*st == "verified" || *st == "rejected"), "need -proof <uuid> -status verified|rejected")
	need(*key != "", "need -key or AGRO_REVIEWER_KEY")

	c.run(false, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		ctx = metadata.AppendToOutgoingContext(ctx, api.ReviewerKeyHeader, *key)
		return cli.ReviewProof(ctx, &api.ReviewProofRequest{ProofID: *proof, Status: *st})
	})
}

// ------- credits -------

func cmdCreditAdd(c conn, args []string) {
	fs := flag.NewFlagSet("credit-add", flag.ExitOnError)
	user := fs.String("user", "", "farmer id (uuid)")
	credits := fs.Float64("credits", 0, "credits issued")
	value := fs.String("value", "", "value in rupees")
	period := fs.String("period", "", `period, e.g. "6 months"`)
	key := fs.String("key", os.Getenv("AGRO_REVIEWER_KEY"), "reviewer key")
	_ = fs.Parse(args)
	need(validUUID(*user), "need -user <uuid>")
	need(*credits > 0 && validMoney(*value), "need -credits > 0 and -value > 0")
	need(*key != "", "need -key or AGRO_REVIEWER_KEY")

	c.run(false, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		ctx = metadata.AppendToOutgoingContext(ctx, api.ReviewerKeyHeader, *key)
		return cli.RecordCredit(ctx, &api.RecordCreditRequest{UserID: *user, Credits: *credits, Value: *value, Period: *period})
	})
}

func cmdSell(c conn, args []string) {
	fs := flag.NewFlagSet("sell", flag.ExitOnError)
	credits := fs.Float64("credits", 0, "credits to offer")
	price := fs.String("price", "", "price per credit in rupees")
	_ = fs.Parse(args)
	need(*credits > 0 && validMoney(*price), "need -credits > 0 and -price > 0")

	c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		return cli.CreateListing(ctx, &api.CreateListingRequest{Credits: *credits, PricePerCredit: *price})
	})
}

// ------- alerts -------

func cmdAlertRead(c conn, args []string) {
	fs := flag.NewFlagSet("alert-read", flag.ExitOnError)
	id := fs.String("id", "", "alert id (uuid)")
	_ = fs.Parse(args)
	need(validUUID(*id), "need -id <uuid>")

	c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
		if _, err := cli.MarkAlertRead(ctx, &api.MarkAlertReadRequest{AlertID: *id}); err != nil {
			return nil, err
		}
		return map[string]string{"status": "ok"}, nil
	})
}

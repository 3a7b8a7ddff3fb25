// Package config assembles server settings from flags, the environment and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server settings.
type Config struct {
	Addr        string
	DSN         string // empty selects the in-memory store
	JWTKey      string
	AccessTTL   time.Duration
	OTPTTL      time.Duration
	TLSCert     string // empty serves plaintext
	TLSKey      string
	ReviewerKey string // empty disables ReviewProof
	Seed        bool
	Dev         bool
}

// LoadDotEnv loads variables from the given files into the process
// environment without overriding existing ones. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Parse reads flags from args. Each flag defaults to its AGRO_* variable.
func Parse(name string, args []string) (Config, error) {
	var c Config
	fset := flag.NewFlagSet(name, flag.ContinueOnError)

	accessTTL, err := envDuration("AGRO_ACCESS_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	otpTTL, err := envDuration("AGRO_OTP_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	seed, err := envBool("AGRO_SEED", true)
	if err != nil {
		return Config{}, err
	}
	dev, err := envBool("AGRO_DEV", false)
	if err != nil {
		return Config{}, err
	}

	fset.StringVar(&c.Addr, "addr", envString("AGRO_ADDR", ":8443"), "listen address")
	fset.StringVar(&c.DSN, "dsn", envString("AGRO_DSN", ""), "PostgreSQL DSN (empty: in-memory store)")
	fset.StringVar(&c.JWTKey, "jwt-key", envString("AGRO_JWT_KEY", ""), "HS256 signing key (required)")
	fset.DurationVar(&c.AccessTTL, "access-ttl", accessTTL, "access token TTL")
	fset.DurationVar(&c.OTPTTL, "otp-ttl", otpTTL, "one-time password TTL")
	fset.StringVar(&c.TLSCert, "tls-cert", envString("AGRO_TLS_CERT", ""), "TLS certificate (PEM)")
	fset.StringVar(&c.TLSKey, "tls-key", envString("AGRO_TLS_KEY", ""), "TLS private key (PEM)")
	fset.StringVar(&c.ReviewerKey, "reviewer-key", envString("AGRO_REVIEWER_KEY", ""), "shared key for proof reviewers")
	fset.BoolVar(&c.Seed, "seed", seed, "load demo data on start")
	fset.BoolVar(&c.Dev, "dev", dev, "dev mode: reflection, OTP codes in responses")
	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// Validate checks required and paired settings.
func (c Config) Validate() error {
	if c.JWTKey == "" {
		return errors.New("missing jwt signing key (--jwt-key or AGRO_JWT_KEY)")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("tls-cert and tls-key must be set together")
	}
	if c.AccessTTL <= 0 || c.OTPTTL <= 0 {
		return errors.New("ttl values must be positive")
	}
	return nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envBool(key string, def bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

// Command agro is a CLI client for the AgroCarbon service.
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/and161185/agrocarbon/internal/api"
)

// ---- config/token store ----

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id,omitempty"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "agrocarbon")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "agrocarbon")
}

func tokenPath() string { return filepath.Join(cfgDir(), "token.json") }

func saveToken(tf tokenFile) error {
	if err := os.MkdirAll(cfgDir(), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(tokenPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tf)
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", errors.New("no valid token (login required)")
	}
	return tf.AccessToken, nil
}

func dropToken() error {
	err := os.Remove(tokenPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ---- grpc dial ----

type bearerCreds struct {
	token  string
	secure bool
}

func (b bearerCreds) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + b.token}, nil
}
func (b bearerCreds) RequireTransportSecurity() bool { return b.secure }

func loadTLS(caPath string, skipVerify bool) (credentials.TransportCredentials, error) {
	if skipVerify {
		return credentials.NewTLS(&tls.Config{InsecureSkipVerify: true}), nil
	}
	if caPath == "" {
		return credentials.NewClientTLSFromCert(nil, ""), nil
	}
	pem, err := os.ReadFile(caPath)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("bad CA cert")
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool}), nil
}

// conn holds the global connection flags.
type conn struct {
	addr       string
	caPath     string
	skipVerify bool
	plaintext  bool
}

func (c conn) dial(ctx context.Context, bearer string) (*grpc.ClientConn, api.AgroCarbonClient, error) {
	var opts []grpc.DialOption
	if c.plaintext {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		creds, err := loadTLS(c.caPath, c.skipVerify)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, grpc.WithTransportCredentials(creds))
	}
	if bearer != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(bearerCreds{token: bearer, secure: !c.plaintext}))
	}
	//nolint:staticcheck // DialContext is supported through 1.x; migrate when grpc.NewClient is stable
	cc, err := grpc.DialContext(ctx, c.addr, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cc, api.NewAgroCarbonClient(cc), nil
}

// run dials, performs one call and prints its JSON result.
func (c conn) run(authed bool, call func(context.Context, api.AgroCarbonClient) (any, error)) {
	ctx, cancel := withTimeout()
	defer cancel()

	var token string
	if authed {
		t, err := loadToken()
		if err != nil {
			fail(err)
		}
		token = t
	}
	cc, cli, err := c.dial(ctx, token)
	if err != nil {
		fail(err)
	}
	defer cc.Close()

	out, err := call(ctx, cli)
	if err != nil {
		fail(err)
	}
	if out != nil {
		printJSON(out)
	}
}

// ---- utils ----

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage() {
	fmt.Fprintf(os.Stderr, `agro CLI
Usage:
  agro -addr HOST:PORT [-cacert file | -insecure | -plaintext] <cmd> [args]

Account:
  version
  otp        -mobile <10 digits>
  login      -mobile <m> -otp <code>                 (saves token)
  signup     -mobile <m> -otp <code> -name <n> [-lang hi|en|mr] [-village v] [-district d] [-state s]
  logout
  whoami
  profile    [-name n] [-lang l] [-village v] [-district d] [-state s]
  catalog

Farms:
  farm-add   -crop <id> [-area acres] [-lat x -lng y] [-boundary "lat,lng;lat,lng;..."]
  farms
  practice   -farm <uuid> -practice <id> [-start YYYY-MM-DD]
  practices
  proof      -farm <uuid> [-practice id] [-type photo|satellite|log] [-file path] [-desc text]
  proofs
  review     -proof <uuid> -status verified|rejected -key <reviewer key>

Credits:
  credit-add -user <uuid> -credits <n> -value <rupees> [-period p] -key <reviewer key>
  credits
  sell       -credits <n> -price <rupees per credit>
  market

Insights:
  alerts
  alerts-gen
  alert-read -id <uuid>
  recs
  dashboard
  summary
`)
	os.Exit(2)
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands and configures TLS/auth for RPC calls.
func main() {
	// global flags
	var c conn
	flag.StringVar(&c.addr, "addr", "localhost:8443", "server addr")
	flag.StringVar(&c.caPath, "cacert", "", "CA cert (PEM)")
	flag.BoolVar(&c.skipVerify, "insecure", false, "skip cert verify (dev)")
	flag.BoolVar(&c.plaintext, "plaintext", false, "no TLS (dev server without certificates)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	args := flag.Args()[1:]

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("agro %s (%s)\n", version, buildDate)
	case "otp":
		cmdOTP(c, args)
	case "login":
		cmdLogin(c, args)
	case "signup":
		cmdSignup(c, args)
	case "logout":
		if err := dropToken(); err != nil {
			fail(err)
		}
		fmt.Println("ok")
	case "whoami":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.CurrentUser(ctx, &api.Empty{})
		})
	case "profile":
		cmdProfile(c, args)
	case "catalog":
		c.run(false, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.Catalog(ctx, &api.Empty{})
		})
	case "farm-add":
		cmdFarmAdd(c, args)
	case "farms":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.ListFarms(ctx, &api.Empty{})
		})
	case "practice":
		cmdPractice(c, args)
	case "practices":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.ListPractices(ctx, &api.Empty{})
		})
	case "proof":
		cmdProof(c, args)
	case "proofs":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.ListProofs(ctx, &api.Empty{})
		})
	case "review":
		cmdReview(c, args)
	case "credit-add":
		cmdCreditAdd(c, args)
	case "credits":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.ListCredits(ctx, &api.Empty{})
		})
	case "sell":
		cmdSell(c, args)
	case "market":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.ListListings(ctx, &api.Empty{})
		})
	case "alerts":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.ListAlerts(ctx, &api.Empty{})
		})
	case "alerts-gen":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.GenerateAlerts(ctx, &api.Empty{})
		})
	case "alert-read":
		cmdAlertRead(c, args)
	case "recs":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.ListRecommendations(ctx, &api.Empty{})
		})
	case "dashboard":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.Dashboard(ctx, &api.Empty{})
		})
	case "summary":
		c.run(true, func(ctx context.Context, cli api.AgroCarbonClient) (any, error) {
			return cli.CreditSummary(ctx, &api.Empty{})
		})
	default:
		usage()
	}
}

// ---- helpers ----

func fail(err error) {
	if s, ok := status.FromError(err); ok {
		fmt.Fprintf(os.Stderr, "rpc error: code=%s msg=%s\n", s.Code(), s.Message())
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func need(ok bool, msg string) {
	if !ok {
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(1)
	}
}

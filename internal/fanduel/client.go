// client.go sets up the HTTP client shared by the session and the request pipeline.

package fanduel

import (
	"context"
	"fanduel-client/internal/components/assert"
	"fanduel-client/internal/components/chrono"
	"fanduel-client/internal/components/telemetry"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

const (
	DefaultApiBaseUrl = "https://api.fanduel.com"
	DefaultWebBaseUrl = "https://www.fanduel.com"
)

const maxRedirects = 10

var tracer = otel.Tracer("fanduel-client/internal/fanduel")

type ClientOptions struct {
	Username string
	Password string

	// ApiBaseUrl defaults to DefaultApiBaseUrl.
	ApiBaseUrl string
	// WebBaseUrl defaults to DefaultWebBaseUrl.
	WebBaseUrl string

	// Timeout is the per request timeout, defaults to 30 seconds.
	Timeout time.Duration
	// RateLimit is the max number of requests per second, defaults to 2.
	// Use rate.Inf to disable rate limiting.
	RateLimit rate.Limit
	// BypassCloudflare wraps the transport with cloudflare-bp-go.
	BypassCloudflare bool

	// Identity defaults to ScriptIdentityExtractor.
	Identity IdentityExtractor
	// Time defaults to chrono.StandardTime.
	Time chrono.TimeAPI
}

type Client struct {
	http     *resty.Client
	apiBase  string
	webBase  string
	username string
	password string

	session  *session
	identity IdentityExtractor
	tel      telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)

	tel = telemetry.NewScopedAPI("fanduel", tel)

	apiBase := opts.ApiBaseUrl
	if apiBase == "" {
		apiBase = DefaultApiBaseUrl
	}
	webBase := opts.WebBaseUrl
	if webBase == "" {
		webBase = DefaultWebBaseUrl
	}
	for _, base := range []string{apiBase, webBase} {
		_, err := url.ParseRequestURI(base)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", base, err)
		}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	limit := opts.RateLimit
	if limit == 0 {
		limit = 2
	}
	identity := opts.Identity
	if identity == nil {
		identity = ScriptIdentityExtractor{}
	}
	clock := opts.Time
	if clock == nil {
		clock = chrono.NewStandardTime()
	}

	httpClient := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if opts.BypassCloudflare {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetRedirectPolicy(cookieTrailRedirectPolicy())
	httpClient.SetTimeout(timeout)

	// max burst >= 2 just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(limit, 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	return &Client{
		http:     httpClient,
		apiBase:  strings.TrimSuffix(apiBase, "/"),
		webBase:  strings.TrimSuffix(webBase, "/"),
		username: opts.Username,
		password: opts.Password,
		session:  newSession(clock, TokenTTL),
		identity: identity,
		tel:      tel,
	}, nil
}

// SessionState reports the current state of the session, an expired session reports
// SessionUnauthenticated.
func (c *Client) SessionState() SessionState {
	return c.session.state()
}

// SessionExpiresAt returns the deadline of the current (or last) session.
func (c *Client) SessionExpiresAt() time.Time {
	return c.session.expiresAt()
}

type cookieTrailKeyType int

var cookieTrailKey cookieTrailKeyType

// cookieTrail collects the Set-Cookie headers of the intermediate responses of a redirect
// chain, the final response only carries its own.
type cookieTrail struct {
	mu      sync.Mutex
	headers []string
}

func (t *cookieTrail) add(headers []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.headers = append(t.headers, headers...)
}

func (t *cookieTrail) all() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.headers...)
}

func withCookieTrail(ctx context.Context) (context.Context, *cookieTrail) {
	trail := &cookieTrail{}
	return context.WithValue(ctx, cookieTrailKey, trail), trail
}

func cookieTrailRedirectPolicy() resty.RedirectPolicy {
	return resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		trail, ok := req.Context().Value(cookieTrailKey).(*cookieTrail)
		if ok && req.Response != nil {
			trail.add(req.Response.Header.Values("Set-Cookie"))
		}
		return nil
	})
}

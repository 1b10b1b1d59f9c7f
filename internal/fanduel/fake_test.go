package fanduel

import (
	"fanduel-client/internal/components/telemetry"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const (
	fakeUsername    = "jdoe@example.com"
	fakePassword    = "hunter2"
	fakeUserId      = "1234567"
	fakeApiClientId = "ZmFrZS1jbGllbnQ="
)

var fakeLandingPage = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<script src="/static/vendor.js"></script>
<script>
window.FD = window.FD || {};
FD.config = {
	user: {
		id: %s,
		username: 'jdoe',
		apiClientId: '%s',
	},
};
</script>
</head>
<body><div id="root"></div></body>
</html>`, fakeUserId, fakeApiClientId)

type loginMode int

const (
	// the login page sets PHPSESSID, the token comes from CCAuth
	loginModeSession loginMode = iota
	// the login page sets X-Auth-Token directly
	loginModeToken
	// the login page redirects, PHPSESSID is only on the redirect response
	loginModeRedirect
	// the login page sets no cookies at all
	loginModeNone
)

type fakeFanDuel struct {
	t   *testing.T
	srv *httptest.Server
	mux *http.ServeMux

	mode       loginMode
	landing    string
	loginDelay time.Duration

	loginPageHits atomic.Int32
	ccauthHits    atomic.Int32
	tokenCounter  atomic.Int32

	mu     sync.Mutex
	tokens map[string]bool
}

func newFakeFanDuel(t *testing.T, mode loginMode) *fakeFanDuel {
	f := &fakeFanDuel{
		t:       t,
		mux:     http.NewServeMux(),
		mode:    mode,
		landing: fakeLandingPage,
		tokens:  map[string]bool{},
	}

	f.mux.HandleFunc("GET /p/login", f.handleLoginPage)
	f.mux.HandleFunc("GET /p/login-landing", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>log in</body></html>"))
	})
	f.mux.HandleFunc("POST /c/CCAuth", f.handleCCAuth)
	f.mux.HandleFunc("GET /p/LoginPp", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>wrong password</body></html>"))
	})
	f.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(f.landing))
	})

	f.srv = httptest.NewServer(f.mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeFanDuel) issueToken() string {
	token := fmt.Sprintf("token-%d", f.tokenCounter.Add(1))
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = true
	return token
}

// revokeTokens makes the api reject every token issued so far.
func (f *fakeFanDuel) revokeTokens() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = map[string]bool{}
}

func (f *fakeFanDuel) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	f.loginPageHits.Add(1)
	time.Sleep(f.loginDelay)

	switch f.mode {
	case loginModeSession:
		w.Header().Add("Set-Cookie", "PHPSESSID=sess-42; path=/; HttpOnly")
	case loginModeToken:
		w.Header().Add("Set-Cookie", "X-Auth-Token="+f.issueToken()+"; path=/")
	case loginModeRedirect:
		w.Header().Add("Set-Cookie", "PHPSESSID=sess-42; path=/; HttpOnly")
		http.Redirect(w, r, "/p/login-landing", http.StatusFound)
		return
	}
	w.Write([]byte("<html><body>log in</body></html>"))
}

func (f *fakeFanDuel) handleCCAuth(w http.ResponseWriter, r *http.Request) {
	f.ccauthHits.Add(1)

	err := r.ParseMultipartForm(1 << 20)
	assert.NoError(f.t, err)
	assert.Equal(f.t, "sess-42", r.FormValue("cc_session_id"))
	assert.Equal(f.t, "cca_login", r.FormValue("cc_action"))
	assert.Equal(f.t, f.srv.URL+"/", r.FormValue("cc_success_url"))

	if r.FormValue("email") != fakeUsername || r.FormValue("password") != fakePassword {
		http.Redirect(w, r, "/p/LoginPp", http.StatusFound)
		return
	}
	w.Header().Add("Set-Cookie", "X-Auth-Token="+f.issueToken()+"; path=/")
	http.Redirect(w, r, "/", http.StatusFound)
}

// api registers an authenticated api route under /api.
func (f *fakeFanDuel) api(pattern string, handler http.HandlerFunc) {
	method, path, ok := strings.Cut(pattern, " ")
	require.True(f.t, ok, "pattern must be of the form 'METHOD /path'")

	f.mux.HandleFunc(method+" /api"+path, func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		valid := f.tokens[r.Header.Get("X-Auth-Token")]
		f.mu.Unlock()
		if !valid || r.Header.Get("Authorization") != "Basic "+fakeApiClientId {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"unauthorized"}`))
			return
		}
		handler(w, r)
	})
}

func (f *fakeFanDuel) apiJson(pattern string, body string) {
	f.api(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, time.September, 8, 13, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testClient struct {
	*Client
	fake  *fakeFanDuel
	clock *fakeClock
	tel   *telemetry.Recorder
}

func setupClient(t *testing.T, mode loginMode, modify ...func(*ClientOptions)) testClient {
	fake := newFakeFanDuel(t, mode)
	clock := newFakeClock()
	tel := telemetry.SetupForTesting(t)

	opts := ClientOptions{
		Username:   fakeUsername,
		Password:   fakePassword,
		ApiBaseUrl: fake.srv.URL + "/api",
		WebBaseUrl: fake.srv.URL,
		RateLimit:  rate.Inf,
		Time:       clock,
	}
	for _, m := range modify {
		m(&opts)
	}

	client, err := NewClient(opts, tel)
	require.NoError(t, err)

	return testClient{
		Client: client,
		fake:   fake,
		clock:  clock,
		tel:    tel,
	}
}

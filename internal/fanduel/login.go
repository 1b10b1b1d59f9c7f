package fanduel

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/codes"
)

const (
	report_client_login         = "client.login"
	report_client_load_identity = "client.load-identity"
)

const (
	authTokenCookie = "X-Auth-Token"
	sessionIdCookie = "PHPSESSID"
)

// findCookie looks for `name` in a list of Set-Cookie header values and returns its value,
// that is, everything before the first `;` without the `name=` prefix. The last non-empty
// occurrence wins since later headers come from later responses of a redirect chain.
func findCookie(headers []string, name string) (string, bool) {
	found := ""
	for _, h := range headers {
		first := strings.TrimSpace(strings.SplitN(h, ";", 2)[0])
		if !strings.HasPrefix(first, name+"=") {
			continue
		}
		value := strings.TrimPrefix(first, name+"=")
		if value == "" {
			continue
		}
		found = value
	}
	return found, found != ""
}

// Login discards the current session (if any) and logs in again.
func (c *Client) Login(ctx context.Context) (Identity, error) {
	creds, _ := c.session.snapshot()
	c.session.invalidate(creds.xAuthToken)

	creds, err := c.ensureSession(ctx)
	if err != nil {
		return Identity{}, err
	}
	return creds.identity, nil
}

// Identity returns the identity of the logged in account, logging in if needed.
func (c *Client) Identity(ctx context.Context) (Identity, error) {
	creds, err := c.ensureSession(ctx)
	if err != nil {
		return Identity{}, err
	}
	return creds.identity, nil
}

// login runs the whole login sequence and publishes the resulting session. It must only
// be called through ensureSession.
func (c *Client) login(ctx context.Context) (credentials, error) {
	ctx, span := tracer.Start(ctx, "client:login")
	defer span.End()

	c.session.setLoggingIn(true)
	defer c.session.setLoggingIn(false)

	loginError := func(err error) (credentials, error) {
		c.tel.ReportBroken(report_client_login, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return credentials{}, err
	}

	c.tel.ReportDebug(report_client_login, "fetching login page")

	trailCtx, trail := withCookieTrail(ctx)
	res, err := c.send(trailCtx, c.webBase+"/p/login")
	if err != nil {
		return loginError(&AuthError{Reason: ReasonMissingSessionCookie, Cause: err})
	}
	cookies := append(trail.all(), res.Header().Values("Set-Cookie")...)

	token, ok := findCookie(cookies, authTokenCookie)
	if ok {
		c.tel.ReportDebug(report_client_login, "auth token issued by login page")
	} else {
		sessionId, ok := findCookie(cookies, sessionIdCookie)
		if !ok {
			return loginError(&AuthError{Reason: ReasonMissingSessionCookie})
		}
		token, err = c.loginCredentials(ctx, sessionId)
		if err != nil {
			return loginError(err)
		}
	}

	issuedAt := c.session.clock.Now()
	c.tel.ReportDebug(report_client_login, "got auth token", "expires", issuedAt.Add(c.session.ttl))

	identity, err := c.loadIdentity(ctx, token)
	if err != nil {
		return loginError(err)
	}

	creds := credentials{
		xAuthToken: token,
		identity:   identity,
		issuedAt:   issuedAt,
	}
	c.session.establish(creds)
	return creds, nil
}

// loginCredentials exchanges the session id and the configured username/password for an
// auth token.
func (c *Client) loginCredentials(ctx context.Context, sessionId string) (string, error) {
	c.tel.ReportDebug(report_client_login, "submitting credentials", c.username)

	trailCtx, trail := withCookieTrail(ctx)
	res, err := c.send(trailCtx, c.webBase+"/c/CCAuth", RequestOptions{
		Method: http.MethodPost,
		MultipartForm: map[string]string{
			"cc_session_id":     sessionId,
			"cc_action":         "cca_login",
			"cc_failure_url":    c.webBase + "/p/LoginPp",
			"cc_success_url":    c.webBase + "/",
			"email":             c.username,
			"password":          c.password,
			"checkbox_remember": "1",
			"login":             "Log in to your account",
		},
	})
	if err != nil {
		return "", err
	}

	cookies := append(trail.all(), res.Header().Values("Set-Cookie")...)
	token, ok := findCookie(cookies, authTokenCookie)
	if !ok {
		return "", &AuthError{Reason: ReasonInvalidCredentials}
	}
	return token, nil
}

// loadIdentity fetches the landing page with the new token and extracts the identity.
func (c *Client) loadIdentity(ctx context.Context, token string) (Identity, error) {
	c.tel.ReportDebug(report_client_load_identity, "loading user data")

	body, err := c.dispatch(ctx, c.webBase+"/", RequestOptions{
		Headers: map[string]string{authTokenCookie: token},
	})
	if err != nil {
		return Identity{}, fmt.Errorf("fetch identity page: %w", err)
	}

	identity, err := c.identity.ExtractIdentity(body)
	if err != nil {
		return Identity{}, err
	}

	c.tel.ReportDebug(
		report_client_load_identity,
		"set user data",
		identity.UserId,
		identity.Username,
	)
	return identity, nil
}

package fanduel

import (
	"bytes"
	"fanduel-client/pkg/htmlutil"
	"regexp"

	"github.com/PuerkitoBio/goquery"
)

// IdentityExtractor derives the account identity from the landing page markup.
//
// Implementations must return an *AuthError with ReasonIdentityMarkupNotFound when the page
// does not contain the expected markup and ReasonIdentityFieldNotFound (with Field set) when
// the markup is there but a field is missing.
type IdentityExtractor interface {
	ExtractIdentity(page []byte) (Identity, error)
}

// IdentityExtractorFunc adapts a function into an IdentityExtractor.
type IdentityExtractorFunc func(page []byte) (Identity, error)

func (f IdentityExtractorFunc) ExtractIdentity(page []byte) (Identity, error) {
	return f(page)
}

var (
	identityIdRegex          = regexp.MustCompile(`id: (\d+?),`)
	identityUsernameRegex    = regexp.MustCompile(`username: '(.+?)',`)
	identityApiClientIdRegex = regexp.MustCompile(`apiClientId: '(.+?)',`)
)

// ScriptIdentityExtractor finds the inline script that assigns `FD.config` and reads the
// user id, username and api client id out of it with fixed patterns.
type ScriptIdentityExtractor struct{}

func (ScriptIdentityExtractor) ExtractIdentity(page []byte) (Identity, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return Identity{}, &AuthError{Reason: ReasonIdentityMarkupNotFound, Cause: err}
	}

	script, ok := htmlutil.FindScript(doc, "apiClientId", "FD.config")
	if !ok {
		return Identity{}, &AuthError{Reason: ReasonIdentityMarkupNotFound}
	}

	var identity Identity
	fields := []struct {
		name  string
		regex *regexp.Regexp
		out   *string
	}{
		{"id", identityIdRegex, &identity.UserId},
		{"username", identityUsernameRegex, &identity.Username},
		{"apiClientId", identityApiClientIdRegex, &identity.ApiClientId},
	}

	for _, f := range fields {
		groups := f.regex.FindStringSubmatch(script)
		if len(groups) < 2 {
			return Identity{}, &AuthError{Reason: ReasonIdentityFieldNotFound, Field: f.name}
		}
		*f.out = groups[1]
	}

	return identity, nil
}

package fanduel

import (
	"context"
	"fanduel-client/internal/components/assert"
	"fanduel-client/internal/components/telemetry"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const report_accounts_get = "accounts.get"

type Credentials struct {
	Username string
	Password string
}

// CredentialSource resolves the password of a configured account.
type CredentialSource interface {
	Credentials(ctx context.Context, username string) (Credentials, error)
}

type CredentialSourceFunc func(ctx context.Context, username string) (Credentials, error)

func (f CredentialSourceFunc) Credentials(ctx context.Context, username string) (Credentials, error) {
	return f(ctx, username)
}

// Accounts keeps a logged in client per username. Entries expire together with the
// token they were created with.
type Accounts struct {
	cache   *expirable.LRU[string, *Client]
	source  CredentialSource
	options ClientOptions
	tel     telemetry.API

	// keyed by username, two callers never log in the same account twice
	creating singleflight.Group
}

// NewAccounts creates a registry, `options` is used as the template for every client it
// creates (Username and Password are overwritten).
func NewAccounts(size int, source CredentialSource, options ClientOptions, tel telemetry.API) *Accounts {
	assert.NotNil(source)
	assert.NotNil(tel)
	return &Accounts{
		cache:   expirable.NewLRU[string, *Client](size, nil, TokenTTL),
		source:  source,
		options: options,
		tel:     telemetry.NewScopedAPI("accounts", tel),
	}
}

// Get returns a logged in client for the given username, creating one if there is no
// cached client.
func (a *Accounts) Get(ctx context.Context, username string) (*Client, error) {
	cached, hit := a.cache.Get(username)
	if hit {
		return cached, nil
	}

	// the login is shared by every caller waiting on this username
	createCtx := context.WithoutCancel(ctx)
	result, err, _ := a.creating.Do(username, func() (any, error) {
		cached, hit := a.cache.Get(username)
		if hit {
			return cached, nil
		}
		return a.create(createCtx, username)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Client), nil
}

func (a *Accounts) create(ctx context.Context, username string) (*Client, error) {
	creds, err := a.source.Credentials(ctx, username)
	if err != nil {
		a.tel.ReportBroken(report_accounts_get, err, username)
		return nil, err
	}

	opts := a.options
	opts.Username = creds.Username
	opts.Password = creds.Password
	client, err := NewClient(opts, a.tel)
	if err != nil {
		a.tel.ReportBroken(report_accounts_get, err, username)
		return nil, err
	}
	_, err = client.Login(ctx)
	if err != nil {
		return nil, err
	}

	a.cache.Add(username, client)
	a.tel.ReportCount(report_accounts_get, 1)
	return client, nil
}

// Forget drops the cached client of an account.
func (a *Accounts) Forget(username string) {
	a.cache.Remove(username)
}

// Len returns the number of cached clients.
func (a *Accounts) Len() int {
	return a.cache.Len()
}

package globals

import (
	"context"
	"fanduel-client/internal/components/telemetry"
	"fanduel-client/internal/config"
	"fanduel-client/internal/fanduel"
)

type key struct{}

type Value struct {
	Config   config.Config
	Accounts *fanduel.Accounts
	Tel      telemetry.API
	// Account is the username selected with --account, empty means the default account.
	Account string
}

// Client returns the logged in client of the selected account.
func (v *Value) Client(ctx context.Context) (*fanduel.Client, error) {
	username := v.Account
	if username == "" {
		username = v.Config.DefaultAccount
	}
	return v.Accounts.Get(ctx, username)
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}

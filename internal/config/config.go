package config

import (
	"context"
	"errors"
	"fanduel-client/internal/components/telemetry"
	"fanduel-client/internal/fanduel"
	"fanduel-client/pkg/configutil"
	"fmt"
	"os"
	"time"
)

const (
	UsernameEnv = "FANDUEL_USERNAME"
	PasswordEnv = "FANDUEL_PASSWORD"
)

// DefaultWatchSchedule polls every 15 minutes.
const DefaultWatchSchedule = "*/15 * * * *"

type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Config struct {
	Accounts       []Account `json:"accounts"`
	DefaultAccount string    `json:"default_account"`

	ApiBaseUrl       string `json:"api_base_url"`
	WebBaseUrl       string `json:"web_base_url"`
	BypassCloudflare bool   `json:"bypass_cloudflare"`
	// TimeoutSeconds is the per request timeout.
	TimeoutSeconds int `json:"timeout_seconds"`

	WatchSchedule string `json:"watch_schedule"`
	Debug         bool   `json:"debug"`
}

// Load reads `path` (and its `.local` override) and applies the environment overrides, a
// missing file is not an error as long as the environment provides an account.
func Load(path string) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	config.applyEnv()

	if config.WatchSchedule == "" {
		config.WatchSchedule = DefaultWatchSchedule
	}
	if config.DefaultAccount == "" && len(config.Accounts) > 0 {
		config.DefaultAccount = config.Accounts[0].Username
	}

	if len(config.Accounts) == 0 {
		return Config{}, fmt.Errorf(
			"no accounts configured, add one to %s or set %s and %s",
			path, UsernameEnv, PasswordEnv,
		)
	}
	return config, nil
}

func (c *Config) applyEnv() {
	if telemetry.DebugFromEnv() {
		c.Debug = true
	}

	username := os.Getenv(UsernameEnv)
	if username == "" {
		return
	}
	account := Account{Username: username, Password: os.Getenv(PasswordEnv)}

	c.DefaultAccount = username
	for i, a := range c.Accounts {
		if a.Username == username {
			if account.Password == "" {
				account.Password = a.Password
			}
			c.Accounts[i] = account
			return
		}
	}
	c.Accounts = append(c.Accounts, account)
}

// Account returns the account with the given username, an empty username selects the
// default account.
func (c Config) Account(username string) (Account, error) {
	if username == "" {
		username = c.DefaultAccount
	}
	for _, a := range c.Accounts {
		if a.Username == username {
			return a, nil
		}
	}
	return Account{}, fmt.Errorf("account %q is not configured", username)
}

// Credentials implements fanduel.CredentialSource.
func (c Config) Credentials(ctx context.Context, username string) (fanduel.Credentials, error) {
	account, err := c.Account(username)
	if err != nil {
		return fanduel.Credentials{}, err
	}
	if account.Password == "" {
		return fanduel.Credentials{}, fmt.Errorf("account %q has no password", account.Username)
	}
	return fanduel.Credentials{
		Username: account.Username,
		Password: account.Password,
	}, nil
}

// ClientOptions returns the options shared by every client, credentials excluded.
func (c Config) ClientOptions() fanduel.ClientOptions {
	return fanduel.ClientOptions{
		ApiBaseUrl:       c.ApiBaseUrl,
		WebBaseUrl:       c.WebBaseUrl,
		BypassCloudflare: c.BypassCloudflare,
		Timeout:          time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

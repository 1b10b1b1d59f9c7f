package fanduel

import (
	"context"
	"errors"
	"fanduel-client/internal/components/telemetry"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestAccounts(t *testing.T) {
	fake := newFakeFanDuel(t, loginModeSession)
	tel := telemetry.SetupForTesting(t)

	errUnknown := errors.New("unknown account")
	source := CredentialSourceFunc(func(ctx context.Context, username string) (Credentials, error) {
		if username != fakeUsername {
			return Credentials{}, errUnknown
		}
		return Credentials{Username: fakeUsername, Password: fakePassword}, nil
	})

	accounts := NewAccounts(8, source, ClientOptions{
		ApiBaseUrl: fake.srv.URL + "/api",
		WebBaseUrl: fake.srv.URL,
		RateLimit:  rate.Inf,
	}, tel)
	ctx := context.Background()

	client, err := accounts.Get(ctx, fakeUsername)
	require.NoError(t, err)
	require.Equal(t, SessionAuthenticated, client.SessionState())
	require.Equal(t, int32(1), fake.ccauthHits.Load())

	cached, err := accounts.Get(ctx, fakeUsername)
	require.NoError(t, err)
	require.Same(t, client, cached)
	require.Equal(t, int32(1), fake.ccauthHits.Load())
	require.Equal(t, 1, accounts.Len())

	_, err = accounts.Get(ctx, "someone@example.com")
	require.ErrorIs(t, err, errUnknown)
	require.Equal(t, 1, accounts.Len())

	accounts.Forget(fakeUsername)
	require.Equal(t, 0, accounts.Len())

	fresh, err := accounts.Get(ctx, fakeUsername)
	require.NoError(t, err)
	require.NotSame(t, client, fresh)
	require.Equal(t, int32(2), fake.ccauthHits.Load())
}

func TestAccountsLoginFailure(t *testing.T) {
	fake := newFakeFanDuel(t, loginModeSession)
	tel := telemetry.SetupForTesting(t)

	source := CredentialSourceFunc(func(ctx context.Context, username string) (Credentials, error) {
		return Credentials{Username: username, Password: "wrong"}, nil
	})
	accounts := NewAccounts(8, source, ClientOptions{
		ApiBaseUrl: fake.srv.URL + "/api",
		WebBaseUrl: fake.srv.URL,
		RateLimit:  rate.Inf,
	}, tel)

	_, err := accounts.Get(context.Background(), fakeUsername)
	require.True(t, IsAuthReason(err, ReasonInvalidCredentials))
	require.Equal(t, 0, accounts.Len())
}

func TestAccountsConcurrentGetSharesLogin(t *testing.T) {
	fake := newFakeFanDuel(t, loginModeSession)
	fake.loginDelay = 100 * time.Millisecond
	tel := telemetry.SetupForTesting(t)

	source := CredentialSourceFunc(func(ctx context.Context, username string) (Credentials, error) {
		return Credentials{Username: username, Password: fakePassword}, nil
	})
	accounts := NewAccounts(8, source, ClientOptions{
		ApiBaseUrl: fake.srv.URL + "/api",
		WebBaseUrl: fake.srv.URL,
		RateLimit:  rate.Inf,
	}, tel)

	const callers = 3
	clients := make([]*Client, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], errs[i] = accounts.Get(context.Background(), fakeUsername)
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Same(t, clients[0], clients[i])
	}
	require.Equal(t, int32(1), fake.ccauthHits.Load())
}

func TestAccountsSlowLookupDoesNotBlockOtherAccounts(t *testing.T) {
	fake := newFakeFanDuel(t, loginModeSession)
	tel := telemetry.SetupForTesting(t)

	const slowUsername = "slow@example.com"
	errLookup := errors.New("credential lookup timed out")
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	source := CredentialSourceFunc(func(ctx context.Context, username string) (Credentials, error) {
		if username == slowUsername {
			close(slowStarted)
			<-releaseSlow
			return Credentials{}, errLookup
		}
		return Credentials{Username: username, Password: fakePassword}, nil
	})
	accounts := NewAccounts(8, source, ClientOptions{
		ApiBaseUrl: fake.srv.URL + "/api",
		WebBaseUrl: fake.srv.URL,
		RateLimit:  rate.Inf,
	}, tel)
	ctx := context.Background()

	slowErr := make(chan error, 1)
	go func() {
		_, err := accounts.Get(ctx, slowUsername)
		slowErr <- err
	}()
	<-slowStarted

	// the slow lookup is still blocked here
	client, err := accounts.Get(ctx, fakeUsername)
	require.NoError(t, err)
	require.Equal(t, SessionAuthenticated, client.SessionState())

	close(releaseSlow)
	require.ErrorIs(t, <-slowErr, errLookup)
	require.Equal(t, 1, accounts.Len())
}

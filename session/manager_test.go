package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-desk-client/authapi"
	"github.com/jrsteele09/go-desk-client/credential"
	credentialrepofake "github.com/jrsteele09/go-desk-client/credential/repofake"
	"github.com/jrsteele09/go-desk-client/internal/utils"
	"github.com/jrsteele09/go-desk-client/session"
)

const (
	testUsername = "john.doe"
	testPassword = "password123"
)

// fakeAuthAPI is a scripted stand-in for the authentication endpoints.
type fakeAuthAPI struct {
	lock sync.Mutex

	loginResponse *authapi.TokenResponse
	loginErr      error
	loginCalls    int

	refreshResponse *authapi.TokenResponse
	refreshErr      error
	refreshCalls    int
	refreshDelay    time.Duration
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (*authapi.TokenResponse, error) {
	f.lock.Lock()
	f.loginCalls++
	f.lock.Unlock()
	return f.loginResponse, f.loginErr
}

func (f *fakeAuthAPI) Refresh(_ context.Context, _ string) (*authapi.TokenResponse, error) {
	f.lock.Lock()
	f.refreshCalls++
	delay := f.refreshDelay
	f.lock.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return f.refreshResponse, f.refreshErr
}

func (f *fakeAuthAPI) RefreshCalls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.refreshCalls
}

// recordingNavigator captures navigation events for assertions.
type recordingNavigator struct {
	lock     sync.Mutex
	home     int
	signIn   int
	messages []string
}

func (n *recordingNavigator) ToHome() {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.home++
}

func (n *recordingNavigator) ToSignIn(message string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.signIn++
	n.messages = append(n.messages, message)
}

type testFixture struct {
	repo    *credentialrepofake.FakeCredentialRepo
	authAPI *fakeAuthAPI
	nav     *recordingNavigator
	manager *session.Manager
}

func setupTestFixture(t *testing.T, authAPI *fakeAuthAPI, options ...session.ManagerOption) *testFixture {
	t.Helper()

	repo := credentialrepofake.NewFakeCredentialRepo()
	nav := &recordingNavigator{}
	manager, err := session.NewManager(repo, authAPI, nav, options...)
	require.NoError(t, err)

	return &testFixture{repo: repo, authAPI: authAPI, nav: nav, manager: manager}
}

func loginResponse(accessToken, refreshToken string) *authapi.TokenResponse {
	return &authapi.TokenResponse{
		AccessToken:  utils.Ptr(accessToken),
		RefreshToken: utils.Ptr(refreshToken),
		TokenType:    "bearer",
		User: &authapi.UserRecord{
			Username:    testUsername,
			DisplayName: "John Doe",
			Email:       "john@example.com",
			Role:        "admin",
			RoleID:      "role-1",
		},
	}
}

func TestNewManagerRequiresDependencies(t *testing.T) {
	_, err := session.NewManager(nil, &fakeAuthAPI{}, nil)
	require.Error(t, err)

	_, err = session.NewManager(credentialrepofake.NewFakeCredentialRepo(), nil, nil)
	require.Error(t, err)
}

func TestSignInSuccess(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{loginResponse: loginResponse("T1", "R1")})

	require.NoError(t, f.manager.SignIn(context.Background(), testUsername, testPassword))
	require.Equal(t, session.StateAuthenticated, f.manager.State())

	cred, err := f.repo.Load()
	require.NoError(t, err)
	require.Equal(t, "T1", cred.AccessToken)
	require.Equal(t, "R1", cred.RefreshToken)
	require.Equal(t, testUsername, cred.Username)

	profile, err := f.repo.LoadProfile()
	require.NoError(t, err)
	require.Equal(t, "john@example.com", profile.Email)

	require.Equal(t, 1, f.nav.home)
}

func TestSignInFailureSurfacesErrorWithoutRetry(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{loginErr: authapi.ErrInvalidCredentials})

	err := f.manager.SignIn(context.Background(), testUsername, "wrong")
	require.ErrorIs(t, err, authapi.ErrInvalidCredentials)
	require.Equal(t, session.StateUnauthenticated, f.manager.State())
	require.Equal(t, 1, f.authAPI.loginCalls)

	_, err = f.repo.Load()
	require.ErrorIs(t, err, credential.ErrNotFound)
}

func TestSignOutClearsBothStorageEntries(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{loginResponse: loginResponse("T1", "R1")})
	require.NoError(t, f.manager.SignIn(context.Background(), testUsername, testPassword))

	require.NoError(t, f.manager.SignOut())
	require.Equal(t, session.StateUnauthenticated, f.manager.State())
	require.Equal(t, 1, f.repo.ClearCalls)

	_, err := f.repo.Load()
	require.ErrorIs(t, err, credential.ErrNotFound)
	_, err = f.repo.LoadProfile()
	require.ErrorIs(t, err, credential.ErrNotFound)
}

func TestStateDerivedFromPersistedCredential(t *testing.T) {
	repo := credentialrepofake.NewFakeCredentialRepo()
	require.NoError(t, repo.Save(&credential.Credential{AccessToken: "T1"}))

	manager, err := session.NewManager(repo, &fakeAuthAPI{}, nil)
	require.NoError(t, err)
	require.Equal(t, session.StateAuthenticated, manager.State())
}

func TestTokenWithoutSessionReturnsErrNoSession(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{})

	_, err := f.manager.Token()
	require.ErrorIs(t, err, session.ErrNoSession)
	require.Empty(t, f.manager.Credential())
}

func TestRefreshPersistsNewAccessTokenAndPreservesIdentity(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{
		refreshResponse: &authapi.TokenResponse{AccessToken: utils.Ptr("T2")},
	})
	require.NoError(t, f.repo.Save(&credential.Credential{
		AccessToken:  "T1",
		RefreshToken: "R1",
		Username:     testUsername,
		Role:         "admin",
	}))

	token, err := f.manager.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "T2", token.AccessToken)

	cred, err := f.repo.Load()
	require.NoError(t, err)
	require.Equal(t, "T2", cred.AccessToken)
	require.Equal(t, "R1", cred.RefreshToken) // refresh token is not rotated
	require.Equal(t, testUsername, cred.Username)
	require.Equal(t, "admin", cred.Role)
}

func TestRefreshWithoutRefreshTokenFails(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{})
	require.NoError(t, f.repo.Save(&credential.Credential{AccessToken: "T1"}))

	_, err := f.manager.Refresh(context.Background())
	require.ErrorIs(t, err, session.ErrNoRefreshToken)
	require.Equal(t, 0, f.authAPI.RefreshCalls())
}

func TestConcurrentRefreshesShareOneFlight(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{
		refreshResponse: &authapi.TokenResponse{AccessToken: utils.Ptr("T2")},
		refreshDelay:    100 * time.Millisecond,
	})
	require.NoError(t, f.repo.Save(&credential.Credential{AccessToken: "T1", RefreshToken: "R1"}))

	const callers = 8
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := f.manager.Refresh(context.Background())
			if err != nil {
				errs[i] = err
				return
			}
			tokens[i] = token.AccessToken
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, f.authAPI.RefreshCalls())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, "T2", tokens[i])
	}
}

func TestTokenProactivelyRefreshesExpiredJWT(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": testUsername,
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	raw, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	f := setupTestFixture(t, &fakeAuthAPI{
		refreshResponse: &authapi.TokenResponse{AccessToken: utils.Ptr("T2")},
	})
	require.NoError(t, f.repo.Save(&credential.Credential{AccessToken: raw, RefreshToken: "R1"}))

	token, err := f.manager.Token()
	require.NoError(t, err)
	require.Equal(t, "T2", token.AccessToken)
	require.Equal(t, 1, f.authAPI.RefreshCalls())
}

func TestTokenReturnsOpaqueTokenAsIs(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{})
	require.NoError(t, f.repo.Save(&credential.Credential{AccessToken: "T1", RefreshToken: "R1"}))

	token, err := f.manager.Token()
	require.NoError(t, err)
	require.Equal(t, "T1", token.AccessToken)
	require.Equal(t, 0, f.authAPI.RefreshCalls())
}

func TestExpireClearsStateAndCarriesMessage(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{loginResponse: loginResponse("T1", "R1")})
	require.NoError(t, f.manager.SignIn(context.Background(), testUsername, testPassword))

	f.manager.Expire("session expired")

	require.Equal(t, session.StateUnauthenticated, f.manager.State())
	require.Equal(t, 1, f.nav.signIn)
	require.Equal(t, []string{"session expired"}, f.nav.messages)

	_, err := f.repo.Load()
	require.ErrorIs(t, err, credential.ErrNotFound)
}

func TestUpdateProfileMergesPartialFields(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{loginResponse: loginResponse("T1", "R1")})
	require.NoError(t, f.manager.SignIn(context.Background(), testUsername, testPassword))

	require.NoError(t, f.manager.UpdateProfile(credential.Profile{DisplayName: "Johnny Doe"}))

	profile, err := f.repo.LoadProfile()
	require.NoError(t, err)
	require.Equal(t, "Johnny Doe", profile.DisplayName)
	require.Equal(t, "john@example.com", profile.Email) // untouched fields survive

	cred, err := f.repo.Load()
	require.NoError(t, err)
	require.Equal(t, "Johnny Doe", cred.DisplayName)
}

func TestUpdateProfileWithoutSessionIsNoOp(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{})

	require.NoError(t, f.manager.UpdateProfile(credential.Profile{DisplayName: "Nobody"}))

	_, err := f.repo.LoadProfile()
	require.ErrorIs(t, err, credential.ErrNotFound)
}

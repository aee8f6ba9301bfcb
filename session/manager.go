// Package session owns the authenticated-user lifecycle: sign-in, sign-out,
// profile updates and single-flight token refresh. The Manager is the single
// source of truth for "who is logged in"; the request pipeline only reads
// tokens from it and triggers Refresh/Expire.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/jrsteele09/go-desk-client/authapi"
	"github.com/jrsteele09/go-desk-client/credential"
	"github.com/jrsteele09/go-desk-client/internal/utils"
)

// State describes the in-memory session lifecycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrNoRefreshToken = errors.New("no refresh token")
)

// refreshKey collapses concurrent refresh calls into one flight. There is a
// single credential per manager, so a single key suffices.
const refreshKey = "refresh"

// AuthAPI is the slice of the authentication server the manager drives.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*authapi.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*authapi.TokenResponse, error)
}

// Manager owns the credential repo and the session state machine. All
// dependencies are injected; nothing in this package is an ambient singleton.
type Manager struct {
	repo    credential.Repo
	api     AuthAPI
	nav     Navigator
	log     zerolog.Logger
	nowTime func() time.Time // nowTime function (injectable for testing)

	stateLock sync.RWMutex
	state     State

	refreshGroup singleflight.Group
}

var _ oauth2.TokenSource = (*Manager)(nil)

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = log
	}
}

// NewManager initializes a session manager with its required dependencies.
// The initial state is derived from the presence of a persisted credential.
func NewManager(repo credential.Repo, api AuthAPI, nav Navigator, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] credential repo is required")
	}
	if api == nil {
		return nil, errors.New("[NewManager] auth API is required")
	}
	if nav == nil {
		nav = NopNavigator{}
	}

	m := &Manager{
		repo:    repo,
		api:     api,
		nav:     nav,
		log:     zerolog.Nop(),
		nowTime: time.Now,
		state:   StateUnauthenticated,
	}
	for _, opt := range options {
		opt(m)
	}

	if cred, err := repo.Load(); err == nil && cred.HasAccessToken() {
		m.state = StateAuthenticated
	}

	return m, nil
}

// State returns the current session state.
func (m *Manager) State() State {
	m.stateLock.RLock()
	defer m.stateLock.RUnlock()
	return m.state
}

func (m *Manager) setState(s State) {
	m.stateLock.Lock()
	defer m.stateLock.Unlock()
	m.state = s
}

// SignIn exchanges a username and password for tokens, persists them and
// navigates to the default authenticated route. Failures transition back to
// unauthenticated and are surfaced to the caller, never retried here.
func (m *Manager) SignIn(ctx context.Context, username, password string) error {
	m.setState(StateAuthenticating)

	tokenResponse, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.setState(StateUnauthenticated)
		return errors.Wrap(err, "[Manager.SignIn] login")
	}

	user := utils.Value(tokenResponse.User)
	if user.Username == "" {
		user.Username = username
	}

	cred := &credential.Credential{
		AccessToken:  utils.Value(tokenResponse.AccessToken),
		RefreshToken: utils.Value(tokenResponse.RefreshToken),
		Username:     user.Username,
		DisplayName:  user.DisplayName,
		Role:         user.Role,
		RoleID:       user.RoleID,
	}
	if err := m.repo.Save(cred); err != nil {
		m.setState(StateUnauthenticated)
		return errors.Wrap(err, "[Manager.SignIn] save credential")
	}
	if err := m.repo.SaveProfile(&credential.Profile{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        user.Role,
		RoleID:      user.RoleID,
	}); err != nil {
		m.setState(StateUnauthenticated)
		return errors.Wrap(err, "[Manager.SignIn] save profile")
	}

	m.setState(StateAuthenticated)
	m.log.Info().Str("username", user.Username).Msg("signed in")
	m.nav.ToHome()
	return nil
}

// SignOut clears both persisted storage entries and navigates to the sign-in
// route. It never waits on in-flight requests; any ongoing call simply loses
// its credential.
func (m *Manager) SignOut() error {
	err := m.repo.Clear()
	m.setState(StateUnauthenticated)
	m.log.Info().Msg("signed out")
	m.nav.ToSignIn("")
	if err != nil {
		return errors.Wrap(err, "[Manager.SignOut] clear")
	}
	return nil
}

// Expire is the unrecoverable-failure variant of SignOut: credential state is
// cleared and the navigator is sent to the sign-in route with an explanatory
// message. Called by the request pipeline when a refresh fails.
func (m *Manager) Expire(message string) {
	if err := m.repo.Clear(); err != nil {
		m.log.Error().Err(err).Msg("failed to clear credential on expiry")
	}
	m.setState(StateUnauthenticated)
	m.log.Warn().Str("reason", message).Msg("session expired")
	m.nav.ToSignIn(message)
}

// Credential returns the persisted access token, or an empty string when no
// session exists. It never blocks on initialization.
func (m *Manager) Credential() string {
	cred, err := m.repo.Load()
	if err != nil {
		return ""
	}
	return cred.AccessToken
}

// Token implements oauth2.TokenSource. It returns ErrNoSession when no
// credential is stored. A JWT access token that is locally past its exp claim
// triggers a proactive refresh; opaque tokens are returned as-is and rely on
// the pipeline's 401 recovery.
func (m *Manager) Token() (*oauth2.Token, error) {
	cred, err := m.repo.Load()
	if errors.Is(err, credential.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Token] load")
	}

	if cred.HasRefreshToken() && m.tokenExpired(cred.AccessToken) {
		if token, err := m.Refresh(context.Background()); err == nil {
			return token, nil
		}
		// Refresh failed; hand back the stale token and let the 401 path
		// decide the outcome.
	}

	return &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    "Bearer",
	}, nil
}

// Refresh exchanges the stored refresh token for a new access token and
// persists it, preserving the identity fields. Concurrent callers share a
// single in-flight exchange rather than each issuing their own.
func (m *Manager) Refresh(ctx context.Context) (*oauth2.Token, error) {
	v, err, shared := m.refreshGroup.Do(refreshKey, func() (interface{}, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		m.log.Debug().Msg("joined in-flight token refresh")
	}
	return v.(*oauth2.Token), nil
}

func (m *Manager) refresh(ctx context.Context) (*oauth2.Token, error) {
	cred, err := m.repo.Load()
	if errors.Is(err, credential.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.refresh] load")
	}
	if !cred.HasRefreshToken() {
		return nil, ErrNoRefreshToken
	}

	tokenResponse, err := m.api.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.refresh] exchange")
	}

	cred.AccessToken = utils.Value(tokenResponse.AccessToken)
	if newRefresh := utils.Value(tokenResponse.RefreshToken); newRefresh != "" {
		cred.RefreshToken = newRefresh
	}
	if err := m.repo.Save(cred); err != nil {
		return nil, errors.Wrap(err, "[Manager.refresh] save")
	}

	m.setState(StateAuthenticated)
	m.log.Debug().Msg("access token refreshed")

	return &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    "Bearer",
	}, nil
}

// UpdateProfile merges the non-empty fields of partial into the persisted
// profile. It is a no-op when no session exists.
func (m *Manager) UpdateProfile(partial credential.Profile) error {
	cred, err := m.repo.Load()
	if errors.Is(err, credential.ErrNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "[Manager.UpdateProfile] load credential")
	}

	profile, err := m.repo.LoadProfile()
	if errors.Is(err, credential.ErrNotFound) {
		profile = &credential.Profile{Username: cred.Username}
	} else if err != nil {
		return errors.Wrap(err, "[Manager.UpdateProfile] load profile")
	}

	profile.Merge(partial)
	if err := m.repo.SaveProfile(profile); err != nil {
		return errors.Wrap(err, "[Manager.UpdateProfile] save profile")
	}

	// Keep the identity fields on the credential entry in step.
	cred.DisplayName = profile.DisplayName
	cred.Role = profile.Role
	cred.RoleID = profile.RoleID
	if err := m.repo.Save(cred); err != nil {
		return errors.Wrap(err, "[Manager.UpdateProfile] save credential")
	}
	return nil
}

// Profile returns the persisted profile, or ErrNoSession when none exists.
func (m *Manager) Profile() (*credential.Profile, error) {
	profile, err := m.repo.LoadProfile()
	if errors.Is(err, credential.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Profile] load")
	}
	return profile, nil
}

// tokenExpired reports whether raw is a JWT whose exp claim is in the past.
// Opaque tokens carry no local expiry signal and report false. The claim is
// read without signature verification; the server remains the authority.
func (m *Manager) tokenExpired(raw string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(m.nowTime())
}

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-desk-client/api"
	"github.com/jrsteele09/go-desk-client/authapi"
	"github.com/jrsteele09/go-desk-client/credential"
	credentialrepofake "github.com/jrsteele09/go-desk-client/credential/repofake"
	"github.com/jrsteele09/go-desk-client/internal/utils"
	"github.com/jrsteele09/go-desk-client/session"
	"github.com/jrsteele09/go-desk-client/transport"
)

type scriptedAuthAPI struct {
	lock            sync.Mutex
	refreshResponse *authapi.TokenResponse
	refreshErr      error
	refreshCalls    int
}

func (f *scriptedAuthAPI) Login(context.Context, string, string) (*authapi.TokenResponse, error) {
	return nil, errors.New("not implemented")
}

func (f *scriptedAuthAPI) Refresh(context.Context, string) (*authapi.TokenResponse, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.refreshCalls++
	return f.refreshResponse, f.refreshErr
}

type silentNavigator struct {
	lock     sync.Mutex
	messages []string
}

func (n *silentNavigator) ToHome() {}

func (n *silentNavigator) ToSignIn(message string) {
	n.lock.Lock()
	defer n.lock.Unlock()
	n.messages = append(n.messages, message)
}

// Exercises the whole stack: a stale token is rejected once, refreshed in the
// background, and the original listing call completes on the replay.
func TestDocumentsListRecoversFromExpiredToken(t *testing.T) {
	repo := credentialrepofake.NewFakeCredentialRepo()
	require.NoError(t, repo.Save(&credential.Credential{
		AccessToken:  "stale-token",
		RefreshToken: "refresh-token",
		Username:     "amy@example.com",
	}))

	authAPI := &scriptedAuthAPI{
		refreshResponse: &authapi.TokenResponse{
			AccessToken: utils.Ptr("fresh-token"),
			TokenType:   "Bearer",
		},
	}

	manager, err := session.NewManager(repo, authAPI, &silentNavigator{})
	require.NoError(t, err)

	pipeline, err := transport.New(manager)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		require.Equal(t, "/documents", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"doc-1","name":"handbook.pdf"}],"pagination":{"page":1,"per_page":20,"total":1}}`))
	}))
	defer server.Close()

	client, err := api.New(server.URL, pipeline)
	require.NoError(t, err)

	list, err := client.Documents.List(context.Background(), api.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, "doc-1", list.Items[0].ID)

	authAPI.lock.Lock()
	require.Equal(t, 1, authAPI.refreshCalls)
	authAPI.lock.Unlock()

	stored, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "fresh-token", stored.AccessToken)
	require.Equal(t, "refresh-token", stored.RefreshToken)
}

// A refresh rejection must tear the session down and surface the 401 to the caller.
func TestDocumentsListExpiresSessionWhenRefreshRejected(t *testing.T) {
	repo := credentialrepofake.NewFakeCredentialRepo()
	require.NoError(t, repo.Save(&credential.Credential{
		AccessToken:  "revoked-token",
		RefreshToken: "revoked-refresh",
	}))

	nav := &silentNavigator{}
	authAPI := &scriptedAuthAPI{refreshErr: authapi.ErrRefreshRejected}

	manager, err := session.NewManager(repo, authAPI, nav)
	require.NoError(t, err)

	pipeline, err := transport.New(manager)
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := api.New(server.URL, pipeline)
	require.NoError(t, err)

	_, err = client.Documents.List(context.Background(), api.ListOptions{})
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.Equal(t, session.StateUnauthenticated, manager.State())

	nav.lock.Lock()
	require.NotEmpty(t, nav.messages)
	nav.lock.Unlock()

	_, err = repo.Load()
	require.ErrorIs(t, err, credential.ErrNotFound)
}

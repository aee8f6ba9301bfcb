package credential_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-desk-client/credential"
)

func newTestRepo(t *testing.T) *credential.FileRepo {
	t.Helper()
	return credential.NewFileRepo(filepath.Join(t.TempDir(), "desk", "credentials.yaml"))
}

func TestLoadBeforeAnythingPersistedReturnsNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load()
	require.ErrorIs(t, err, credential.ErrNotFound)

	_, err = repo.LoadProfile()
	require.ErrorIs(t, err, credential.ErrNotFound)
}

func TestSaveAndLoadCredential(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(&credential.Credential{
		AccessToken:  "T1",
		RefreshToken: "R1",
		Username:     "john.doe",
		DisplayName:  "John Doe",
		Role:         "admin",
		RoleID:       "role-1",
	}))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "T1", loaded.AccessToken)
	require.Equal(t, "R1", loaded.RefreshToken)
	require.Equal(t, "john.doe", loaded.Username)
	require.Equal(t, "admin", loaded.Role)
}

func TestSaveProfilePreservesCredential(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(&credential.Credential{AccessToken: "T1"}))
	require.NoError(t, repo.SaveProfile(&credential.Profile{Username: "john.doe", Email: "john@example.com"}))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, "T1", loaded.AccessToken)

	profile, err := repo.LoadProfile()
	require.NoError(t, err)
	require.Equal(t, "john@example.com", profile.Email)
}

func TestClearRemovesBothEntries(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Save(&credential.Credential{AccessToken: "T1"}))
	require.NoError(t, repo.SaveProfile(&credential.Profile{Username: "john.doe"}))

	require.NoError(t, repo.Clear())

	_, err := repo.Load()
	require.ErrorIs(t, err, credential.ErrNotFound)
	_, err = repo.LoadProfile()
	require.ErrorIs(t, err, credential.ErrNotFound)
}

func TestClearWithoutFileIsNotAnError(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Clear())
}

func TestCredentialFileIsOwnerOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "credentials.yaml")
	repo := credential.NewFileRepo(path)
	require.NoError(t, repo.Save(&credential.Credential{AccessToken: "T1"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

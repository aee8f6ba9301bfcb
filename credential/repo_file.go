package credential

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var _ Repo = (*FileRepo)(nil)

// fileFormat is the on-disk layout. Both storage entries live in one file so
// Clear removes them atomically.
type fileFormat struct {
	Version    string      `yaml:"version"`
	Timestamp  time.Time   `yaml:"timestamp"`
	Credential *Credential `yaml:"credential,omitempty"`
	Profile    *Profile    `yaml:"profile,omitempty"`
}

// FileRepo persists the credential and profile to a YAML file, readable and
// writable only by the owner.
type FileRepo struct {
	path string
	lock sync.Mutex
}

// NewFileRepo creates a file-backed credential repo at path. The parent
// directory is created on first write, not here.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

func (r *FileRepo) Load() (*Credential, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	contents, err := r.read()
	if err != nil {
		return nil, err
	}
	if contents.Credential == nil || !contents.Credential.HasAccessToken() {
		return nil, ErrNotFound
	}
	return contents.Credential, nil
}

func (r *FileRepo) Save(credential *Credential) error {
	if credential == nil {
		return errors.New("[FileRepo.Save] credential is nil")
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	contents, err := r.read()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	contents.Credential = credential
	return r.write(contents)
}

func (r *FileRepo) LoadProfile() (*Profile, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	contents, err := r.read()
	if err != nil {
		return nil, err
	}
	if contents.Profile == nil {
		return nil, ErrNotFound
	}
	return contents.Profile, nil
}

func (r *FileRepo) SaveProfile(profile *Profile) error {
	if profile == nil {
		return errors.New("[FileRepo.SaveProfile] profile is nil")
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	contents, err := r.read()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	contents.Profile = profile
	return r.write(contents)
}

// Clear removes both persisted entries. Removing a file that does not exist
// is not an error.
func (r *FileRepo) Clear() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileRepo.Clear] os.Remove")
	}
	return nil
}

func (r *FileRepo) read() (fileFormat, error) {
	contents := fileFormat{Version: "1.0"}

	raw, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return contents, ErrNotFound
	}
	if err != nil {
		return contents, errors.Wrap(err, "[FileRepo.read] os.ReadFile")
	}
	if len(raw) == 0 {
		return contents, ErrNotFound
	}
	if err := yaml.Unmarshal(raw, &contents); err != nil {
		return fileFormat{Version: "1.0"}, errors.Wrap(err, "[FileRepo.read] yaml.Unmarshal")
	}
	return contents, nil
}

func (r *FileRepo) write(contents fileFormat) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileRepo.write] os.MkdirAll")
	}
	contents.Timestamp = time.Now().UTC()

	raw, err := yaml.Marshal(contents)
	if err != nil {
		return errors.Wrap(err, "[FileRepo.write] yaml.Marshal")
	}

	// Only the owner may read the stored tokens.
	if err := os.WriteFile(r.path, raw, 0o600); err != nil {
		return errors.Wrap(err, "[FileRepo.write] os.WriteFile")
	}
	return nil
}

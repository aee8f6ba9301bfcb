package credentialrepofake

import (
	"sync"

	"github.com/jrsteele09/go-desk-client/credential"
)

var _ credential.Repo = (*FakeCredentialRepo)(nil)

type FakeCredentialRepo struct {
	credential *credential.Credential
	profile    *credential.Profile
	lock       sync.RWMutex

	SaveCalls  int
	ClearCalls int
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{}
}

func (r *FakeCredentialRepo) Load() (*credential.Credential, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.credential == nil {
		return nil, credential.ErrNotFound
	}
	copied := *r.credential
	return &copied, nil
}

func (r *FakeCredentialRepo) Save(c *credential.Credential) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	copied := *c
	r.credential = &copied
	r.SaveCalls++
	return nil
}

func (r *FakeCredentialRepo) LoadProfile() (*credential.Profile, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.profile == nil {
		return nil, credential.ErrNotFound
	}
	copied := *r.profile
	return &copied, nil
}

func (r *FakeCredentialRepo) SaveProfile(p *credential.Profile) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	copied := *p
	r.profile = &copied
	return nil
}

func (r *FakeCredentialRepo) Clear() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.credential = nil
	r.profile = nil
	r.ClearCalls++
	return nil
}

package credential

import "errors"

// ErrNotFound is returned by Repo reads when no value has been persisted.
// Callers treat it as "absent", never as a fatal condition.
var ErrNotFound = errors.New("credential not found")

// Repo manages the two persisted storage entries of the client: the
// credential (tokens plus identity fields) and the user profile. Reads must
// be safe to call before any initialization completes and return ErrNotFound
// rather than blocking. Clear removes both entries.
type Repo interface {
	Load() (*Credential, error)
	Save(credential *Credential) error
	LoadProfile() (*Profile, error)
	SaveProfile(profile *Profile) error
	Clear() error
}

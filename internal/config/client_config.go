package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	apiURLVar          = "DESK_API_URL"
	credentialsFileVar = "DESK_CREDENTIALS_FILE"
	httpTimeoutVar     = "DESK_HTTP_TIMEOUT"
)

type ClientConfig interface {
	GetBaseURL() string
	GetCredentialsFile() string
	GetHTTPTimeout() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

func (Client) GetBaseURL() string {
	return GetEnv(apiURLVar, "http://localhost:8080/api")
}

// GetCredentialsFile returns the path of the persisted credential file,
// defaulting to <user config dir>/desk/credentials.yaml.
func (Client) GetCredentialsFile() string {
	if path := os.Getenv(credentialsFileVar); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "desk", "credentials.yaml")
	}
	return filepath.Join(configDir, "desk", "credentials.yaml")
}

// GetHTTPTimeout returns the client-enforced request timeout. Zero means no
// client timeout, leaving deadlines to the underlying transport.
func (Client) GetHTTPTimeout() time.Duration {
	timeout := GetEnv(httpTimeoutVar, "")
	if timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return 0
	}
	return d
}

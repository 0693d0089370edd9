package secrets

import (
	"errors"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups this app's secrets in the OS keychain.
	KeyringService = "careers-gateway"

	EnvClientID     = "SMARTRECRUITERS_CLIENT_ID"
	EnvClientSecret = "SMARTRECRUITERS_CLIENT_SECRET"
)

// ClientID comes from the environment only; it is not sensitive enough to
// warrant keychain storage and deployments already inject it.
func ClientID() string {
	return strings.TrimSpace(os.Getenv(EnvClientID))
}

// ClientSecret resolves the ATS client secret: environment first, then the
// OS keychain (handy for local development without a .env file).
func ClientSecret(keyringAccount string) (string, error) {
	if s := strings.TrimSpace(os.Getenv(EnvClientSecret)); s != "" {
		return s, nil
	}

	if strings.TrimSpace(keyringAccount) != "" {
		s, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(s) != "" {
			return s, nil
		}
	}

	return "", errors.New("SmartRecruiters client secret not found (set " + EnvClientSecret + " or store it in the keychain)")
}

func SetClientSecret(keyringAccount string, secret string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, secret)
}

func DeleteClientSecret(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

// KeyringAccount namespaces the stored secret by client id so switching ATS
// accounts doesn't read a stale secret.
func KeyringAccount(clientID string) string {
	return "careers-gateway:smartrecruiters:" + clientID
}

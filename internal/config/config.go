// Package config manages the dailybot config directory: stored session
// credentials from login and local settings such as the saved API key.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultAPIURL is the production DailyBot API endpoint.
const DefaultAPIURL = "https://api.dailybot.com"

// Environment variables recognized by the CLI.
const (
	EnvAPIKey = "DAILYBOT_API_KEY"   // org API key for agent mode
	EnvToken  = "DAILYBOT_CLI_TOKEN" // session token override
	EnvAPIURL = "DAILYBOT_API_URL"   // API base URL override
)

// Credentials is the session state written by a successful login.
type Credentials struct {
	Token            string `json:"token"`
	Email            string `json:"email,omitempty"`
	Organization     string `json:"organization,omitempty"`
	OrganizationUUID string `json:"organization_uuid,omitempty"`
	APIURL           string `json:"api_url,omitempty"`
}

// Settings holds local preferences saved via the config command.
type Settings struct {
	APIKey       string `json:"api_key,omitempty"`       // org API key (alternative to env var)
	DefaultAgent string `json:"default_agent,omitempty"` // agent name used when --name is omitted
}

// Dir returns the dailybot config directory (~/.config/dailybot on Linux),
// creating it if needed.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	dir := filepath.Join(base, "dailybot")
	os.MkdirAll(dir, 0700)
	return dir
}

func credentialsPath() string {
	return filepath.Join(Dir(), "credentials.json")
}

func settingsPath() string {
	return filepath.Join(Dir(), "config.json")
}

// LoadCredentials reads stored session credentials. Returns nil when no
// login has happened, and treats an unreadable or token-less file the same
// as an absent one so a fresh login can always overwrite it.
func LoadCredentials() *Credentials {
	data, err := os.ReadFile(credentialsPath())
	if err != nil {
		return nil
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil
	}
	if strings.TrimSpace(creds.Token) == "" {
		return nil
	}
	return &creds
}

// SaveCredentials writes session credentials with owner-only permissions.
func SaveCredentials(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	path := credentialsPath()
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	// WriteFile only applies the mode on create; tighten pre-existing files.
	return os.Chmod(path, 0600)
}

// ClearCredentials removes the stored session. Removing an absent file is
// not an error.
func ClearCredentials() error {
	err := os.Remove(credentialsPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// LoadSettings reads local settings, returning zero settings when the file
// is absent or unreadable.
func LoadSettings() Settings {
	var s Settings
	data, err := os.ReadFile(settingsPath())
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}
	}
	return s
}

// SaveSettings writes local settings with owner-only permissions. The file
// can hold an API key, so it gets the same treatment as credentials.
func SaveSettings(s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	path := settingsPath()
	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	return os.Chmod(path, 0600)
}

// APIURL resolves the API base URL: --api-url flag > DAILYBOT_API_URL >
// stored credentials > default. Trailing slashes are stripped so paths can
// be joined naively.
func APIURL(flagOverride string) string {
	if u := strings.TrimSpace(flagOverride); u != "" {
		return strings.TrimRight(u, "/")
	}
	if u := strings.TrimSpace(os.Getenv(EnvAPIURL)); u != "" {
		return strings.TrimRight(u, "/")
	}
	if creds := LoadCredentials(); creds != nil && strings.TrimSpace(creds.APIURL) != "" {
		return strings.TrimRight(strings.TrimSpace(creds.APIURL), "/")
	}
	return DefaultAPIURL
}

// Token returns the session token: DAILYBOT_CLI_TOKEN overrides the stored
// login. Empty when neither is present.
func Token() string {
	if t := strings.TrimSpace(os.Getenv(EnvToken)); t != "" {
		return t
	}
	if creds := LoadCredentials(); creds != nil {
		return creds.Token
	}
	return ""
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvToken, "")
	t.Setenv(EnvAPIURL, "")
	return dir
}

func TestLoadCredentialsAbsent(t *testing.T) {
	useTempConfigDir(t)
	if creds := LoadCredentials(); creds != nil {
		t.Fatalf("LoadCredentials() = %+v, want nil", creds)
	}
}

func TestCredentialsRoundtrip(t *testing.T) {
	useTempConfigDir(t)

	in := &Credentials{
		Token:            "tok-123",
		Email:            "dev@example.com",
		Organization:     "Acme",
		OrganizationUUID: "org-uuid-1",
		APIURL:           "https://api.dailybot.com",
	}
	if err := SaveCredentials(in); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}

	out := LoadCredentials()
	if out == nil {
		t.Fatal("LoadCredentials() = nil after save")
	}
	if out.Token != "tok-123" || out.Email != "dev@example.com" || out.OrganizationUUID != "org-uuid-1" {
		t.Fatalf("LoadCredentials() = %+v", out)
	}

	info, err := os.Stat(filepath.Join(Dir(), "credentials.json"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("credentials mode = %o, want 0600", perm)
	}
}

func TestLoadCredentialsTolerant(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "corrupt json", body: "{not json"},
		{name: "missing token", body: `{"email":"dev@example.com"}`},
		{name: "blank token", body: `{"token":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempConfigDir(t)
			path := filepath.Join(Dir(), "credentials.json")
			if err := os.WriteFile(path, []byte(tt.body), 0600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			if creds := LoadCredentials(); creds != nil {
				t.Fatalf("LoadCredentials() = %+v, want nil", creds)
			}
		})
	}
}

func TestClearCredentialsIdempotent(t *testing.T) {
	useTempConfigDir(t)

	if err := ClearCredentials(); err != nil {
		t.Fatalf("ClearCredentials on absent file: %v", err)
	}

	if err := SaveCredentials(&Credentials{Token: "tok"}); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}
	if err := ClearCredentials(); err != nil {
		t.Fatalf("ClearCredentials: %v", err)
	}
	if creds := LoadCredentials(); creds != nil {
		t.Fatalf("credentials survived clear: %+v", creds)
	}
	if err := ClearCredentials(); err != nil {
		t.Fatalf("second ClearCredentials: %v", err)
	}
}

func TestSettingsRoundtrip(t *testing.T) {
	useTempConfigDir(t)

	if s := LoadSettings(); s != (Settings{}) {
		t.Fatalf("LoadSettings() on empty dir = %+v", s)
	}

	in := Settings{APIKey: "dk_live_abc", DefaultAgent: "deploy-bot"}
	if err := SaveSettings(in); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if got := LoadSettings(); got != in {
		t.Fatalf("LoadSettings() = %+v, want %+v", got, in)
	}

	info, err := os.Stat(filepath.Join(Dir(), "config.json"))
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Fatalf("settings mode = %o, want 0600", perm)
	}
}

func TestLoadSettingsCorrupt(t *testing.T) {
	useTempConfigDir(t)
	if err := os.WriteFile(filepath.Join(Dir(), "config.json"), []byte("nope"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if s := LoadSettings(); s != (Settings{}) {
		t.Fatalf("LoadSettings() on corrupt file = %+v, want zero", s)
	}
}

func TestAPIURL(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		env    string
		stored string
		want   string
	}{
		{name: "default", want: DefaultAPIURL},
		{name: "stored wins over default", stored: "https://stored.example.com/", want: "https://stored.example.com"},
		{name: "env wins over stored", env: "https://env.example.com", stored: "https://stored.example.com", want: "https://env.example.com"},
		{name: "flag wins over env", flag: "https://flag.example.com/", env: "https://env.example.com", want: "https://flag.example.com"},
		{name: "trailing slashes stripped", flag: "https://flag.example.com//", want: "https://flag.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempConfigDir(t)
			t.Setenv(EnvAPIURL, tt.env)
			if tt.stored != "" {
				if err := SaveCredentials(&Credentials{Token: "tok", APIURL: tt.stored}); err != nil {
					t.Fatalf("SaveCredentials: %v", err)
				}
			}
			if got := APIURL(tt.flag); got != tt.want {
				t.Fatalf("APIURL(%q) = %q, want %q", tt.flag, got, tt.want)
			}
		})
	}
}

func TestToken(t *testing.T) {
	useTempConfigDir(t)

	if got := Token(); got != "" {
		t.Fatalf("Token() with nothing stored = %q, want empty", got)
	}

	if err := SaveCredentials(&Credentials{Token: "stored-tok"}); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}
	if got := Token(); got != "stored-tok" {
		t.Fatalf("Token() = %q, want stored-tok", got)
	}

	t.Setenv(EnvToken, "env-tok")
	if got := Token(); got != "env-tok" {
		t.Fatalf("Token() with env override = %q, want env-tok", got)
	}
}

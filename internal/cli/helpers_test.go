package cli

import (
	"testing"

	"github.com/dailybot/dailybot-cli/internal/config"
)

func useTempConfigDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{name: "empty", secret: "", want: ""},
		{name: "short", secret: "abc", want: "***"},
		{name: "exactly four", secret: "abcd", want: "****"},
		{name: "long", secret: "abcdefgh", want: "abcd****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskSecret(tt.secret); got != tt.want {
				t.Fatalf("maskSecret(%q) = %q, want %q", tt.secret, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 8); got != "hello..." {
		t.Fatalf("truncate() = %q, want %q", got, "hello...")
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate() = %q, want %q", got, "short")
	}
}

func TestStripAnsi(t *testing.T) {
	in := colorRed + "Error" + colorReset
	if got := stripAnsi(in); got != "Error" {
		t.Fatalf("stripAnsi(%q) = %q, want %q", in, got, "Error")
	}
}

func TestResolveAgentName(t *testing.T) {
	useTempConfigDir(t)

	if got := resolveAgentName("Build Bot"); got != "Build Bot" {
		t.Fatalf("resolveAgentName() = %q, want explicit name", got)
	}
	if got := resolveAgentName("  "); got != "" {
		t.Fatalf("resolveAgentName() = %q, want empty without a default", got)
	}

	if err := config.SaveSettings(config.Settings{DefaultAgent: "Default Bot"}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	if got := resolveAgentName(""); got != "Default Bot" {
		t.Fatalf("resolveAgentName() = %q, want configured default", got)
	}
	if got := resolveAgentName("Build Bot"); got != "Build Bot" {
		t.Fatalf("resolveAgentName() = %q, explicit name must win over default", got)
	}
}

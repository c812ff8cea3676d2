// Package identity resolves which credential the CLI acts as.
//
// Agent commands can authenticate three ways: the DAILYBOT_API_KEY
// environment variable, an API key saved in the config file, or the session
// token left behind by a login. Resolution checks the sources in that order
// and the first non-empty one wins; later sources are never consulted.
package identity

import (
	"errors"
	"os"
	"strings"

	"github.com/dailybot/dailybot-cli/internal/config"
	"github.com/dailybot/dailybot-cli/internal/debug"
)

// Kind distinguishes how a credential authenticates against the API.
type Kind string

const (
	KindAPIKey  Kind = "api-key" // org API key, sent as X-API-KEY
	KindSession Kind = "session" // login session token, sent as a Bearer token
)

// Source names where a credential was found.
type Source string

const (
	SourceEnv        Source = "env"
	SourceConfigFile Source = "config-file"
	SourceSession    Source = "session"
)

// ErrNoCredentials is returned by Resolve when every source comes up empty.
// The message names all three ways to authenticate.
var ErrNoCredentials = errors.New(
	"not authenticated: set " + config.EnvAPIKey +
		", save a key with 'dailybot config key=<key>', or run 'dailybot login'")

// ErrNotLoggedIn is returned by Session when no login token is stored.
var ErrNotLoggedIn = errors.New("not logged in: run 'dailybot login' first")

// Identity is a resolved credential plus where it came from.
type Identity struct {
	Kind   Kind
	Source Source
	Secret string
}

// Resolve picks the credential for agent API calls. Whitespace-only values
// are treated as absent so a source can be blanked to fall through to the
// next one. Resolve never performs network I/O.
func Resolve() (Identity, error) {
	if key := strings.TrimSpace(os.Getenv(config.EnvAPIKey)); key != "" {
		debug.LogKV("identity", "credential resolved", "source", SourceEnv, "kind", KindAPIKey)
		return Identity{Kind: KindAPIKey, Source: SourceEnv, Secret: key}, nil
	}
	if key := strings.TrimSpace(config.LoadSettings().APIKey); key != "" {
		debug.LogKV("identity", "credential resolved", "source", SourceConfigFile, "kind", KindAPIKey)
		return Identity{Kind: KindAPIKey, Source: SourceConfigFile, Secret: key}, nil
	}
	if tok := strings.TrimSpace(config.Token()); tok != "" {
		debug.LogKV("identity", "credential resolved", "source", SourceSession, "kind", KindSession)
		return Identity{Kind: KindSession, Source: SourceSession, Secret: tok}, nil
	}
	debug.Log("identity", "no credential in any source")
	return Identity{}, ErrNoCredentials
}

// Session returns a session identity when a login token is available,
// ignoring API keys. Used by the user-facing commands that act as the
// logged-in person rather than an agent.
func Session() (Identity, error) {
	tok := strings.TrimSpace(config.Token())
	if tok == "" {
		return Identity{}, ErrNotLoggedIn
	}
	return Identity{Kind: KindSession, Source: SourceSession, Secret: tok}, nil
}

// AuthHeader returns the HTTP header name and value for this identity.
func (id Identity) AuthHeader() (name, value string) {
	if id.Kind == KindAPIKey {
		return "X-API-KEY", id.Secret
	}
	return "Authorization", "Bearer " + id.Secret
}

// Zero reports whether no credential is set.
func (id Identity) Zero() bool {
	return id.Secret == ""
}

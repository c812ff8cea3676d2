package cli

import (
	"fmt"
	"testing"

	"github.com/dailybot/dailybot-cli/internal/api"
	"github.com/dailybot/dailybot-cli/internal/identity"
)

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "generic", err: fmt.Errorf("boom"), want: 1},
		{name: "no credentials", err: identity.ErrNoCredentials, want: 2},
		{name: "not logged in", err: identity.ErrNotLoggedIn, want: 2},
		{name: "wrapped not logged in", err: fmt.Errorf("preparing client: %w", identity.ErrNotLoggedIn), want: 2},
		{name: "unauthenticated", err: api.NewError(api.KindUnauthenticated, "nope"), want: 2},
		{name: "invalid payload", err: api.NewError(api.KindInvalidPayload, "bad"), want: 3},
		{name: "missing agent name", err: api.NewError(api.KindMissingAgentName, "name"), want: 4},
		{name: "not found", err: api.NewError(api.KindNotFound, "gone"), want: 5},
		{name: "rate limited", err: api.NewError(api.KindRateLimited, "slow down"), want: 6},
		{name: "service", err: api.NewError(api.KindService, "oops"), want: 7},
		{name: "timeout", err: api.NewError(api.KindTimeout, "deadline"), want: 8},
		{name: "wrapped api error", err: fmt.Errorf("sending: %w", api.NewError(api.KindRateLimited, "slow down")), want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Fatalf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/api"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Agent commands (require an API key or login)",
	Long: `Act as an automated agent: post activity reports, report and query
health, manage webhooks, and exchange agent-to-agent messages.

Agent commands authenticate with the first credential found: the
DAILYBOT_API_KEY environment variable, an API key saved with
'dailybot config key=<key>', or the session token from 'dailybot login'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(agentCmd)
}

// parseJSONData decodes a --json-data flag value into a map, or nil when
// the flag was not given.
func parseJSONData(raw string) (map[string]any, error) {
	if raw == "" {
		return nil, nil
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, api.NewError(api.KindInvalidPayload, "invalid JSON in --json-data")
	}
	return data, nil
}

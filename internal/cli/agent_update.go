package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/api"
)

var agentUpdateCmd = &cobra.Command{
	Use:   "update <content>",
	Short: "Submit an agent activity report",
	Long: `Submit an activity report on behalf of an agent.

Examples:
  DAILYBOT_API_KEY=xxx dailybot agent update "Deployed v2.1 to staging"
  dailybot agent update "Built feature X" --name "Build Bot"
  dailybot agent update "Ran checks" --json-data '{"passed": 41, "failed": 0}'`,
	Args: cobra.ExactArgs(1),
	RunE: runAgentUpdate,
}

func init() {
	agentUpdateCmd.Flags().StringP("name", "n", "", "Agent worker name")
	agentUpdateCmd.Flags().StringP("json-data", "j", "", "Structured JSON data to include")
	agentCmd.AddCommand(agentUpdateCmd)
}

func runAgentUpdate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	jsonData, _ := cmd.Flags().GetString("json-data")

	structured, err := parseJSONData(jsonData)
	if err != nil {
		return err
	}

	client, err := newAgentClient(cmd)
	if err != nil {
		return err
	}

	result, err := client.SubmitReport(api.ReportRequest{
		AgentName:  resolveAgentName(name),
		Content:    args[0],
		Structured: structured,
	})
	if err != nil {
		return err
	}

	printSuccess(fmt.Sprintf("Report submitted (id: %d)", result.ID))
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/api"
)

var agentHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report or query agent health",
	Long: `Report the agent as healthy or unhealthy, or query its current status.
Exactly one of --ok, --fail, or --status must be given.

An agent that has never reported queries as "unknown".

Examples:
  DAILYBOT_API_KEY=xxx dailybot agent health --ok --message "All good"
  dailybot agent health --fail --message "DB unreachable" --name "Build Bot"
  dailybot agent health --status --name "Build Bot"`,
	Args: cobra.NoArgs,
	RunE: runAgentHealth,
}

func init() {
	agentHealthCmd.Flags().Bool("ok", false, "Report healthy status")
	agentHealthCmd.Flags().Bool("fail", false, "Report unhealthy status")
	agentHealthCmd.Flags().Bool("status", false, "Query current health status")
	agentHealthCmd.Flags().StringP("message", "m", "", "Optional message to include")
	agentHealthCmd.Flags().StringP("name", "n", "", "Agent worker name")
	agentCmd.AddCommand(agentHealthCmd)
}

func runAgentHealth(cmd *cobra.Command, args []string) error {
	reportOK, _ := cmd.Flags().GetBool("ok")
	reportFail, _ := cmd.Flags().GetBool("fail")
	queryStatus, _ := cmd.Flags().GetBool("status")
	message, _ := cmd.Flags().GetString("message")
	name, _ := cmd.Flags().GetString("name")

	picked := 0
	for _, flag := range []bool{reportOK, reportFail, queryStatus} {
		if flag {
			picked++
		}
	}
	if picked != 1 {
		return api.NewError(api.KindInvalidPayload, "specify exactly one of --ok, --fail, or --status")
	}

	client, err := newAgentClient(cmd)
	if err != nil {
		return err
	}
	agentName := resolveAgentName(name)

	var result *api.HealthResult
	if queryStatus {
		result, err = client.Health(agentName)
	} else {
		result, err = client.SubmitHealth(agentName, reportOK, message)
	}
	if err != nil {
		return err
	}

	renderAgentHealth(result)
	return nil
}

func renderAgentHealth(result *api.HealthResult) {
	name := result.AgentName
	if name == "" {
		name = "Unknown"
	}
	status := result.Status
	if status == "" {
		status = api.StatusUnknown
	}
	lastCheck := result.LastCheck
	if lastCheck == "" {
		lastCheck = "N/A"
	}

	printHeader("Agent Health")
	printField("Agent", name)
	printFieldColored("Status", status, healthColor(status))
	printField("Last Check", lastCheck)

	if len(result.History) > 0 {
		fmt.Println()
		headers := []string{"TIMESTAMP", "STATUS", "MESSAGE"}
		var rows [][]string
		for _, entry := range result.History {
			colored := healthColor(entry.Status) + entry.Status + colorReset
			rows = append(rows, []string{entry.Timestamp, colored, entry.Message})
		}
		printTable(headers, rows)
	}

	if len(result.PendingMessages) > 0 {
		fmt.Printf("\n  %sPending messages (%d):%s\n", colorBold, len(result.PendingMessages), colorReset)
		for _, msg := range result.PendingMessages {
			sender := formatSender(msg)
			if sender != "" {
				fmt.Printf("  %s%s%s %s %s(%s)%s\n", colorDim, sender, colorReset, msg.Content, colorDim, msg.CreatedAt, colorReset)
			} else {
				fmt.Printf("  %s %s(%s)%s\n", msg.Content, colorDim, msg.CreatedAt, colorReset)
			}
		}
	}
	fmt.Println()
}

// formatSender renders a message origin as "[type] name:", "[type]:", or ""
// when the message carries no sender at all.
func formatSender(msg api.Message) string {
	switch {
	case msg.SenderName != "":
		return fmt.Sprintf("[%s] %s:", msg.SenderType, msg.SenderName)
	case msg.SenderType != "":
		return fmt.Sprintf("[%s]:", msg.SenderType)
	default:
		return ""
	}
}

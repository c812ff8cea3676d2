package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/api"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show pending check-ins for today",
	Args:    cobra.NoArgs,
	RunE:    runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, err := newSessionClient(cmd)
	if err != nil {
		return err
	}

	result, err := client.Status()
	if err != nil {
		return err
	}

	renderPendingCheckins(result.PendingCheckins)
	return nil
}

func renderPendingCheckins(checkins []api.PendingCheckin) {
	if len(checkins) == 0 {
		printInfo("No pending check-ins for today.")
		return
	}

	for _, checkin := range checkins {
		name := checkin.FollowupName
		if name == "" {
			name = "Check-in"
		}
		printHeader(name)
		for i, question := range checkin.TemplateQuestions {
			line := fmt.Sprintf("  %s%d.%s %s", colorDim, i+1, colorReset, question.Question)
			if question.IsBlocker {
				line += " " + styleBoldRed + "[blocker]" + colorReset
			}
			fmt.Println(line)
		}
	}
	fmt.Println()
}

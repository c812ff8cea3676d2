package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/api"
)

var updateCmd = &cobra.Command{
	Use:   "update [message]",
	Short: "Submit a check-in update",
	Long: `Submit a stand-up update as free text or with the structured flags.
With no message and no flags, the update is read interactively.

Examples:
  dailybot update "Finished the auth module, now writing tests."
  dailybot update --done "Auth module" --doing "Tests" --blocked "None"
  dailybot update`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringP("done", "d", "", "What you completed")
	updateCmd.Flags().StringP("doing", "w", "", "What you are working on")
	updateCmd.Flags().StringP("blocked", "b", "", "Any blockers")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	client, err := newSessionClient(cmd)
	if err != nil {
		return err
	}

	var message string
	if len(args) > 0 {
		message = args[0]
	}
	done, _ := cmd.Flags().GetString("done")
	doing, _ := cmd.Flags().GetString("doing")
	blocked, _ := cmd.Flags().GetString("blocked")

	if message == "" && done == "" && doing == "" && blocked == "" {
		printInfo("Enter your update (press Enter twice to submit):")
		message = readUpdateBody(os.Stdin)
		if message == "" {
			return api.NewError(api.KindInvalidPayload, "empty update, nothing sent")
		}
	}

	result, err := client.SubmitUpdate(api.UpdateRequest{
		Message: message,
		Done:    done,
		Doing:   doing,
		Blocked: blocked,
	})
	if err != nil {
		return err
	}

	renderUpdateResult(result)
	return nil
}

// readUpdateBody collects lines from r until a blank line arrives after
// something was typed. Leading blank lines are ignored.
func readUpdateBody(r io.Reader) string {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if len(lines) > 0 {
				break
			}
			continue
		}
		lines = append(lines, line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func renderUpdateResult(result *api.UpdateResult) {
	if result.FollowupsCount == 0 {
		printWarning("Update submitted but no check-ins were matched.")
		return
	}

	printSuccess(fmt.Sprintf("Update submitted to %d check-in(s)", result.FollowupsCount))
	for _, followup := range result.AttachedFollowups {
		label := "Submitted"
		if followup.Action == "updated" {
			label = "Updated"
		}
		fmt.Printf("  %s-%s %s %s(%s)%s\n", colorDim, colorReset, followup.FollowupName, colorDim, label, colorReset)
	}
}

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/config"
	"github.com/dailybot/dailybot-cli/internal/identity"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with DailyBot via an email code",
	Long: `Sign in by requesting a one-time code sent to your account email.

The session token is stored in your user config directory and used by
status, update, and the interactive menu. Accounts that belong to several
organizations pick one during login.

Examples:
  dailybot login
  dailybot login --email dev@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and revoke the current session token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().String("email", "", "DailyBot account email")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	client := newAnonClient(cmd)
	reader := bufio.NewReader(os.Stdin)

	email, _ := cmd.Flags().GetString("email")
	email = strings.TrimSpace(email)
	if email == "" {
		email = promptLine(reader, "Email: ")
	}
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if err := client.RequestCode(email); err != nil {
		return err
	}
	printSuccess("Verification code sent to " + email)
	printInfo("Check your inbox (including spam folder).")

	code := promptLine(reader, "Enter the 6-digit code: ")
	if code == "" {
		return fmt.Errorf("verification code is required")
	}

	result, err := client.VerifyCode(email, code, 0)
	if err != nil {
		return err
	}

	if result.OrganizationSelectionRequired {
		printInfo("You belong to multiple organizations. Please select one:")
		for i, org := range result.Organizations {
			fmt.Printf("  %s%d.%s %s\n", colorBold, i+1, colorReset, org.Name)
		}
		choice, convErr := strconv.Atoi(promptLine(reader, "Select organization number: "))
		if convErr != nil || choice < 1 || choice > len(result.Organizations) {
			return fmt.Errorf("invalid selection")
		}
		result, err = client.VerifyCode(email, code, result.Organizations[choice-1].ID)
		if err != nil {
			return err
		}
	}

	if result.Token == "" {
		return fmt.Errorf("authentication failed: no token received")
	}

	creds := &config.Credentials{
		Token:            result.Token,
		Email:            email,
		Organization:     result.Organization.Name,
		OrganizationUUID: result.OrgUUID(),
		APIURL:           client.BaseURL,
	}
	if err := config.SaveCredentials(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	printSuccess(fmt.Sprintf("Logged in as %s (%s)", email, creds.Organization))
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if _, err := identity.Session(); err != nil {
		printInfo("Not logged in.")
		return nil
	}

	// Revoke is best-effort; local credentials are cleared regardless.
	if client, err := newSessionClient(cmd); err == nil {
		_ = client.Logout()
	}

	if err := config.ClearCredentials(); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	printSuccess("Logged out.")
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/api"
	"github.com/dailybot/dailybot-cli/internal/buildinfo"
	"github.com/dailybot/dailybot-cli/internal/debug"
	"github.com/dailybot/dailybot-cli/internal/identity"
	"github.com/dailybot/dailybot-cli/internal/tui"
)

const (
	// ANSI color codes
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"

	// Combined styles
	styleBoldCyan   = "\033[1;36m"
	styleBoldGreen  = "\033[1;32m"
	styleBoldYellow = "\033[1;33m"
	styleBoldRed    = "\033[1;31m"
	styleBoldBlue   = "\033[1;34m"
	styleBoldWhite  = "\033[1;37m"
)

var rootCmd = &cobra.Command{
	Use:   "dailybot",
	Short: "DailyBot terminal client",
	Long: colorBold + `
     _         _  _         _             _
  __| |  __ _ (_)| | _   _ | |__    ___  | |_
 / _` + "`" + ` | / _` + "`" + ` || || || | | || '_ \  / _ \ | __|
| (_| || (_| || || || |_| || |_) || (_) || |_
 \__,_| \__,_||_||_| \__, ||_.__/  \___/  \__|
                     |___/` + colorReset + `

  ` + styleBoldCyan + `DailyBot terminal client` + colorReset + ` v` + buildinfo.Current().Version + `

  Post stand-up updates, report agent health, and exchange agent
  messages with your DailyBot workspace without leaving the terminal.

  Run ` + styleBoldWhite + `dailybot login` + colorReset + ` to authenticate, or ` + styleBoldWhite + `dailybot` + colorReset + ` with no
  arguments for the interactive menu.

` + colorBold + `Getting Started:` + colorReset + `
  dailybot login                  Sign in with an email code
  dailybot status                 Show today's pending check-ins
  dailybot update                 Submit a stand-up update
  dailybot agent update "..."     Post a report as an agent
  dailybot                        Launch the interactive menu

` + colorBold + `More Info:` + colorReset + `
  https://www.dailybot.com/`,

	Version: buildinfo.Current().Version,

	RunE: func(cmd *cobra.Command, args []string) error {
		// Interactive menu in a terminal, help otherwise.
		if !isatty.IsTerminal(os.Stdout.Fd()) || !isatty.IsTerminal(os.Stdin.Fd()) {
			return cmd.Help()
		}
		client, err := newSessionClient(cmd)
		if err != nil {
			return err
		}
		return tui.Run(client)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetVersionTemplate("dailybot version {{.Version}}\n")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose debug logging")
	rootCmd.PersistentFlags().String("api-url", "", "Override the DailyBot API base URL")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		debugFlag, _ := cmd.Flags().GetBool("debug")
		if !debugFlag && !debug.ShouldEnableFromEnv() {
			return nil
		}
		logPath, err := debug.Init()
		if err != nil {
			return fmt.Errorf("initializing debug logger: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s[debug]%s logging to %s\n", colorDim, colorReset, logPath)
		bi := buildinfo.Current()
		debug.LogKV("cli", "dailybot starting",
			"version", bi.Version,
			"commit", bi.CommitHash,
			"build_date", bi.BuildDate,
			"pid", os.Getpid(),
			"command", cmd.Name(),
			"args", args,
		)
		return nil
	}
}

// exitCodeFor maps an error to the process exit code. API errors carry their
// own code per failure kind; missing credentials always mean 2.
func exitCodeFor(err error) int {
	if errors.Is(err, identity.ErrNoCredentials) || errors.Is(err, identity.ErrNotLoggedIn) {
		return 2
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.ExitCode()
	}
	return 1
}

// Execute runs the root command.
func Execute() {
	defer debug.Close()
	if err := rootCmd.Execute(); err != nil {
		debug.Logf("cli", "exit with error: %v", err)
		fmt.Fprintf(os.Stderr, "%sError: %s%s\n", colorRed, err, colorReset)
		os.Exit(exitCodeFor(err))
	}
	debug.Log("cli", "exit success")
}

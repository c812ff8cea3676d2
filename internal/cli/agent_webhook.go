package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/hexid"
	"github.com/dailybot/dailybot-cli/internal/hookserver"
)

var agentWebhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage agent webhooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var webhookRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a webhook for the agent",
	Long: `Register a URL that receives a POST for every message sent to the agent.
Registering again for the same agent replaces the previous URL.

Examples:
  DAILYBOT_API_KEY=xxx dailybot agent webhook register --url https://my-server.com/hook
  dailybot agent webhook register --url https://... --secret my-token --name "Build Bot"`,
	Args: cobra.NoArgs,
	RunE: runWebhookRegister,
}

var webhookUnregisterCmd = &cobra.Command{
	Use:   "unregister",
	Short: "Unregister the agent's webhook",
	Args:  cobra.NoArgs,
	RunE:  runWebhookUnregister,
}

var webhookListenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run a local listener and print deliveries as they arrive",
	Long: `Start a local HTTP server, register it as the agent's webhook, and print
every delivered message until interrupted. On exit the webhook is
unregistered again.

The listener only works when DailyBot can reach this machine; use
--public-url to register a tunnel or reverse-proxy address that forwards
to the local port.

Examples:
  dailybot agent webhook listen --name "Build Bot"
  dailybot agent webhook listen --port 8844 --public-url https://tunnel.example.com/hooks/dailybot`,
	Args: cobra.NoArgs,
	RunE: runWebhookListen,
}

func init() {
	webhookRegisterCmd.Flags().String("url", "", "Webhook URL to receive POST requests (required)")
	webhookRegisterCmd.Flags().String("secret", "", "Secret sent as X-Webhook-Secret header")
	webhookRegisterCmd.Flags().StringP("name", "n", "", "Agent worker name")
	_ = webhookRegisterCmd.MarkFlagRequired("url")

	webhookUnregisterCmd.Flags().StringP("name", "n", "", "Agent worker name")

	webhookListenCmd.Flags().String("host", "127.0.0.1", "Host to bind to")
	webhookListenCmd.Flags().IntP("port", "p", 0, "Port to listen on (0 = random free port)")
	webhookListenCmd.Flags().String("secret", "", "Delivery secret (generated when empty)")
	webhookListenCmd.Flags().String("public-url", "", "Externally reachable URL to register instead of the bind address")
	webhookListenCmd.Flags().StringP("name", "n", "", "Agent worker name")

	agentWebhookCmd.AddCommand(webhookRegisterCmd, webhookUnregisterCmd, webhookListenCmd)
	agentCmd.AddCommand(agentWebhookCmd)
}

func runWebhookRegister(cmd *cobra.Command, args []string) error {
	url, _ := cmd.Flags().GetString("url")
	secret, _ := cmd.Flags().GetString("secret")
	name, _ := cmd.Flags().GetString("name")

	client, err := newAgentClient(cmd)
	if err != nil {
		return err
	}

	result, err := client.RegisterWebhook(resolveAgentName(name), url, secret)
	if err != nil {
		return err
	}

	printHeader("Webhook Registered")
	printField("Agent", result.AgentName)
	printField("Webhook URL", result.WebhookURL)
	fmt.Println()
	return nil
}

func runWebhookUnregister(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")

	client, err := newAgentClient(cmd)
	if err != nil {
		return err
	}

	detail, err := client.UnregisterWebhook(resolveAgentName(name))
	if err != nil {
		return err
	}

	printSuccess(detail)
	return nil
}

func runWebhookListen(cmd *cobra.Command, args []string) error {
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	secret, _ := cmd.Flags().GetString("secret")
	publicURL, _ := cmd.Flags().GetString("public-url")
	name, _ := cmd.Flags().GetString("name")

	client, err := newAgentClient(cmd)
	if err != nil {
		return err
	}
	agentName := resolveAgentName(name)

	if secret == "" {
		secret = hexid.Secret()
	}

	srv := hookserver.New(hookserver.Options{Host: host, Port: port, Secret: secret})
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting listener: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	registerURL := publicURL
	if registerURL == "" {
		registerURL = srv.URL()
	}

	result, err := client.RegisterWebhook(agentName, registerURL, secret)
	if err != nil {
		return err
	}

	printHeader("Webhook Listener")
	printField("Agent", result.AgentName)
	printField("Webhook URL", result.WebhookURL)
	printField("Listening on", srv.Addr())
	fmt.Println()
	printInfo("Waiting for deliveries. Press Ctrl+C to stop.")
	fmt.Println()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Println()
	if detail, err := client.UnregisterWebhook(agentName); err != nil {
		printWarning("Could not unregister the webhook: " + err.Error())
	} else {
		printSuccess(detail)
	}
	return nil
}

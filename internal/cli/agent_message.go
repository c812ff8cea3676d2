package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/api"
)

var agentMessageCmd = &cobra.Command{
	Use:   "message",
	Short: "Send and list agent messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var messageSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a message to an agent",
	Long: `Send a point-to-point message to another agent.

Examples:
  DAILYBOT_API_KEY=xxx dailybot agent message send --to "Build Bot" --content "Review PR #42"
  dailybot agent message send --to "Build Bot" --content "Deploy now" --type command
  dailybot agent message send --to "Build Bot" --content "Ping" --json-data '{"run": 7}'`,
	Args: cobra.NoArgs,
	RunE: runMessageSend,
}

var messageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List messages for an agent",
	Long: `List the messages queued for an agent, in the order the server returns
them. --pending narrows the list to undelivered messages.

Examples:
  DAILYBOT_API_KEY=xxx dailybot agent message list --name "Build Bot"
  dailybot agent message list --name "Build Bot" --pending`,
	Args: cobra.NoArgs,
	RunE: runMessageList,
}

func init() {
	messageSendCmd.Flags().String("to", "", "Target agent name (required)")
	messageSendCmd.Flags().String("content", "", "Message content (required)")
	messageSendCmd.Flags().String("type", "", "Message type: text, command, or system")
	messageSendCmd.Flags().StringP("name", "n", "", "Sender agent name")
	messageSendCmd.Flags().StringP("json-data", "j", "", "JSON metadata to include")
	messageSendCmd.Flags().String("expires-at", "", "ISO 8601 expiration timestamp")
	_ = messageSendCmd.MarkFlagRequired("to")
	_ = messageSendCmd.MarkFlagRequired("content")

	messageListCmd.Flags().StringP("name", "n", "", "Agent name to list messages for")
	messageListCmd.Flags().Bool("pending", false, "Show only undelivered messages")

	agentMessageCmd.AddCommand(messageSendCmd, messageListCmd)
	agentCmd.AddCommand(agentMessageCmd)
}

func runMessageSend(cmd *cobra.Command, args []string) error {
	to, _ := cmd.Flags().GetString("to")
	content, _ := cmd.Flags().GetString("content")
	messageType, _ := cmd.Flags().GetString("type")
	name, _ := cmd.Flags().GetString("name")
	jsonData, _ := cmd.Flags().GetString("json-data")
	expiresAt, _ := cmd.Flags().GetString("expires-at")

	metadata, err := parseJSONData(jsonData)
	if err != nil {
		return err
	}

	client, err := newAgentClient(cmd)
	if err != nil {
		return err
	}

	result, err := client.SendMessage(api.MessageRequest{
		To:          to,
		Content:     content,
		MessageType: messageType,
		Metadata:    metadata,
		ExpiresAt:   expiresAt,
		SenderName:  resolveAgentName(name),
	})
	if err != nil {
		return err
	}

	renderMessageSent(result)
	return nil
}

func runMessageList(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	pending, _ := cmd.Flags().GetBool("pending")

	client, err := newAgentClient(cmd)
	if err != nil {
		return err
	}

	messages, err := client.Messages(resolveAgentName(name), pending)
	if err != nil {
		return err
	}

	renderMessages(messages)
	return nil
}

func renderMessageSent(msg *api.Message) {
	id := msg.ID
	if id == "" {
		id = "N/A"
	}
	from := msg.SenderName
	if from == "" {
		from = msg.SenderType
	}
	messageType := msg.MessageType
	if messageType == "" {
		messageType = "text"
	}

	printHeader("Message Sent")
	printField("ID", id)
	printField("To", msg.AgentName)
	printField("From", from)
	printField("Type", messageType)
	printField("Content", msg.Content)
	fmt.Println()
}

func renderMessages(messages []api.Message) {
	if len(messages) == 0 {
		printInfo("No messages found.")
		return
	}

	printHeader("Agent Messages")
	headers := []string{"TYPE", "SENDER", "CONTENT", "DELIVERED", "CREATED"}
	var rows [][]string
	for _, msg := range messages {
		messageType := msg.MessageType
		if messageType == "" {
			messageType = "text"
		}
		sender := msg.SenderType
		if msg.SenderName != "" {
			sender = fmt.Sprintf("%s (%s)", msg.SenderName, msg.SenderType)
		}
		delivered := colorYellow + "no" + colorReset
		if msg.Delivered {
			delivered = colorGreen + "yes" + colorReset
		}
		rows = append(rows, []string{
			messageType,
			sender,
			truncate(msg.Content, 60),
			delivered,
			msg.CreatedAt,
		})
	}
	printTable(headers, rows)
	fmt.Println()
}

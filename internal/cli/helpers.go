package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/api"
	"github.com/dailybot/dailybot-cli/internal/config"
	"github.com/dailybot/dailybot-cli/internal/identity"
)

// newAgentClient builds a client for agent commands. Agent commands accept
// any credential: API key from the environment or config file, or the
// session token as a fallback.
func newAgentClient(cmd *cobra.Command) (*api.Client, error) {
	id, err := identity.Resolve()
	if err != nil {
		return nil, err
	}
	return api.New(apiURL(cmd), id), nil
}

// newSessionClient builds a client for user commands, which act as the
// logged-in person and never as an API key.
func newSessionClient(cmd *cobra.Command) (*api.Client, error) {
	id, err := identity.Session()
	if err != nil {
		return nil, err
	}
	return api.New(apiURL(cmd), id), nil
}

// newAnonClient builds an unauthenticated client for the login flow.
func newAnonClient(cmd *cobra.Command) *api.Client {
	return api.New(apiURL(cmd), identity.Identity{})
}

func apiURL(cmd *cobra.Command) string {
	override, _ := cmd.Flags().GetString("api-url")
	return config.APIURL(override)
}

// resolveAgentName applies the configured default agent when no --name was
// given. The API client rejects an empty name before any request goes out.
func resolveAgentName(flagValue string) string {
	if name := strings.TrimSpace(flagValue); name != "" {
		return name
	}
	return strings.TrimSpace(config.LoadSettings().DefaultAgent)
}

// promptLine prints a prompt and reads one trimmed line. The caller owns the
// reader so consecutive prompts share buffered input.
func promptLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// printSuccess prints an OK line.
func printSuccess(message string) {
	fmt.Printf("%sOK%s %s\n", styleBoldGreen, colorReset, message)
}

// printWarning prints a warning line.
func printWarning(message string) {
	fmt.Printf("%sWarning:%s %s\n", styleBoldYellow, colorReset, message)
}

// printInfo prints a dim informational line.
func printInfo(message string) {
	fmt.Println(colorDim + message + colorReset)
}

// printHeader prints a formatted section header.
func printHeader(title string) {
	fmt.Printf("\n%s%s%s\n", styleBoldCyan, title, colorReset)
	fmt.Println(colorDim + strings.Repeat("-", len(title)+2) + colorReset)
}

// printField prints a labeled field.
func printField(label, value string) {
	fmt.Printf("  %s%-16s%s %s\n", colorBold, label+":", colorReset, value)
}

// printFieldColored prints a labeled field with colored value.
func printFieldColored(label, value, color string) {
	fmt.Printf("  %s%-16s%s %s%s%s\n", colorBold, label+":", colorReset, color, value, colorReset)
}

// healthColor returns an ANSI color code for a health status string.
func healthColor(status string) string {
	switch strings.ToLower(status) {
	case api.StatusHealthy:
		return colorGreen
	case api.StatusUnhealthy:
		return colorRed
	case api.StatusUnknown:
		return colorYellow
	default:
		return colorWhite
	}
}

// printTable prints a simple table with headers and rows.
func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println(colorDim + "  (none)" + colorReset)
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				// Strip ANSI codes for width calculation
				stripped := stripAnsi(cell)
				if len(stripped) > widths[i] {
					widths[i] = len(stripped)
				}
			}
		}
	}

	// Print header
	headerLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%s%-*s%s", colorBold, widths[i]+2, h, colorReset)
	}
	fmt.Println(headerLine)

	// Print separator
	sepLine := "  "
	for _, w := range widths {
		sepLine += colorDim + strings.Repeat("-", w+2) + colorReset
	}
	fmt.Println(sepLine)

	// Print rows
	for _, row := range rows {
		rowLine := "  "
		for i, cell := range row {
			if i < len(widths) {
				// Pad by visible width so ANSI codes do not skew columns
				stripped := stripAnsi(cell)
				padding := widths[i] - len(stripped)
				if padding < 0 {
					padding = 0
				}
				rowLine += cell + strings.Repeat(" ", padding+2)
			}
		}
		fmt.Println(rowLine)
	}
}

// stripAnsi removes ANSI escape codes from a string (for width calculation).
func stripAnsi(s string) string {
	var out strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// truncate truncates a string to a given max length, adding "..." if needed.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// maskSecret hides all but the first four characters of a secret.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-4)
}

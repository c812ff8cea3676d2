package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailybot/dailybot-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config <setting>[=<value>]",
	Aliases: []string{"cfg"},
	Short:   "Get, set, or remove a stored setting",
	Long: `Get, set, or remove a setting stored in the DailyBot config file.

Settings:
  key     API key used by agent commands
  agent   Default agent name when --name is omitted

Examples:
  dailybot config key=abc123    # Save API key
  dailybot config key           # Show current API key (masked)
  dailybot config key=          # Remove stored API key
  dailybot config agent="Build Bot"`,
	Args: cobra.ExactArgs(1),
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// settingSpec binds a setting name to its slot in config.Settings.
type settingSpec struct {
	label  string
	secret bool
	get    func(config.Settings) string
	set    func(*config.Settings, string)
}

var knownSettings = map[string]settingSpec{
	"key": {
		label:  "API key",
		secret: true,
		get:    func(s config.Settings) string { return s.APIKey },
		set:    func(s *config.Settings, v string) { s.APIKey = v },
	},
	"agent": {
		label: "Default agent",
		get:   func(s config.Settings) string { return s.DefaultAgent },
		set:   func(s *config.Settings, v string) { s.DefaultAgent = v },
	},
}

func settingNames() []string {
	names := make([]string, 0, len(knownSettings))
	for name := range knownSettings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseSetting splits "name=value" syntax. hasValue distinguishes
// "key=" (remove) from "key" (show).
func parseSetting(arg string) (name, value string, hasValue bool) {
	if idx := strings.IndexByte(arg, '='); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}

func runConfig(cmd *cobra.Command, args []string) error {
	name, value, hasValue := parseSetting(args[0])

	spec, ok := knownSettings[name]
	if !ok {
		return fmt.Errorf("unknown setting %q (available: %s)", name, strings.Join(settingNames(), ", "))
	}

	settings := config.LoadSettings()

	// Show current value
	if !hasValue {
		current := spec.get(settings)
		switch {
		case current == "":
			printInfo(fmt.Sprintf("%s: not set", name))
		case spec.secret:
			printInfo(fmt.Sprintf("%s: %s", name, maskSecret(current)))
		default:
			printInfo(fmt.Sprintf("%s: %s", name, current))
		}
		return nil
	}

	// Remove value
	if value == "" {
		spec.set(&settings, "")
		if err := config.SaveSettings(settings); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		printSuccess(spec.label + " removed.")
		return nil
	}

	// Save value
	spec.set(&settings, value)
	if err := config.SaveSettings(settings); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	display := value
	if spec.secret {
		display = maskSecret(value)
	}
	printSuccess(fmt.Sprintf("%s saved (%s)", spec.label, display))
	return nil
}

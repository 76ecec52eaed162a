package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/keepmind9/botpoll/internal/core"
	"github.com/spf13/cobra"
)

var (
	validateConfigFile string
	validateJSON       bool
)

// ValidationResult represents the validation result
type ValidationResult struct {
	Valid          bool     `json:"valid"`
	Config         string   `json:"config"`
	Commands       []string `json:"commands,omitempty"`
	UpdateInterval string   `json:"update_interval,omitempty"`
	Timeout        string   `json:"timeout,omitempty"`
	Errors         []string `json:"errors,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate botpoll configuration file",
	Long: `Validate the botpoll configuration file without starting the bot.

This command checks:
  - YAML syntax and environment variables
  - Bot credentials
  - Polling interval and timeout ranges
  - Command and whitelist settings

Exit codes:
  0 - Configuration is valid
  1 - Configuration has errors`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		configFile := findConfigFile(validateConfigFile)
		if configFile == "" {
			fmt.Fprintln(out, "❌ No configuration file found")
			fmt.Fprintln(out, "\nSpecify a config file with --config or ensure one exists at:")
			for _, loc := range defaultConfigLocations() {
				fmt.Fprintf(out, "  - %s\n", loc)
			}
			os.Exit(1)
		}

		result := validateFile(configFile)
		outputValidationResult(out, result, validateJSON)
		if !result.Valid {
			os.Exit(1)
		}
	},
}

func defaultConfigLocations() []string {
	return []string{
		"config.yaml",
		filepath.Join(os.Getenv("HOME"), ".config/botpoll/config.yaml"),
		"/etc/botpoll/config.yaml",
	}
}

// findConfigFile returns explicit when set, otherwise the first default
// location that exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, loc := range defaultConfigLocations() {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

func validateFile(configFile string) ValidationResult {
	cfg, err := core.LoadConfig(configFile)
	if err != nil {
		return ValidationResult{
			Valid:  false,
			Config: configFile,
			Errors: []string{err.Error()},
		}
	}

	commands := core.ConfiguredCommands(cfg)
	return ValidationResult{
		Valid:          true,
		Config:         configFile,
		Commands:       commands,
		UpdateInterval: cfg.UpdateInterval().String(),
		Timeout:        cfg.Timeout().String(),
		Warnings:       validateConfigDetails(cfg, commands),
	}
}

func validateConfigDetails(cfg *core.Config, commands []string) []string {
	var warnings []string

	if !cfg.Security.WhitelistEnabled {
		warnings = append(warnings, "Whitelist is disabled - every user can run commands")
	}

	if len(commands) == 0 && !cfg.Commands.ReplyUnknown {
		warnings = append(warnings, "No commands are registered - only the unrouted consumer will see updates")
	}

	if cfg.Commands.SendSelfFile != "" {
		if _, err := os.Stat(cfg.Commands.SendSelfFile); err != nil {
			warnings = append(warnings, fmt.Sprintf("send_self_file %s is not readable: %v", cfg.Commands.SendSelfFile, err))
		}
	}

	if cfg.Bot.Token != "" && cfg.Bot.TokenKeyringAccount != "" {
		warnings = append(warnings, "Both bot.token and bot.token_keyring_account are set - the keychain is ignored")
	}

	return warnings
}

func outputValidationResult(w io.Writer, result ValidationResult, jsonFormat bool) {
	if jsonFormat {
		output, err := json.Marshal(result)
		if err != nil {
			fmt.Fprintf(w, "{\"error\": \"failed to marshal json: %v\"}\n", err)
			return
		}
		fmt.Fprintln(w, string(output))
		return
	}

	if result.Valid {
		fmt.Fprintln(w, "✓ Configuration is valid")
		fmt.Fprintf(w, "  - Config: %s\n", result.Config)
		fmt.Fprintf(w, "  - Commands: %s\n", strings.Join(result.Commands, ", "))
		fmt.Fprintf(w, "  - Update interval: %s\n", result.UpdateInterval)
		fmt.Fprintf(w, "  - Timeout: %s\n", result.Timeout)
		if len(result.Warnings) > 0 {
			fmt.Fprintln(w, "\n⚠️  Warnings:")
			for _, warning := range result.Warnings {
				fmt.Fprintf(w, "  - %s\n", warning)
			}
		}
		return
	}

	fmt.Fprintln(w, "❌ Configuration validation failed:")
	for _, errMsg := range result.Errors {
		fmt.Fprintf(w, "  - %s\n", errMsg)
	}
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "config", "c", "", "Configuration file path")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
}

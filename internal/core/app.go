package core

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/keepmind9/botpoll/internal/api"
	"github.com/keepmind9/botpoll/internal/bot"
	"github.com/keepmind9/botpoll/internal/handlers"
	"github.com/keepmind9/botpoll/internal/keychain"
	"github.com/keepmind9/botpoll/internal/logger"
	"github.com/sirupsen/logrus"
)

// ResolveToken returns the API key, reading it from the system keychain
// when bot.token is empty.
func ResolveToken(config *Config) (string, error) {
	if config.Bot.Token != "" {
		return config.Bot.Token, nil
	}
	if config.Bot.TokenKeyringAccount == "" {
		return "", fmt.Errorf("no bot token configured")
	}

	token, err := keychain.Get(config.Bot.TokenKeyringAccount)
	if err != nil {
		return "", fmt.Errorf("failed to read bot token from keychain account %q: %w", config.Bot.TokenKeyringAccount, err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("keychain account %q holds an empty bot token", config.Bot.TokenKeyringAccount)
	}
	logger.WithField("account", config.Bot.TokenKeyringAccount).Info("bot-token-loaded-from-keychain")
	return token, nil
}

// NewDispatcher assembles a dispatcher serving the configured handlers.
// httpClient may be nil.
func NewDispatcher(config *Config, httpClient *http.Client) (*bot.Dispatcher, error) {
	token, err := ResolveToken(config)
	if err != nil {
		return nil, err
	}

	transport := api.NewHTTPTransport(httpClient, config.Bot.APIURL, token)
	client := api.NewClient(transport, config.Timeout())
	table := handlers.NewTable(config.HandlerOptions())

	logger.WithFields(logrus.Fields{
		"api_url":         config.Bot.APIURL,
		"update_interval": config.UpdateInterval(),
		"timeout":         config.Timeout(),
		"commands":        table.Commands(),
		"whitelist":       config.Security.WhitelistEnabled,
	}).Info("dispatcher-assembled")

	return bot.NewDispatcher(config.DispatcherConfig(token), client, table), nil
}

// ConfiguredCommands lists the commands config registers, in sorted order.
func ConfiguredCommands(config *Config) []string {
	return handlers.NewTable(config.HandlerOptions()).Commands()
}

package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig_ValidConfig_ReturnsConfigStruct(t *testing.T) {
	configContent := `
bot:
  token: "123456:ABCDEF"
  name: "@EchoBot"
  api_url: "http://localhost:8081"
  update_interval: "200ms"
  timeout: "20s"
  initial_offset: 42
commands:
  enabled: ["reply", "/location"]
  send_self_file: "/etc/hosts"
  reply_unknown: true
  answer_inline: true
security:
  whitelist_enabled: true
  allowed_users: [7, 8]
logging:
  level: "debug"
  file: "/tmp/botpoll.log"
  enable_stdout: false
`
	config, err := LoadConfig(writeConfig(t, configContent))

	require.NoError(t, err)
	assert.Equal(t, "123456:ABCDEF", config.Bot.Token)
	assert.Equal(t, "EchoBot", config.Bot.Name)
	assert.Equal(t, 200*time.Millisecond, config.UpdateInterval())
	assert.Equal(t, 20*time.Second, config.Timeout())
	assert.Equal(t, uint64(42), config.Bot.InitialOffset)
	assert.Equal(t, []string{"/reply", "/location"}, config.Commands.Enabled)
	assert.True(t, config.Commands.ReplyUnknown)
	assert.Equal(t, []int64{7, 8}, config.Security.AllowedUsers)
	require.NotNil(t, config.Logging.EnableStdout)
	assert.False(t, *config.Logging.EnableStdout)
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "bot:\n  token: \"123456:ABCDEF\"\n"))

	require.NoError(t, err)
	assert.Equal(t, time.Second, config.UpdateInterval())
	assert.Equal(t, 30*time.Second, config.Timeout())
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, 100, config.Logging.MaxSize)
	assert.Equal(t, 5, config.Logging.MaxBackups)
	assert.Equal(t, 30, config.Logging.MaxAge)
	require.NotNil(t, config.Logging.EnableStdout)
	assert.True(t, *config.Logging.EnableStdout)
}

func TestLoadConfig_EnvExpansion_ExpandsVariables(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "987:XYZ")

	config, err := LoadConfig(writeConfig(t, "bot:\n  token: \"${TEST_BOT_TOKEN}\"\n"))

	require.NoError(t, err)
	assert.Equal(t, "987:XYZ", config.Bot.Token)
}

func TestLoadConfig_InvalidFile_ReturnsError(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadConfig_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "bot: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidateConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing token",
			config:  Config{},
			wantErr: "bot.token or bot.token_keyring_account must be set",
		},
		{
			name:    "invalid interval",
			config:  Config{Bot: BotConfig{Token: "t", UpdateInterval: "soon"}},
			wantErr: "invalid bot.update_interval",
		},
		{
			name:    "interval too small",
			config:  Config{Bot: BotConfig{Token: "t", UpdateInterval: "10ms"}},
			wantErr: "bot.update_interval must be at least",
		},
		{
			name:    "invalid timeout",
			config:  Config{Bot: BotConfig{Token: "t", Timeout: "forever"}},
			wantErr: "invalid bot.timeout",
		},
		{
			name:    "negative timeout",
			config:  Config{Bot: BotConfig{Token: "t", Timeout: "-5s"}},
			wantErr: "bot.timeout cannot be negative",
		},
		{
			name:    "sub-second timeout",
			config:  Config{Bot: BotConfig{Token: "t", Timeout: "500ms"}},
			wantErr: "bot.timeout must be a whole number of seconds",
		},
		{
			name:    "fractional timeout",
			config:  Config{Bot: BotConfig{Token: "t", Timeout: "1500ms"}},
			wantErr: "bot.timeout must be a whole number of seconds",
		},
		{
			name:    "timeout too large",
			config:  Config{Bot: BotConfig{Token: "t", Timeout: "1h"}},
			wantErr: "bot.timeout is too large",
		},
		{
			name:    "empty command",
			config:  Config{Bot: BotConfig{Token: "t"}, Commands: CommandsConfig{Enabled: []string{"/"}}},
			wantErr: "commands.enabled[0] is empty",
		},
		{
			name:    "whitelist without users",
			config:  Config{Bot: BotConfig{Token: "t"}, Security: SecurityConfig{WhitelistEnabled: true}},
			wantErr: "security.allowed_users cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.config)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateConfig_TimeoutValues(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{"0s", 0},
		{"0", 0},
		{"1s", time.Second},
		{"2m", 2 * time.Minute},
		{"10m", 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			config := Config{Bot: BotConfig{Token: "t", Timeout: tt.timeout}}
			require.NoError(t, validateConfig(&config))
			assert.Equal(t, tt.want, config.Timeout())
			assert.Equal(t, tt.want, config.DispatcherConfig("t").Timeout)
		})
	}
}

func TestValidateConfig_KeyringAccountIsEnough(t *testing.T) {
	config := Config{Bot: BotConfig{TokenKeyringAccount: "main"}}
	assert.NoError(t, validateConfig(&config))
}

func TestExpandEnv_UndefinedVariable_ReturnsError(t *testing.T) {
	_, err := expandEnv("token: ${BOTPOLL_UNDEFINED_VAR}")
	assert.ErrorContains(t, err, "BOTPOLL_UNDEFINED_VAR")
}

func TestExpandEnv_MultipleVariables_ExpandsAll(t *testing.T) {
	t.Setenv("BOTPOLL_A", "one")
	t.Setenv("BOTPOLL_B", "two")

	result, err := expandEnv("${BOTPOLL_A}-${BOTPOLL_B}")
	require.NoError(t, err)
	assert.Equal(t, "one-two", result)
}

func TestConfig_HandlerOptions(t *testing.T) {
	config := Config{
		Commands: CommandsConfig{Enabled: []string{"/reply"}, SendSelfFile: "/tmp/f", AnswerInline: true},
		Security: SecurityConfig{AllowedUsers: []int64{1}},
	}

	opts := config.HandlerOptions()
	assert.Equal(t, []string{"/reply"}, opts.Enabled)
	assert.Equal(t, "/tmp/f", opts.SelfFile)
	assert.True(t, opts.AnswerInline)
	assert.Empty(t, opts.AllowedUsers, "users only restrict when the whitelist is enabled")

	config.Security.WhitelistEnabled = true
	assert.Equal(t, []int64{1}, config.HandlerOptions().AllowedUsers)
}

func TestConfig_DispatcherAndLoggerConfig(t *testing.T) {
	config := Config{Bot: BotConfig{Token: "t", Name: "N", InitialOffset: 9}}
	require.NoError(t, validateConfig(&config))

	dc := config.DispatcherConfig("resolved")
	assert.Equal(t, "resolved", dc.Token)
	assert.Equal(t, "N", dc.Name)
	assert.Equal(t, uint64(9), dc.InitialOffset)
	assert.Equal(t, time.Second, dc.UpdateInterval)
	assert.Equal(t, 30*time.Second, dc.Timeout)

	lc := config.LoggerConfig()
	assert.Equal(t, "info", lc.Level)
	assert.True(t, lc.EnableStdout)
}

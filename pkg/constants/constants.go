package constants

import "time"

// Remote API
const (
	// DefaultAPIURL is the base URL of the Telegram Bot API
	DefaultAPIURL = "https://api.telegram.org"
	// CommandMarker prefixes every command token
	CommandMarker = "/"
	// MentionSeparator separates a command from the bot name in group chats
	MentionSeparator = "@"
)

// Polling and call timing
const (
	// DefaultUpdateInterval is the period between two getUpdates calls
	DefaultUpdateInterval = 1000 * time.Millisecond
	// MinUpdateInterval is the smallest accepted update interval
	MinUpdateInterval = 50 * time.Millisecond
	// DefaultCallTimeout is how long the remote side may withhold a long-poll response
	DefaultCallTimeout = 30 * time.Second
	// MaxCallTimeout is the largest accepted call timeout
	MaxCallTimeout = 10 * time.Minute
	// CallTimeoutGrace is added on top of the call timeout for the local deadline
	CallTimeoutGrace = 5 * time.Second
)

// Message length limits
const (
	// MaxTelegramMessageLength is Telegram's message character limit
	MaxTelegramMessageLength = 4096
)

// Token masking
const (
	// MinTokenLengthForMasking is the minimum token length to apply masking
	MinTokenLengthForMasking = 10
	// TokenMaskPrefixLength is the length of prefix to show before masking
	TokenMaskPrefixLength = 7
	// TokenMaskSuffixLength is the length of suffix to show after masking
	TokenMaskSuffixLength = 4
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxBackups is the default number of rotated files to keep
	DefaultLogMaxBackups = 5
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)

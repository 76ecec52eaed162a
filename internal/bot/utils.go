package bot

import (
	"strings"

	"github.com/keepmind9/botpoll/pkg/constants"
)

// maskSecret masks sensitive information for logging
func maskSecret(s string) string {
	if len(s) <= constants.MinTokenLengthForMasking {
		return "***"
	}
	return s[:constants.TokenMaskPrefixLength] + "***" + s[len(s)-constants.TokenMaskSuffixLength:]
}

// NormalizeCommand trims the command and makes sure it starts with the
// command marker.
func NormalizeCommand(command string) string {
	command = strings.TrimSpace(command)
	if strings.HasPrefix(command, constants.CommandMarker) {
		return command
	}
	return constants.CommandMarker + command
}

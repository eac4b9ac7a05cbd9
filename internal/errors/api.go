// Package errors provides error types for nexwatch.
// This file contains API, network and timeout-related error constructors.
package errors

import (
	"fmt"
	"time"
)

// NetworkUnavailable creates an error for network connectivity issues.
func NetworkUnavailable(host string, cause error) *WatchError {
	err := &WatchError{
		Kind:    ErrNetwork,
		Message: "network unavailable",
		Cause:   cause,
		Suggestion: `Check your network connection:

  1. Verify internet connectivity
  2. Check if VPN or firewall is blocking access
  3. Try: curl -I https://api.nexusmods.com

If you're behind a proxy:
  export HTTP_PROXY=http://proxy:port
  export HTTPS_PROXY=http://proxy:port`,
	}
	if host != "" {
		err.Details = map[string]string{"host": host}
	}
	return err
}

// RateLimited creates an error for API rate limiting.
func RateLimited(retryAfter time.Duration) *WatchError {
	suggestion := "Wait before retrying."
	if retryAfter > 0 {
		suggestion = fmt.Sprintf("Wait %v before retrying.", retryAfter.Round(time.Second))
	}
	return &WatchError{
		Kind:    ErrRateLimit,
		Message: "rate limit exceeded",
		Suggestion: suggestion + `

The Nexus Mods API enforces hourly and daily request limits.
Lower the check frequency in .nexwatch/config.yaml to stay within them.`,
	}
}

// APIStatus creates an error for an unexpected API response status.
func APIStatus(endpoint string, status int) *WatchError {
	err := &WatchError{
		Kind:    ErrAPI,
		Message: fmt.Sprintf("api returned status %d", status),
		Details: map[string]string{"endpoint": endpoint},
	}
	switch status {
	case 401, 403:
		err.Suggestion = `The API rejected your key.

Verify the key at https://www.nexusmods.com/users/myaccount?tab=api
and set it via NEXWATCH_NEXUS_API_KEY or .nexwatch/config.yaml.`
	case 404:
		err.Kind = ErrNotFound
		err.Suggestion = "Check the game domain name (e.g. 'starfield') and mod ID."
	}
	return err
}

// OperationTimeout creates a generic timeout error.
func OperationTimeout(operation string, elapsed time.Duration) *WatchError {
	return &WatchError{
		Kind:    ErrTimeout,
		Message: fmt.Sprintf("%s timed out after %v", operation, elapsed.Round(time.Second)),
		Details: map[string]string{
			"operation": operation,
			"elapsed":   elapsed.Round(time.Second).String(),
		},
		Suggestion: "The operation took too long. Check connectivity or try again later.",
	}
}

// NotifyFailed creates an error for Telegram delivery failures.
func NotifyFailed(chatID string, cause error) *WatchError {
	return &WatchError{
		Kind:    ErrNotify,
		Message: "failed to send telegram message",
		Cause:   cause,
		Details: map[string]string{"chat_id": chatID},
		Suggestion: `Verify the bot token and chat ID:

  1. The bot must be a member of the chat
  2. For group topics, the topic ID must exist
  3. Test with: curl https://api.telegram.org/bot<token>/getMe`,
	}
}

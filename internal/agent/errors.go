package agent

import (
	"fmt"
	"strings"
)

// TranslateError converts provider/system errors into user-facing guidance.
// Known failure classes get tailored messages; everything else gets a
// generic apology. Nothing is retried automatically.
func TranslateError(err error) string {
	if err == nil {
		return ""
	}

	errMsg := err.Error()

	// Policy rejections from the upstream service
	if strings.Contains(errMsg, "off_topic") {
		return "💡 I can only help with questions related to software development."
	}
	if strings.Contains(errMsg, "consent") {
		return "⚠️ You need to authorize the language model service before continuing."
	}

	if strings.Contains(errMsg, "401") || strings.Contains(errMsg, "Unauthorized") || strings.Contains(errMsg, "invalid_api_key") {
		return "⚠️ Authentication error: check your API key in the settings."
	}

	if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "Rate limit") || strings.Contains(errMsg, "Too Many Requests") {
		return "⏳ Rate limit exceeded: wait a moment or switch provider/model."
	}

	if strings.Contains(errMsg, "max_tokens") || strings.Contains(errMsg, "context_length") || strings.Contains(errMsg, "too many tokens") {
		return "🛑 Context full: too much data for this model. Clear the active role or shorten the message."
	}

	if strings.Contains(errMsg, "deadline exceeded") || strings.Contains(errMsg, "timeout") {
		return "🌐 Connection timeout: check your internet connection or the provider's status page."
	}
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "no such host") {
		return "🌐 Network error: cannot reach the model server."
	}

	return fmt.Sprintf("❌ An unexpected error occurred. Please try again.\n\n`%s`", errMsg)
}

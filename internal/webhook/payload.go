// Package webhook formats and delivers chat-webhook notifications. Delivery
// is best-effort and at-most-once: a failed request is reported to the
// caller and never retried.
package webhook

import "fmt"

// Format selects the payload shape for the target chat service.
type Format string

const (
	// FormatGoogleChat targets Google Chat incoming webhooks.
	FormatGoogleChat Format = "googlechat"
	// FormatSlack targets Slack incoming webhooks.
	FormatSlack Format = "slack"
)

// DefaultFormat is used when no format is configured.
const DefaultFormat = FormatGoogleChat

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatGoogleChat, FormatSlack:
		return Format(s), nil
	case "":
		return DefaultFormat, nil
	default:
		return "", fmt.Errorf("unknown webhook format %q (supported: %s, %s)", s, FormatGoogleChat, FormatSlack)
	}
}

// textPayload is the simple `{"text": ...}` body. Google Chat and Slack
// incoming webhooks happen to share it.
type textPayload struct {
	Text string `json:"text"`
}

// BuildPayload maps free text into the endpoint's payload shape. The switch
// is the seam for formats that diverge from the plain text body.
func BuildPayload(message string, format Format) any {
	switch format {
	case FormatSlack:
		return textPayload{Text: message}
	default: // FormatGoogleChat
		return textPayload{Text: message}
	}
}

package conversation

import "strings"

type Intent int

const (
	Continue Intent = iota
	Payment
	Stop
)

func (i Intent) String() string {
	switch i {
	case Payment:
		return "payment"
	case Stop:
		return "stop"
	default:
		return "continue"
	}
}

// Classify is a plain case-insensitive substring match, so "nonstop" counts
// as a stop and "paypal" as a payment. Payment wins when both match.
func Classify(message string) Intent {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "pay"):
		return Payment
	case strings.Contains(lower, "stop"):
		return Stop
	default:
		return Continue
	}
}

var stopPhrases = []string{"stopping chat", "stop chat", "chat stopping", "chat stop"}

// EndsConversation reports whether the agent's reply closes the order.
func EndsConversation(reply string) bool {
	lower := strings.ToLower(reply)
	for _, phrase := range stopPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	return false
}

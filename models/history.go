package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	SpeakerCustomer = "Customer"
	SpeakerAgent    = "Agent"
	SpeakerSummary  = "Conversation Summary"
)

// Turn is one utterance in a conversation.
type Turn struct {
	Speaker string
	Text    string
}

// History is the ordered transcript of a conversation. It is owned by the
// client and resent on every call; appending never mutates the receiver.
//
// On the wire a history is a JSON array of objects keyed by speaker, where a
// customer turn and the agent reply that follows it share one object:
//
//	[{"Customer": "I want a pizza", "Agent": "What size?"}]
type History []Turn

func (h History) Append(turns ...Turn) History {
	out := make(History, 0, len(h)+len(turns))
	out = append(out, h...)

	return append(out, turns...)
}

// String renders the history in its wire form, as it is embedded in prompts.
func (h History) String() string {
	data, err := h.MarshalJSON()
	if err != nil {
		return ""
	}

	return string(data)
}

// Entries is the length of the history in its wire form: a customer turn and
// the agent reply that follows it count once.
func (h History) Entries() int {
	return len(h.entries())
}

func (h History) entries() [][]Turn {
	var out [][]Turn
	for i := 0; i < len(h); i++ {
		if h[i].Speaker == SpeakerCustomer && i+1 < len(h) && h[i+1].Speaker == SpeakerAgent {
			out = append(out, h[i:i+2])
			i++
			continue
		}
		out = append(out, h[i:i+1])
	}

	return out
}

func (h History) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for n, entry := range h.entries() {
		if n > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for i, t := range entry {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeTurn(&buf, t); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

func writeTurn(buf *bytes.Buffer, t Turn) error {
	key, err := json.Marshal(t.Speaker)
	if err != nil {
		return err
	}
	value, err := json.Marshal(t.Text)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')
	buf.Write(value)

	return nil
}

// UnmarshalJSON decodes the wire form keeping the key order of every object,
// since a Go map would lose which speaker came first.
func (h *History) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if tok == nil {
		*h = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return errors.New("history must be a JSON array")
	}

	var turns History
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read history entry: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return errors.New("history entries must be JSON objects")
		}

		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("failed to read history speaker: %w", err)
			}
			key, _ := keyTok.(string)

			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("failed to read history text: %w", err)
			}

			turns = append(turns, Turn{Speaker: normalizeSpeaker(key), Text: rawText(raw)})
		}

		if _, err := dec.Token(); err != nil {
			return fmt.Errorf("failed to close history entry: %w", err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}

	*h = turns

	return nil
}

func normalizeSpeaker(key string) string {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "customer":
		return SpeakerCustomer
	case "agent":
		return SpeakerAgent
	case strings.ToLower(SpeakerSummary):
		return SpeakerSummary
	}

	return key
}

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}

	return string(raw)
}

// ParseHistory accepts the history field as clients send it: empty, a JSON
// array, or a JSON string holding an array.
func ParseHistory(raw string) (History, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.HasPrefix(raw, `"`) {
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return nil, fmt.Errorf("failed to decode history string: %w", err)
		}
		raw = strings.TrimSpace(inner)
		if raw == "" {
			return nil, nil
		}
	}

	var h History
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return nil, err
	}

	return h, nil
}

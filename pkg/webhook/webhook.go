// Package webhook defines the contract between DailyBot's delivery service
// and agent webhook receivers.
//
// An agent that registers a webhook URL gets each queued message POSTed to
// that URL as a JSON Delivery. If a secret was supplied at registration
// time, every delivery echoes it in the X-Webhook-Secret header; receivers
// should check it with VerifySecret before trusting the payload.
//
// Example receiver:
//
//	http.HandleFunc("/hook", func(w http.ResponseWriter, r *http.Request) {
//		if !webhook.VerifySecret(secret, r.Header.Get(webhook.SecretHeader)) {
//			w.WriteHeader(http.StatusUnauthorized)
//			return
//		}
//		d, err := webhook.Decode(r.Body)
//		if err != nil {
//			w.WriteHeader(http.StatusBadRequest)
//			return
//		}
//		handle(d.Message)
//	})
package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// SecretHeader carries the shared secret on every delivery.
const SecretHeader = "X-Webhook-Secret"

// EventMessageCreated is sent when a message is queued for the agent.
const EventMessageCreated = "message.created"

// Delivery is the JSON body POSTed to a registered webhook URL.
type Delivery struct {
	Event     string  `json:"event"`
	AgentName string  `json:"agent_name"`
	Message   Message `json:"message"`
}

// Message is the agent message object as it appears in deliveries. It
// mirrors the shape returned by the message list API.
type Message struct {
	ID          string         `json:"id"`
	AgentName   string         `json:"agent_name,omitempty"`
	Content     string         `json:"content"`
	MessageType string         `json:"message_type,omitempty"`
	SenderType  string         `json:"sender_type,omitempty"`
	SenderName  string         `json:"sender_name,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ExpiresAt   string         `json:"expires_at,omitempty"`
}

// Decode reads a delivery body.
func Decode(r io.Reader) (*Delivery, error) {
	var d Delivery
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding webhook delivery: %w", err)
	}
	if strings.TrimSpace(d.Message.Content) == "" && d.Message.ID == "" {
		return nil, fmt.Errorf("webhook delivery has no message")
	}
	return &d, nil
}

// VerifySecret reports whether the header value matches the registered
// secret, comparing in constant time. An empty registered secret means no
// verification was requested and any header passes.
func VerifySecret(registered, header string) bool {
	if registered == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(registered), []byte(header)) == 1
}

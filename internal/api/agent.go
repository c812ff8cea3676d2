package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Health status values reported and returned by the API. StatusUnknown is
// what a query yields for an agent that has never reported.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusUnknown   = "unknown"
)

// ReportRequest is an agent activity report.
type ReportRequest struct {
	AgentName  string         `json:"agent_name"`
	Content    string         `json:"content"`
	Structured map[string]any `json:"structured,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// ReportResult identifies a stored report.
type ReportResult struct {
	ID   int64  `json:"id"`
	UUID string `json:"uuid"`
}

// HealthEntry is one historical health report.
type HealthEntry struct {
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// HealthResult is the current health of an agent. PendingMessages rides
// along on health reports so an agent learns about queued messages without
// a second call.
type HealthResult struct {
	AgentName       string        `json:"agent_name"`
	Status          string        `json:"status"`
	LastCheck       string        `json:"last_check"`
	History         []HealthEntry `json:"history"`
	PendingMessages []Message     `json:"pending_messages"`
}

// WebhookResult confirms a webhook registration.
type WebhookResult struct {
	AgentName  string `json:"agent_name"`
	WebhookURL string `json:"webhook_url"`
}

// MessageRequest is a point-to-point message to another agent. To names the
// recipient and SenderName the acting agent. MessageType is "text",
// "command", or "system"; empty lets the server pick. ExpiresAt is an
// optional ISO 8601 timestamp.
type MessageRequest struct {
	To          string
	Content     string
	MessageType string
	Metadata    map[string]any
	ExpiresAt   string
	SenderName  string
}

// Message is a queued agent message as returned by the API.
type Message struct {
	ID          string         `json:"id"`
	AgentName   string         `json:"agent_name,omitempty"` // recipient
	Content     string         `json:"content"`
	MessageType string         `json:"message_type,omitempty"`
	SenderType  string         `json:"sender_type,omitempty"`
	SenderName  string         `json:"sender_name,omitempty"`
	Delivered   bool           `json:"delivered,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	ExpiresAt   string         `json:"expires_at,omitempty"`
}

func requireAgentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewError(KindMissingAgentName,
			"agent name required: pass --name or set a default with 'dailybot config agent=<name>'")
	}
	return nil
}

// SubmitReport posts an agent activity report.
func (c *Client) SubmitReport(req ReportRequest) (*ReportResult, error) {
	if err := requireAgentName(req.AgentName); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, NewError(KindInvalidPayload, "report content is empty")
	}
	var result ReportResult
	if err := c.do(http.MethodPost, "/v1/agent-reports/", nil, req, &result, defaultTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitHealth reports the agent as healthy or unhealthy.
func (c *Client) SubmitHealth(agentName string, ok bool, message string) (*HealthResult, error) {
	if err := requireAgentName(agentName); err != nil {
		return nil, err
	}
	status := StatusHealthy
	if !ok {
		status = StatusUnhealthy
	}
	payload := map[string]string{"agent_name": agentName, "status": status}
	if strings.TrimSpace(message) != "" {
		payload["message"] = message
	}
	var result HealthResult
	if err := c.do(http.MethodPost, "/v1/agent-health/", nil, payload, &result, defaultTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health queries the current health of an agent. An agent that has never
// reported comes back with StatusUnknown rather than an error; only a
// failed fetch is an error.
func (c *Client) Health(agentName string) (*HealthResult, error) {
	if err := requireAgentName(agentName); err != nil {
		return nil, err
	}
	query := url.Values{"agent_name": {agentName}}
	var result HealthResult
	if err := c.do(http.MethodGet, "/v1/agent-health/", query, nil, &result, defaultTimeout); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindNotFound {
			return &HealthResult{AgentName: agentName, Status: StatusUnknown}, nil
		}
		return nil, err
	}
	if strings.TrimSpace(result.Status) == "" {
		result.Status = StatusUnknown
	}
	return &result, nil
}

// RegisterWebhook points the agent's webhook at rawURL, replacing any
// previous registration. The URL must be absolute; only its syntax is
// checked, the endpoint is not probed.
func (c *Client) RegisterWebhook(agentName, rawURL, secret string) (*WebhookResult, error) {
	if err := requireAgentName(agentName); err != nil {
		return nil, err
	}
	if err := validateWebhookURL(rawURL); err != nil {
		return nil, err
	}
	payload := map[string]string{"agent_name": agentName, "webhook_url": strings.TrimSpace(rawURL)}
	if strings.TrimSpace(secret) != "" {
		payload["webhook_secret"] = secret
	}
	var result WebhookResult
	if err := c.do(http.MethodPost, "/v1/agent-webhooks/", nil, payload, &result, defaultTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// UnregisterWebhook removes the agent's webhook. Unregistering when none is
// registered succeeds.
func (c *Client) UnregisterWebhook(agentName string) (string, error) {
	if err := requireAgentName(agentName); err != nil {
		return "", err
	}
	query := url.Values{"agent_name": {agentName}}
	var result struct {
		Detail string `json:"detail"`
	}
	if err := c.do(http.MethodDelete, "/v1/agent-webhooks/", query, nil, &result, defaultTimeout); err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindNotFound {
			return "No webhook was registered.", nil
		}
		return "", err
	}
	if strings.TrimSpace(result.Detail) == "" {
		return "Webhook unregistered.", nil
	}
	return result.Detail, nil
}

// SendMessage queues a message for another agent.
func (c *Client) SendMessage(req MessageRequest) (*Message, error) {
	if err := requireAgentName(req.SenderName); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.To) == "" {
		return nil, NewError(KindInvalidPayload, "target agent (--to) is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, NewError(KindInvalidPayload, "message content is empty")
	}

	payload := map[string]any{
		"agent_name":  req.To,
		"content":     req.Content,
		"sender_type": "agent",
		"sender_name": req.SenderName,
	}
	if req.MessageType != "" {
		payload["message_type"] = req.MessageType
	}
	if req.Metadata != nil {
		payload["metadata"] = req.Metadata
	}
	if req.ExpiresAt != "" {
		payload["expires_at"] = req.ExpiresAt
	}

	var result Message
	if err := c.do(http.MethodPost, "/v1/agent-messages/", nil, payload, &result, defaultTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// Messages lists messages addressed to an agent in the order the server
// returns them. pendingOnly narrows to undelivered messages; the filter is
// applied server-side.
func (c *Client) Messages(agentName string, pendingOnly bool) ([]Message, error) {
	if err := requireAgentName(agentName); err != nil {
		return nil, err
	}
	query := url.Values{"agent_name": {agentName}}
	if pendingOnly {
		query.Set("delivered", "false")
	}
	var messages []Message
	if err := c.do(http.MethodGet, "/v1/agent-messages/", query, nil, &messages, defaultTimeout); err != nil {
		return nil, err
	}
	return messages, nil
}

func validateWebhookURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NewError(KindInvalidPayload, "webhook URL is required")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return NewError(KindInvalidPayload, fmt.Sprintf("invalid webhook URL: %v", err))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewError(KindInvalidPayload, "webhook URL must be absolute (http:// or https://)")
	}
	return nil
}

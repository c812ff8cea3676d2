package api

import "net/http"

// UpdateRequest is a check-in update. Message is free text; Done, Doing,
// and Blocked are the structured alternative. Empty fields are omitted.
type UpdateRequest struct {
	Message string `json:"message,omitempty"`
	Done    string `json:"done,omitempty"`
	Doing   string `json:"doing,omitempty"`
	Blocked string `json:"blocked,omitempty"`
}

// AttachedFollowup names a check-in an update was delivered to.
type AttachedFollowup struct {
	FollowupName string `json:"followup_name"`
	Action       string `json:"action"` // "created" or "updated"
}

// UpdateResult reports how many check-ins matched an update.
type UpdateResult struct {
	FollowupsCount    int                `json:"followups_count"`
	AttachedFollowups []AttachedFollowup `json:"attached_followups"`
}

// TemplateQuestion is one question in a check-in template.
type TemplateQuestion struct {
	Question  string `json:"question"`
	IsBlocker bool   `json:"is_blocker"`
}

// PendingCheckin is a check-in awaiting a response today.
type PendingCheckin struct {
	FollowupName      string             `json:"followup_name"`
	TemplateQuestions []TemplateQuestion `json:"template_questions"`
}

// StatusResult is the response to a pending check-ins query.
type StatusResult struct {
	Count           int              `json:"count"`
	PendingCheckins []PendingCheckin `json:"pending_checkins"`
}

// SubmitUpdate delivers a check-in update. This call gets the long timeout.
func (c *Client) SubmitUpdate(req UpdateRequest) (*UpdateResult, error) {
	var result UpdateResult
	if err := c.do(http.MethodPost, "/v1/cli/updates/", nil, req, &result, updateTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// Status lists the check-ins still pending for today.
func (c *Client) Status() (*StatusResult, error) {
	var result StatusResult
	if err := c.do(http.MethodGet, "/v1/cli/status/", nil, nil, &result, defaultTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

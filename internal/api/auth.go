package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// OrgRef is an organization reference. The API sends it as either a plain
// name string or an object with name and uuid, depending on the endpoint.
type OrgRef struct {
	Name string
	UUID string
}

func (o *OrgRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Name = s
		o.UUID = ""
		return nil
	}
	var obj struct {
		Name string `json:"name"`
		UUID string `json:"uuid"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.Name = obj.Name
	o.UUID = obj.UUID
	return nil
}

// UserRef is a user reference, sent as either an email string or an object
// with an email field.
type UserRef struct {
	Email string
}

func (u *UserRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		u.Email = s
		return nil
	}
	var obj struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	u.Email = obj.Email
	return nil
}

// Organization is one entry in a multi-org selection list.
type Organization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	UUID string `json:"uuid,omitempty"`
}

// VerifyResult is the outcome of an OTP verification. Either Token is set,
// or OrganizationSelectionRequired is true and Organizations lists the
// choices for a second verification round.
type VerifyResult struct {
	Token                         string         `json:"token"`
	OrganizationSelectionRequired bool           `json:"organization_selection_required"`
	Organizations                 []Organization `json:"organizations"`
	Organization                  OrgRef         `json:"organization"`
	OrganizationUUID              string         `json:"organization_uuid"`
}

// OrgUUID returns the organization UUID from whichever field carries it.
func (v *VerifyResult) OrgUUID() string {
	if v.Organization.UUID != "" {
		return v.Organization.UUID
	}
	return v.OrganizationUUID
}

// AuthStatusResult describes the session the API sees.
type AuthStatusResult struct {
	User         UserRef `json:"user"`
	Email        string  `json:"email"`
	Organization OrgRef  `json:"organization"`
}

// UserEmail returns the email from whichever field carries it.
func (s *AuthStatusResult) UserEmail() string {
	if strings.TrimSpace(s.User.Email) != "" {
		return s.User.Email
	}
	return s.Email
}

// RequestCode asks the API to email a one-time login code.
func (c *Client) RequestCode(email string) error {
	payload := map[string]string{"email": email}
	return c.do(http.MethodPost, "/v1/cli/auth/request-code/", nil, payload, nil, defaultTimeout)
}

// VerifyCode exchanges an emailed code for a session token. orgID selects an
// organization on the second round of a multi-org login; pass 0 to omit it.
func (c *Client) VerifyCode(email, code string, orgID int64) (*VerifyResult, error) {
	payload := map[string]any{"email": email, "code": code}
	if orgID != 0 {
		payload["organization_id"] = orgID
	}
	var result VerifyResult
	if err := c.do(http.MethodPost, "/v1/cli/auth/verify-code/", nil, payload, &result, defaultTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// AuthStatus reports who the current session token belongs to.
func (c *Client) AuthStatus() (*AuthStatusResult, error) {
	var result AuthStatusResult
	if err := c.do(http.MethodGet, "/v1/cli/auth/status/", nil, nil, &result, defaultTimeout); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the current session token server-side.
func (c *Client) Logout() error {
	return c.do(http.MethodPost, "/v1/cli/auth/logout/", nil, nil, nil, defaultTimeout)
}

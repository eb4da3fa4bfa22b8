// Copyright Televeda and each contributor.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// CreateMeetingRequest represents the request to create a Webex meeting
type CreateMeetingRequest struct {
	Title                    string `json:"title"`
	Agenda                   string `json:"agenda,omitempty"`
	Start                    string `json:"start"`
	End                      string `json:"end"`
	Timezone                 string `json:"timezone,omitempty"`
	Recurrence               string `json:"recurrence,omitempty"` // RRULE string
	EnabledAutoRecordMeeting bool   `json:"enabledAutoRecordMeeting"`
	EnabledJoinBeforeHost    bool   `json:"enabledJoinBeforeHost"`
	JoinBeforeHostMinutes    int    `json:"joinBeforeHostMinutes,omitempty"`
	HostEmail                string `json:"hostEmail,omitempty"`
	SendEmail                bool   `json:"sendEmail"`
}

// UpdateMeetingRequest represents the request to update a Webex meeting
type UpdateMeetingRequest struct {
	Title      string `json:"title,omitempty"`
	Agenda     string `json:"agenda,omitempty"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	Timezone   string `json:"timezone,omitempty"`
	Recurrence string `json:"recurrence,omitempty"`
	SendEmail  bool   `json:"sendEmail"`
}

// MeetingResponse represents a Webex meeting resource
type MeetingResponse struct {
	ID            string `json:"id"`
	MeetingNumber string `json:"meetingNumber"`
	Title         string `json:"title"`
	Agenda        string `json:"agenda"`
	Password      string `json:"password"`
	MeetingType   string `json:"meetingType"`
	State         string `json:"state"`
	Timezone      string `json:"timezone"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Recurrence    string `json:"recurrence"`
	HostUserID    string `json:"hostUserId"`
	HostEmail     string `json:"hostEmail"`
	HostKey       string `json:"hostKey"`
	WebLink       string `json:"webLink"`
	SIPAddress    string `json:"sipAddress"`
}

// CreateMeeting creates a new meeting in Webex
// This is a pure API call with no business logic
func (c *Client) CreateMeeting(ctx context.Context, request *CreateMeetingRequest) (*MeetingResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/meetings", request)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, parseErrorResponse(body)
	}

	var meetingResp MeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&meetingResp); err != nil {
		return nil, fmt.Errorf("failed to decode meeting response: %w", err)
	}

	return &meetingResp, nil
}

// UpdateMeeting updates an existing meeting in Webex
// This is a pure API call with no business logic
func (c *Client) UpdateMeeting(ctx context.Context, meetingID string, request *UpdateMeetingRequest) error {
	path := fmt.Sprintf("/meetings/%s", meetingID)
	resp, err := c.doRequest(ctx, http.MethodPut, path, request)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(body)
	}

	return nil
}

// DeleteMeeting deletes a meeting from Webex
// This is a pure API call with no business logic
func (c *Client) DeleteMeeting(ctx context.Context, meetingID string) error {
	path := fmt.Sprintf("/meetings/%s", meetingID)
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(body)
	}

	return nil
}

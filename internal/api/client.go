// Package api is the thin HTTP client for the wellness platform.
// The server owns all business logic; this client only serializes
// requests and maps failures to fixed user-facing notices.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"mindhaven/internal/core/model"
)

const csrfHeader = "X-CSRFToken"

// StatusError reports a failed or unauthorized HTTP response.
type StatusError struct {
	Status  int
	Message string
}

func (err *StatusError) Error() string {
	if err.Message != "" {
		return fmt.Sprintf("api: status %d: %s", err.Status, err.Message)
	}
	return fmt.Sprintf("api: status %d", err.Status)
}

// Options configures the client.
type Options struct {
	BaseURL   string
	CSRFToken string
	Timeout   time.Duration
}

// Client talks to the platform API.
type Client struct {
	baseURL    string
	csrfToken  string
	httpClient *http.Client
}

// NewClient creates a platform API client.
func NewClient(options Options) *Client {
	if options.Timeout <= 0 {
		options.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    options.BaseURL,
		csrfToken:  options.CSRFToken,
		httpClient: &http.Client{Timeout: options.Timeout},
	}
}

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Results json.RawMessage `json:"results"`
}

type checkInPayload struct {
	ClientID          string   `json:"client_id"`
	Emotion           string   `json:"emotion"`
	SecondaryEmotions []string `json:"secondary_emotions,omitempty"`
	Intensity         int      `json:"intensity"`
	PhysicalSymptoms  []string `json:"physical_symptoms,omitempty"`
	Notes             string   `json:"notes,omitempty"`
	Timestamp         string   `json:"timestamp"`
	Page              string   `json:"page"`
}

// SubmitCheckIn posts an emotion check-in.
func (client *Client) SubmitCheckIn(ctx context.Context, checkIn model.CheckIn) error {
	secondary := make([]string, 0, len(checkIn.SecondaryEmotions))
	for _, emotion := range checkIn.SecondaryEmotions {
		secondary = append(secondary, string(emotion))
	}
	payload := checkInPayload{
		ClientID:          checkIn.ClientID,
		Emotion:           string(checkIn.Emotion),
		SecondaryEmotions: secondary,
		Intensity:         int(checkIn.Intensity),
		PhysicalSymptoms:  checkIn.PhysicalSymptoms,
		Notes:             checkIn.Note,
		Timestamp:         checkIn.CreatedAt.UTC().Format(time.RFC3339),
		Page:              checkIn.Page,
	}
	_, err := client.do(ctx, http.MethodPost, "/api/therapy/checkins/", payload)
	return err
}

type activityPayload struct {
	Page      string `json:"page"`
	TimeSpent int    `json:"timeSpent"`
	Activity  string `json:"activity"`
}

// TrackActivity posts a per-page engagement record. timeSpent is whole minutes.
func (client *Client) TrackActivity(ctx context.Context, page string, timeSpent int, activity string) error {
	payload := activityPayload{Page: page, TimeSpent: timeSpent, Activity: activity}
	_, err := client.do(ctx, http.MethodPost, "/api/therapy/activity/", payload)
	return err
}

// Strategies fetches coping strategy recommendations matching the filter.
func (client *Client) Strategies(ctx context.Context, filter model.StrategyFilter) ([]model.Strategy, error) {
	query := url.Values{}
	if filter.Type != "" {
		query.Set("strategy_type", string(filter.Type))
	}
	if filter.Emotion != "" {
		query.Set("emotion", string(filter.Emotion))
	}
	if filter.MaxMinutes > 0 {
		query.Set("duration", strconv.Itoa(filter.MaxMinutes))
	}
	path := "/api/therapy/strategies/"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	results, err := client.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var strategies []model.Strategy
	if len(results) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(results, &strategies); err != nil {
		return nil, fmt.Errorf("api: decode strategies: %w", err)
	}
	return strategies, nil
}

// MarkStrategyTried records that the user tried a strategy.
func (client *Client) MarkStrategyTried(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/therapy/strategies/%d/mark_tried/", id)
	_, err := client.do(ctx, http.MethodPost, path, nil)
	return err
}

func (client *Client) do(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: build request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	if client.csrfToken != "" {
		request.Header.Set(csrfHeader, client.csrfToken)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &StatusError{Status: response.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(response.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("api: decode response: %w", err)
	}
	if !env.Success {
		return nil, &StatusError{Status: response.StatusCode, Message: env.Message}
	}
	return env.Results, nil
}

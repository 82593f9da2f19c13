// Package api provides the notification service REST client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cristianoliveira/notitray/internal/domain"
)

// CreateNotificationRequest is the payload for creating a new notification
// through the admin/system creation path.
type CreateNotificationRequest struct {
	SubjectID string         `json:"user_id,omitempty"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Kind      domain.Kind    `json:"notification_type,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Client is the notification API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// listEnvelope is the paginated wrapper some deployments return instead of a
// bare array. The shape is resolved once here, never in business logic.
type listEnvelope struct {
	Count   int                   `json:"count"`
	Results []domain.Notification `json:"results"`
}

// decodeList accepts either a bare notification array or a paginated
// envelope with a "results" array. Anything else yields ErrUnexpectedShape.
func decodeList(data []byte) ([]domain.Notification, error) {
	var bare []domain.Notification
	if err := json.Unmarshal(data, &bare); err == nil {
		return bare, nil
	}

	var envelope listEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, nil
	}

	return nil, ErrUnexpectedShape
}

// ListNotifications fetches the subscriber's full notification list.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	data, err := c.getRaw(ctx, "/notifications/")
	if err != nil {
		return nil, fmt.Errorf("client.ListNotifications: %w", err)
	}
	notifs, err := decodeList(data)
	if err != nil {
		return nil, fmt.Errorf("client.ListNotifications: %w", err)
	}
	return notifs, nil
}

// UnreadCount fetches the server-side unread counter.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := c.get(ctx, "/notifications/unread_count/", &out); err != nil {
		return 0, fmt.Errorf("client.UnreadCount: %w", err)
	}
	return out.UnreadCount, nil
}

// MarkRead marks a single notification as read.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/notifications/"+url.PathEscape(id)+"/mark_read/", nil, nil); err != nil {
		return fmt.Errorf("client.MarkRead: %w", err)
	}
	return nil
}

// MarkAllRead marks every notification as read and returns the number of
// records the server updated.
func (c *Client) MarkAllRead(ctx context.Context) (int, error) {
	var out struct {
		UpdatedCount int `json:"updated_count"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/notifications/mark_all_read/", nil, &out); err != nil {
		return 0, fmt.Errorf("client.MarkAllRead: %w", err)
	}
	return out.UpdatedCount, nil
}

// DeleteNotification deletes a notification by ID.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/notifications/"+url.PathEscape(id)+"/", nil, nil); err != nil {
		return fmt.Errorf("client.DeleteNotification: %w", err)
	}
	return nil
}

// CreateNotification creates a notification (admin/system path).
func (c *Client) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*domain.Notification, error) {
	var created domain.Notification
	if err := c.doRequest(ctx, http.MethodPost, "/notifications/", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateNotification: %w", err)
	}
	return &created, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

// getRaw performs a GET and returns the raw response body, for endpoints
// whose shape must be resolved by the caller.
func (c *Client) getRaw(ctx context.Context, path string) ([]byte, error) {
	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Error != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
			}
			if apiErr.Detail != "" {
				return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Detail}
			}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

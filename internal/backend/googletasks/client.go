// Package googletasks publishes task snapshots to a Google Tasks list.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/service"
)

const (
	// APITimeout is the timeout for a single API call.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = "https://www.googleapis.com/auth/tasks"

	// Remote task statuses.
	remoteNeedsAction = "needsAction"
	remoteCompleted   = "completed"

	listPageSize = 100
)

// Client implements service.Exporter using the Google Tasks API.
type Client struct {
	svc *tasks.Service
	log *logging.Logger
}

var _ service.Exporter = (*Client)(nil)

// New creates a client from the stored OAuth client and token.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config, log *logging.Logger) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read oauth_client.json: %v", service.ErrAuth, err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid oauth_client.json: %v", service.ErrAuth, err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: not logged in (run: taskboard login)", service.ErrAuth)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("%w: invalid token.json: %v", service.ErrAuth, err)
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))
	return NewWithHTTPClient(ctx, httpClient, log)
}

// NewWithHTTPClient creates a client with a custom HTTP client and extra
// API options (tests pass option.WithEndpoint).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, log *logging.Logger, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	if log == nil {
		log = logging.NopLogger()
	}
	return &Client{svc: svc, log: log}, nil
}

// Export implements service.Exporter.
// The named list is created if missing and emptied before the snapshot is
// inserted in canonical order.
func (c *Client) Export(ctx context.Context, listName string, snapshot []service.Task) error {
	listID, err := c.ensureList(ctx, listName)
	if err != nil {
		return err
	}
	if err := c.clearList(ctx, listID); err != nil {
		return err
	}

	var previous string
	for _, t := range snapshot {
		id, err := c.insert(ctx, listID, previous, t)
		if err != nil {
			return err
		}
		previous = id
	}
	c.log.Info("snapshot exported", "list", listName, "tasks", len(snapshot))
	return nil
}

// ensureList finds a list by title (case-insensitive, trimmed), creating it
// if no list matches. Multiple matches are an error.
func (c *Client) ensureList(ctx context.Context, name string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	want := strings.ToLower(strings.TrimSpace(name))
	var matches []string
	err := c.svc.Tasklists.List().MaxResults(listPageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, l := range resp.Items {
			if strings.ToLower(strings.TrimSpace(l.Title)) == want {
				matches = append(matches, l.Id)
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 0:
		created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: strings.TrimSpace(name)}).Context(ctx).Do()
		if err != nil {
			return "", wrapError(err)
		}
		c.log.Debug("created task list", "list", name, "list_id", created.Id)
		return created.Id, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous list name: %s", name)
	}
}

// clearList deletes every task, including completed and hidden ones.
func (c *Client) clearList(ctx context.Context, listID string) error {
	listCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var ids []string
	err := c.svc.Tasks.List(listID).
		MaxResults(listPageSize).
		ShowCompleted(true).
		ShowHidden(true).
		Pages(listCtx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				ids = append(ids, t.Id)
			}
			return nil
		})
	if err != nil {
		return wrapError(err)
	}

	for _, id := range ids {
		callCtx, cancel := context.WithTimeout(ctx, APITimeout)
		err := c.svc.Tasks.Delete(listID, id).Context(callCtx).Do()
		cancel()
		if err != nil {
			return wrapError(err)
		}
	}
	return nil
}

func (c *Client) insert(ctx context.Context, listID, previous string, t service.Task) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	call := c.svc.Tasks.Insert(listID, ToRemote(t)).Context(ctx)
	if previous != "" {
		call = call.Previous(previous)
	}
	created, err := call.Do()
	if err != nil {
		return "", wrapError(err)
	}
	return created.Id, nil
}

// ToRemote maps a task onto the Google Tasks model. Google Tasks only knows
// needsAction and completed, so the original status is kept in the notes.
func ToRemote(t service.Task) *tasks.Task {
	status := remoteNeedsAction
	if t.Status == service.StatusCompleted {
		status = remoteCompleted
	}
	return &tasks.Task{
		Title:  t.Title,
		Status: status,
		Notes:  fmt.Sprintf("status: %s\nid: %s", t.Status, t.ID),
	}
}

// wrapError maps API failures onto the errors commands report.
// 401 and 403 wrap service.ErrAuth so dispatch exits with the auth code.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: token expired or revoked (run: taskboard login)", service.ErrAuth)
	case http.StatusNotFound:
		return fmt.Errorf("remote list not found: %w", err)
	}
	return err
}

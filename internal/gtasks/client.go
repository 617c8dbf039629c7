// Package gtasks wraps the Google Tasks API surface hw needs: finding or
// creating the export task list and inserting tasks into it.
package gtasks

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"
)

// DefaultListName is the task list assignments are exported to unless the
// config overrides it.
const DefaultListName = "Homework Auto-Sorter"

// TaskList is a remote task list reference.
type TaskList struct {
	ID    string
	Title string
}

// Task is the payload submitted for one assignment. Due carries a full
// UTC-suffixed timestamp; the Tasks API keeps only the date part, which is a
// documented limitation of the service, not of this client.
type Task struct {
	Title string
	Notes string
	Due   string
}

// Client is an authenticated Google Tasks API client.
type Client struct {
	svc *tasks.Service
}

// NewClient builds a Tasks client, running the OAuth consent flow if no
// cached token exists. A missing credentials file is a precondition failure
// reported before any API call.
func NewClient(ctx context.Context) (*Client, error) {
	httpClient, err := authClient(ctx, []string{tasks.TasksScope})
	if err != nil {
		return nil, err
	}

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating Google Tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// FindOrCreateList returns the task list with the given title, creating it
// when absent.
func (c *Client) FindOrCreateList(ctx context.Context, title string) (TaskList, error) {
	lists, err := c.svc.Tasklists.List().Context(ctx).Do()
	if err != nil {
		return TaskList{}, fmt.Errorf("listing task lists: %w", err)
	}

	for _, l := range lists.Items {
		if l.Title == title {
			return TaskList{ID: l.Id, Title: l.Title}, nil
		}
	}

	created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return TaskList{}, fmt.Errorf("creating task list %q: %w", title, err)
	}
	return TaskList{ID: created.Id, Title: created.Title}, nil
}

// Insert creates one task in the given list.
func (c *Client) Insert(ctx context.Context, listID string, t Task) error {
	_, err := c.svc.Tasks.Insert(listID, &tasks.Task{
		Title: t.Title,
		Notes: t.Notes,
		Due:   t.Due,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("inserting task %q: %w", t.Title, err)
	}
	return nil
}

package api

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// SyncLogsService reads the document synchronisation history.
type SyncLogsService service

// Sync job outcomes as reported by the server.
const (
	SyncStatusRunning   = "running"
	SyncStatusSucceeded = "succeeded"
	SyncStatusFailed    = "failed"
)

// SyncLog is one entry of the document synchronisation log.
type SyncLog struct {
	ID         string     `json:"id"`
	DocumentID string     `json:"document_id,omitempty"`
	Status     string     `json:"status"`
	Message    string     `json:"message,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// SyncLogList is a page of sync log entries.
type SyncLogList struct {
	Items []SyncLog `json:"items"`
	Page  Page      `json:"pagination"`
}

// SyncLogListOptions filters the sync log listing.
type SyncLogListOptions struct {
	ListOptions
	Status string // empty returns all statuses
}

// List returns a page of sync log entries, newest first.
func (s *SyncLogsService) List(ctx context.Context, opts SyncLogListOptions) (*SyncLogList, error) {
	query := opts.query()
	if opts.Status != "" {
		query["status"] = opts.Status
	}

	var list SyncLogList
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(&list).
		Get("/synclogs")
	if err != nil {
		return nil, errors.Wrap(err, "[SyncLogsService.List]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &list, nil
}

package api

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
)

// DocumentsService manages the uploaded knowledge-base documents.
type DocumentsService service

// Document is a single uploaded knowledge-base document.
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size,omitempty"`
	Status      string    `json:"status,omitempty"` // pending, indexed, failed
	UploadedBy  string    `json:"uploaded_by,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at,omitempty"`
}

// DocumentList is a page of documents.
type DocumentList struct {
	Items []Document `json:"items"`
	Page  Page       `json:"pagination"`
}

// List returns a page of documents.
func (s *DocumentsService) List(ctx context.Context, opts ListOptions) (*DocumentList, error) {
	var list DocumentList
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetQueryParams(opts.query()).
		SetResult(&list).
		Get("/documents")
	if err != nil {
		return nil, errors.Wrap(err, "[DocumentsService.List]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get returns a single document by ID.
func (s *DocumentsService) Get(ctx context.Context, id string) (*Document, error) {
	var document Document
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetResult(&document).
		Get("/documents/" + id)
	if err != nil {
		return nil, errors.Wrap(err, "[DocumentsService.Get]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &document, nil
}

// Upload sends a document as multipart form data and returns the stored
// record. Indexing happens asynchronously server-side; the returned status
// is usually "pending".
func (s *DocumentsService) Upload(ctx context.Context, name string, contents io.Reader) (*Document, error) {
	if name == "" {
		return nil, errors.New("[DocumentsService.Upload] name is required")
	}

	var document Document
	resp, err := s.client.newRequest().
		SetContext(ctx).
		SetFileReader("file", name, contents).
		SetResult(&document).
		Post("/documents")
	if err != nil {
		return nil, errors.Wrap(err, "[DocumentsService.Upload]")
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &document, nil
}

// Delete removes a document and its index entries.
func (s *DocumentsService) Delete(ctx context.Context, id string) error {
	resp, err := s.client.newRequest().
		SetContext(ctx).
		Delete("/documents/" + id)
	if err != nil {
		return errors.Wrap(err, "[DocumentsService.Delete]")
	}
	return checkResponse(resp)
}

package gateway

import (
	"context"
	"fmt"
	"net/http"
)

// RecordStore mutates records through the internal service API.
type RecordStore struct {
	client *Client
}

func NewRecordStore(client *Client) *RecordStore {
	return &RecordStore{client: client}
}

type createRecordResponse struct {
	ID string `json:"id"`
}

func (s *RecordStore) CreateRecord(ctx context.Context, collection string, fields map[string]any) (string, error) {
	var resp createRecordResponse

	path := fmt.Sprintf("/v1/collections/%s/records", collection)

	err := s.client.post(ctx, http.MethodPost, path, map[string]any{"fields": fields}, &resp)
	if err != nil {
		return "", err
	}

	return resp.ID, nil
}

func (s *RecordStore) UpdateRecord(ctx context.Context, collection, recordID string, fields map[string]any) error {
	path := fmt.Sprintf("/v1/collections/%s/records/%s", collection, recordID)

	return s.client.post(ctx, http.MethodPatch, path, map[string]any{"fields": fields}, nil)
}

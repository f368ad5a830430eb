package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/service"
)

// FakeMediaStore satisfies media.Store without any network, recording the
// keys it was asked to delete.
type FakeMediaStore struct {
	mu      sync.Mutex
	Deleted []string
}

func NewFakeMediaStore() *FakeMediaStore {
	return &FakeMediaStore{}
}

func (f *FakeMediaStore) PresignUpload(_ context.Context, kind media.Kind, contentType string, _ time.Duration) (*media.Upload, error) {
	key, err := media.ObjectKey(kind, contentType)
	if err != nil {
		return nil, err
	}
	return &media.Upload{Key: key, URL: "https://uploads.test/" + key}, nil
}

func (f *FakeMediaStore) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		if key != "" {
			f.Deleted = append(f.Deleted, key)
		}
	}
	return nil
}

func (f *FakeMediaStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return "https://media.test/" + key
}

// DeletedKeys returns a copy of the recorded deletions.
func (f *FakeMediaStore) DeletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Deleted...)
}

// NopEvents satisfies service.ChannelEvents for tests that do not care
// about the dashboard feed.
type NopEvents struct{}

func (NopEvents) Broadcast(uuid.UUID, string, interface{}) {}

var _ service.ChannelEvents = NopEvents{}

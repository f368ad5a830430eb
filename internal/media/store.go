// Package media wraps the object-storage collaborator. The backend never
// proxies file bytes: clients upload through presigned PUT URLs and the
// backend only tracks object keys.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindAvatar    Kind = "avatar"
	KindCover     Kind = "cover"
	KindVideo     Kind = "video"
	KindThumbnail Kind = "thumbnail"
)

// Upload is a presigned PUT grant: the client PUTs the file to URL and then
// references Key when creating the owning record.
type Upload struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type Store interface {
	PresignUpload(ctx context.Context, kind Kind, contentType string, expires time.Duration) (*Upload, error)
	Delete(ctx context.Context, keys ...string) error
	PublicURL(key string) string
}

// ObjectKey builds a collision-free key under the kind's prefix.
func ObjectKey(kind Kind, contentType string) (string, error) {
	switch kind {
	case KindAvatar, KindCover, KindVideo, KindThumbnail:
	default:
		return "", fmt.Errorf("unknown media kind %q", kind)
	}

	ext := ""
	if i := strings.LastIndex(contentType, "/"); i >= 0 && i < len(contentType)-1 {
		ext = "." + contentType[i+1:]
	}
	return fmt.Sprintf("%ss/%d-%s%s", kind, time.Now().UTC().Unix(), uuid.New().String(), ext), nil
}

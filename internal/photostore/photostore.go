// Package photostore stores employee photo payloads in object storage and
// hands back durable URLs. It is the only component that ever sees raw
// photo bytes; the rest of the system works with URLs.
package photostore

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"strings"
)

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
	Bucket() string
}

// Store wraps an ObjectStorage backend with the upload API the employee
// service consumes.
type Store struct {
	backend ObjectStorage
	folder  string
}

// NewStore constructs a Store over the provided backend. Objects are keyed
// under the given folder prefix.
func NewStore(backend ObjectStorage, folder string) *Store {
	if strings.TrimSpace(folder) == "" {
		folder = "employee-photos"
	}
	return &Store{backend: backend, folder: folder}
}

// EnsureBucket ensures the configured bucket exists.
func (s *Store) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Upload decodes a photo payload, stores it under a fresh key and returns
// the public URL. Remote failures propagate unchanged and are not retried.
func (s *Store) Upload(ctx context.Context, payload string) (string, error) {
	data, contentType, err := decodePayload(payload)
	if err != nil {
		return "", err
	}

	key := s.folder + "/" + newObjectID() + extensionFor(contentType)
	if err := s.backend.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", err
	}
	return s.backend.PublicURL(key), nil
}

// decodePayload accepts a base64 data URI ("data:image/png;base64,...")
// or bare base64 and returns the raw bytes and content type.
func decodePayload(payload string) ([]byte, string, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, "", errors.New("empty photo payload")
	}

	contentType := "application/octet-stream"
	encoded := payload
	if strings.HasPrefix(payload, "data:") {
		header, rest, found := strings.Cut(payload[len("data:"):], ",")
		if !found {
			return nil, "", errors.New("invalid photo payload")
		}
		if mediaType, _, _ := strings.Cut(header, ";"); mediaType != "" {
			contentType = mediaType
		}
		encoded = rest
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", errors.New("invalid photo payload")
	}
	if len(data) == 0 {
		return nil, "", errors.New("empty photo payload")
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

func newObjectID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(buf[:])
}

// Package photos stores attached movement photos and fetches them for download.
package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrPhotoNotFound = errors.New("photo not found")

// Storage keeps uploaded photos and returns the URL they can be viewed at.
type Storage interface {
	Upload(ctx context.Context, movementID string, r io.Reader, size int64, contentType string) (string, error)
}

// ObjectName is where a movement's photo is stored: movements/<id>/<uuid><ext>.
func ObjectName(movementID, contentType string) string {
	return path.Join("movements", url.PathEscape(movementID), uuid.NewString()+extensionFor(contentType))
}

func extensionFor(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	default:
		return ".jpg"
	}
}

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStorage keeps photos in memory under memory://<object> URLs.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]memoryObject)}
}

func (s *MemoryStorage) Upload(ctx context.Context, movementID string, r io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	name := ObjectName(movementID, contentType)
	s.mu.Lock()
	s.objects[name] = memoryObject{data: data, contentType: contentType}
	s.mu.Unlock()

	return "memory://" + name, nil
}

// Open returns a stored object by its memory:// URL.
func (s *MemoryStorage) Open(rawURL string) (io.ReadCloser, string, error) {
	name := strings.TrimPrefix(rawURL, "memory://")
	s.mu.RLock()
	obj, ok := s.objects[name]
	s.mu.RUnlock()
	if !ok {
		return nil, "", ErrPhotoNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, nil
}

func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

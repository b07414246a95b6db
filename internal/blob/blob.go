// Package blob stores uploaded permit documents and evidence files.
package blob

import (
	"context"
	"path"
	"strings"
	"sync"

	"github.com/samandr77/microservices/compliance/internal/entity"
)

const (
	DriverMemory = "memory"
	DriverS3     = "s3"

	// Scheme marks document references that point into the blob store.
	Scheme = entity.DocumentScheme + "://"
)

func EvidenceKey(evidenceID, fileName string) string {
	return "evidence/" + evidenceID + "/" + path.Base(fileName)
}

func DocumentKey(id, fileName string) string {
	return "documents/" + id + "/" + path.Base(fileName)
}

func Ref(key string) string {
	return Scheme + key
}

// KeyFromRef returns the blob key of a blob:// reference.
func KeyFromRef(ref string) (string, bool) {
	if !strings.HasPrefix(ref, Scheme) {
		return "", false
	}

	return strings.TrimPrefix(ref, Scheme), true
}

type object struct {
	contentType string
	data        []byte
}

type Memory struct {
	mu      sync.RWMutex
	objects map[string]object
}

func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string]object),
	}
}

func (m *Memory) Put(_ context.Context, key, contentType string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = object{contentType: contentType, data: buf}

	return nil
}

func (m *Memory) Get(_ context.Context, key string) (entity.DownloadedFile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[key]
	if !ok {
		return entity.DownloadedFile{}, entity.ErrNotFound
	}

	data := make([]byte, len(obj.data))
	copy(data, obj.data)

	return entity.DownloadedFile{
		Name:        path.Base(key),
		ContentType: obj.contentType,
		Data:        data,
	}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)

	return nil
}

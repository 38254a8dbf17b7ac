package blob

import (
	"context"
	"sync"
)

// Memory keeps uploaded blobs in process memory, for the memory store
// driver and tests.
type Memory struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

type Object struct {
	ContentType string
	Data        []byte
}

func NewMemory(baseURL string) *Memory {
	return &Memory{
		baseURL: baseURL,
		objects: make(map[string]Object),
	}
}

func (s *Memory) Put(_ context.Context, path, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	s.objects[path] = Object{
		ContentType: contentType,
		Data:        append([]byte{}, data...),
	}
	s.mu.Unlock()
	return s.baseURL + "/" + path, nil
}

// Get exposes stored objects to tests.
func (s *Memory) Get(path string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[path]
	return obj, ok
}

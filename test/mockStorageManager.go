package test

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
)

type mockStorageManager struct {
	objects map[string]map[string][]byte
	mu      sync.RWMutex
}

func CreateMockStorageManager() *mockStorageManager {
	return &mockStorageManager{
		objects: make(map[string]map[string][]byte),
	}
}

func (m *mockStorageManager) WritePhoto(collageId string, fileName string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects[collageId] == nil {
		m.objects[collageId] = make(map[string][]byte)
	}
	m.objects[collageId][fileName] = data
	return nil
}

func (m *mockStorageManager) ReadPhoto(collageId string, fileName string, data *[]byte) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if cMap, ok := m.objects[collageId]; ok {
		if val, ok := cMap[fileName]; ok {
			*data = val
			return nil
		}
	}
	return errors.New("object not found")
}

func (m *mockStorageManager) DeletePhoto(collageId string, fileName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cMap, ok := m.objects[collageId]; ok {
		delete(cMap, fileName)
		return nil
	}
	return errors.New("collage not found")
}

func (m *mockStorageManager) DeleteCollageMedia(collageId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, collageId)
	return nil
}

func (m *mockStorageManager) PublicPath(collageId string, fileName string) string {
	return fmt.Sprintf("/media/%s/%s", collageId, fileName)
}

func (m *mockStorageManager) MediaRoot() string {
	return "/tmp/mockmedia"
}

func (m *mockStorageManager) ExportCollage(collageId string) (string, error) {
	// Just simulate a path
	return filepath.Join("/tmp/mockexport", collageId), nil
}

// ObjectCount The number of stored objects for a collage, for assertions.
func (m *mockStorageManager) ObjectCount(collageId string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects[collageId])
}

package mocks

import (
	"io/fs"
	"path"
	"strings"
	"sync"
	"testing/fstest"

	"github.com/user/vidutil/pkg/ports"
)

// FileSystem is a mock implementation of ports.FileSystem backed by an
// in-memory fstest.MapFS. Paths are slash-separated; a leading "/" is
// ignored, and Abs roots relative paths at "/".
type FileSystem struct {
	mu    sync.RWMutex
	files fstest.MapFS

	ReadDirFunc func(path string) ([]fs.DirEntry, error)
	StatFunc    func(path string) (fs.FileInfo, error)
	AbsFunc     func(path string) (string, error)
	RemoveFunc  func(path string) error

	Removed []string
}

// NewFileSystem creates a new mock FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{files: fstest.MapFS{}}
}

// AddFile adds a regular file.
func (m *FileSystem) AddFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[clean(name)] = &fstest.MapFile{Data: data, Mode: 0644}
}

// AddDir adds a directory.
func (m *FileSystem) AddDir(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[clean(name)] = &fstest.MapFile{Mode: fs.ModeDir | 0755}
}

func (m *FileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	if m.ReadDirFunc != nil {
		return m.ReadDirFunc(name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.ReadDir(m.files, clean(name))
}

func (m *FileSystem) Stat(name string) (fs.FileInfo, error) {
	if m.StatFunc != nil {
		return m.StatFunc(name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fs.Stat(m.files, clean(name))
}

func (m *FileSystem) Abs(name string) (string, error) {
	if m.AbsFunc != nil {
		return m.AbsFunc(name)
	}
	return "/" + clean(name), nil
}

func (m *FileSystem) MkdirAll(name string) error {
	m.AddDir(name)
	return nil
}

func (m *FileSystem) Exists(name string) (bool, error) {
	_, err := m.Stat(name)
	return err == nil, nil
}

func (m *FileSystem) Remove(name string) error {
	m.Removed = append(m.Removed, name)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, clean(name))
	return nil
}

func clean(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		return "."
	}
	return name
}

var _ ports.FileSystem = (*FileSystem)(nil)

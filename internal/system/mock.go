package system

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFS implements FileSystem for testing.
type MockFS struct {
	mu    sync.RWMutex
	files map[string]*mockFile
	dirs  map[string]bool

	// Error injection
	ReadFileErr  error
	WriteFileErr error
	RemoveErr    error
	StatErr      error
	MkdirAllErr  error
	ReadDirErr   error
}

type mockFile struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMockFS creates a new MockFS with an empty filesystem.
func NewMockFS() *MockFS {
	return &MockFS{
		files: make(map[string]*mockFile),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFS) AddFile(path string, data []byte, mode fs.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: mode, modTime: time.Now()}
	// Ensure parent directories exist
	dir := filepath.Dir(path)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
}

// AddFileWithTime adds a file with an explicit modification time.
func (m *MockFS) AddFileWithTime(path string, data []byte, modTime time.Time) {
	m.AddFile(path, data, 0644)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path].modTime = modTime
}

// AddDir adds a directory to the mock filesystem.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
}

// AddDirWithTime adds a directory with an explicit modification time,
// recorded as a marker entry so Stat can report it.
func (m *MockFS) AddDirWithTime(path string, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	m.files[path+"/."] = &mockFile{mode: fs.ModeDir | 0755, modTime: modTime}
}

// GetFile returns the contents of a file in the mock filesystem.
func (m *MockFS) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return f.data, true
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return f.data, nil
}

func (m *MockFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if m.WriteFileErr != nil {
		return m.WriteFileErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = &mockFile{data: data, mode: perm, modTime: time.Now()}
	return nil
}

func (m *MockFS) Remove(path string) error {
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; ok {
		delete(m.files, path)
		return nil
	}
	if _, ok := m.dirs[path]; ok {
		delete(m.dirs, path)
		return nil
	}
	return fs.ErrNotExist
}

func (m *MockFS) Stat(path string) (fs.FileInfo, error) {
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if f, ok := m.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(f.data)), mode: f.mode, modTime: f.modTime}, nil
	}
	if _, ok := m.dirs[path]; ok {
		info := &mockFileInfo{name: filepath.Base(path), isDir: true, mode: fs.ModeDir | 0755}
		if marker, ok := m.files[path+"/."]; ok {
			info.modTime = marker.modTime
		}
		return info, nil
	}
	return nil, fs.ErrNotExist
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllErr != nil {
		return m.MkdirAllErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	dir := path
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = filepath.Dir(dir)
	}
	return nil
}

func (m *MockFS) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.files[path]; ok {
		return true
	}
	return m.dirs[path]
}

func (m *MockFS) ReadDir(path string) ([]fs.DirEntry, error) {
	if m.ReadDirErr != nil {
		return nil, m.ReadDirErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.dirs[path] {
		return nil, fs.ErrNotExist
	}

	seen := make(map[string]bool)
	var entries []fs.DirEntry

	for p, f := range m.files {
		if filepath.Dir(p) == path && filepath.Base(p) != "." {
			name := filepath.Base(p)
			if !seen[name] {
				seen[name] = true
				entries = append(entries, &mockDirEntry{name: name, info: &mockFileInfo{name: name, size: int64(len(f.data)), mode: f.mode, modTime: f.modTime}})
			}
		}
	}
	for d := range m.dirs {
		if filepath.Dir(d) == path {
			name := filepath.Base(d)
			if !seen[name] {
				seen[name] = true
				entries = append(entries, &mockDirEntry{name: name, info: &mockFileInfo{name: name, isDir: true, mode: fs.ModeDir | 0755}})
			}
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (i *mockFileInfo) Name() string       { return i.name }
func (i *mockFileInfo) Size() int64        { return i.size }
func (i *mockFileInfo) Mode() fs.FileMode  { return i.mode }
func (i *mockFileInfo) ModTime() time.Time { return i.modTime }
func (i *mockFileInfo) IsDir() bool        { return i.isDir }
func (i *mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	name string
	info *mockFileInfo
}

func (e *mockDirEntry) Name() string               { return e.name }
func (e *mockDirEntry) IsDir() bool                { return e.info.isDir }
func (e *mockDirEntry) Type() fs.FileMode          { return e.info.mode.Type() }
func (e *mockDirEntry) Info() (fs.FileInfo, error) { return e.info, nil }

// MockExecutor implements CommandExecutor for testing. Responses are
// scripted per command line; unscripted commands succeed with empty output.
type MockExecutor struct {
	mu        sync.Mutex
	calls     [][]string
	responses map[string]mockResponse

	// DefaultErr, when set, is returned for every unscripted command.
	DefaultErr error
}

type mockResponse struct {
	output []byte
	err    error
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		responses: make(map[string]mockResponse),
	}
}

func commandKey(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}

// Script registers the output and error returned for an exact command line.
func (m *MockExecutor) Script(output string, err error, name string, args ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[commandKey(name, args)] = mockResponse{output: []byte(output), err: err}
}

// Calls returns every command line executed so far.
func (m *MockExecutor) Calls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times the exact command line was executed.
func (m *MockExecutor) CallCount(name string, args ...string) int {
	key := commandKey(name, args)
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.calls {
		if commandKey(call[0], call[1:]) == key {
			count++
		}
	}
	return count
}

func (m *MockExecutor) Execute(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]string{name}, args...))
	resp, ok := m.responses[commandKey(name, args)]
	m.mu.Unlock()

	if ok {
		return resp.output, resp.err
	}
	return nil, m.DefaultErr
}

func (m *MockExecutor) ExecuteInteractive(ctx context.Context, name string, args ...string) error {
	_, err := m.Execute(ctx, name, args...)
	return err
}

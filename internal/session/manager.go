package session

import (
	"sync"

	"MetaReader/internal/model"
)

const maxRecentDirs = 10

// Manager remembers the last opened directory across runs.
// An empty file path keeps the state in memory only.
type Manager struct {
	mu       sync.Mutex
	state    *model.SessionState
	filePath string
}

// NewManager creates a Manager, loading state from disk when a path is given.
func NewManager(filePath string) (*Manager, error) {
	state := &model.SessionState{}
	if filePath != "" {
		loaded, err := LoadState(filePath)
		if err != nil {
			return nil, err
		}
		state = loaded
	}
	return &Manager{state: state, filePath: filePath}, nil
}

// GetState returns a copy of the current state.
func (m *Manager) GetState() model.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := *m.state
	s.RecentDirs = append([]string(nil), m.state.RecentDirs...)
	return s
}

// ResolveDir returns dir when set, otherwise the last opened directory.
func (m *Manager) ResolveDir(dir string) string {
	if dir != "" {
		return dir
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.LastDir
}

// Remember records dir and variant as the last opened and persists the state.
func (m *Manager) Remember(dir, variant string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.LastDir = dir
	m.state.LastVariant = variant

	recent := []string{dir}
	for _, d := range m.state.RecentDirs {
		if d != dir {
			recent = append(recent, d)
		}
	}
	if len(recent) > maxRecentDirs {
		recent = recent[:maxRecentDirs]
	}
	m.state.RecentDirs = recent

	return m.save()
}

func (m *Manager) save() error {
	if m.filePath == "" {
		return nil
	}
	return SaveState(m.filePath, m.state)
}

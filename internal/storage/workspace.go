package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

// WorkspaceStore provides in-memory storage for chat workspaces.
type WorkspaceStore struct {
	mu         sync.RWMutex
	workspaces map[int64]*workspace.Workspace
}

// NewWorkspaceStore creates a new WorkspaceStore.
func NewWorkspaceStore() *WorkspaceStore {
	return &WorkspaceStore{
		workspaces: make(map[int64]*workspace.Workspace),
	}
}

// GetOrCreate returns the workspace of chatID, creating it on first use,
// and records activity at now.
func (s *WorkspaceStore) GetOrCreate(chatID int64, now time.Time) *workspace.Workspace {
	s.mu.RLock()
	ws, ok := s.workspaces[chatID]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		ws, ok = s.workspaces[chatID]
		if !ok {
			ws = workspace.New(now)
			s.workspaces[chatID] = ws
		}
		s.mu.Unlock()
	}

	ws.Touch(now)
	return ws
}

// Reset replaces the workspace of chatID with an empty one.
func (s *WorkspaceStore) Reset(chatID int64, now time.Time) *workspace.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.workspaces[chatID]; ok {
		old.Close()
	}
	ws := workspace.New(now)
	s.workspaces[chatID] = ws
	return ws
}

// PruneIdle removes workspaces without activity since before.
// It returns the number of removed workspaces.
func (s *WorkspaceStore) PruneIdle(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for chatID, ws := range s.workspaces {
		if ws.LastSeen().Before(before) {
			ws.Close()
			delete(s.workspaces, chatID)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored workspaces.
func (s *WorkspaceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workspaces)
}

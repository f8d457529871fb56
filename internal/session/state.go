package session

import (
	"sync"

	"github.com/garapadev/garapagent/internal/roles"
)

// State is the mutable per-conversation state: which role document is
// active and whether the agent action protocol is enabled. The two fields
// are independent; toggling one never touches the other.
type State struct {
	mu         sync.RWMutex
	activeRole *roles.Role
	agentMode  bool
}

func New() *State {
	return &State{}
}

// ActiveRole returns the currently active role, or nil.
func (s *State) ActiveRole() *roles.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeRole
}

// SetRole activates a role. Only one role can be active at a time.
func (s *State) SetRole(r roles.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeRole = &r
}

// ClearRole deactivates the current role and reports which one it was.
func (s *State) ClearRole() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeRole == nil {
		return "", false
	}
	name := s.activeRole.Name
	s.activeRole = nil
	return name, true
}

// AgentMode reports whether the agent action protocol is enabled.
func (s *State) AgentMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agentMode
}

// SetAgentMode toggles the agent action protocol.
func (s *State) SetAgentMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agentMode = enabled
}

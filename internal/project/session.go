// SPDX-License-Identifier: MPL-2.0

package project

import "github.com/goots/pom-deployer/internal/repository"

// Session is the execution context shared by delegated invocations. It
// holds the current project handle.
type Session struct {
	current *Project
}

// NewSession creates a session whose current project is p.
func NewSession(p *Project) *Session {
	return &Session{current: p}
}

// CurrentProject returns the current project handle.
func (s *Session) CurrentProject() *Project { return s.current }

// Isolate makes a minimal project, carrying only the plugin repositories of
// the current one, the current project. The returned restore func reinstates
// the previous project and must be deferred by the caller. Calling it more
// than once is harmless.
func (s *Session) Isolate() (*Project, func()) {
	original := s.current

	var pluginRepos []repository.Remote
	if original != nil {
		pluginRepos = original.PluginRepositories
	}
	isolated := NewIsolated(pluginRepos)
	s.current = isolated

	return isolated, func() { s.current = original }
}

// Package access gates UI capabilities on the principal's role. Every
// role-restricted capability (create button, delete action, list view)
// is declared once behind a Gate rather than checked imperatively, so
// the whole authorization policy is greppable.
package access

import (
	"io"

	"github.com/sisacad/academico/core/session"
)

// RenderFunc renders a piece of UI to w.
type RenderFunc func(w io.Writer)

// Gate is a pure render decision over (allowed roles, principal role).
// It holds no state and has no side effects; gates nest naturally since
// a denied outer gate never evaluates what it protects.
type Gate struct {
	allowed map[session.Role]struct{}
}

func Allow(roles ...session.Role) Gate {
	g := Gate{allowed: make(map[session.Role]struct{}, len(roles))}
	for _, r := range roles {
		g.allowed[r] = struct{}{}
	}
	return g
}

// Permits reports whether the principal exists and carries one of the
// allowed roles.
func (g Gate) Permits(p *session.Principal) bool {
	if p == nil {
		return false
	}
	_, ok := g.allowed[p.Role]
	return ok
}

// Render renders onAllow iff the gate permits p, otherwise onDeny when
// provided, otherwise nothing.
func (g Gate) Render(w io.Writer, p *session.Principal, onAllow RenderFunc, onDeny RenderFunc) {
	if g.Permits(p) {
		if onAllow != nil {
			onAllow(w)
		}
		return
	}
	if onDeny != nil {
		onDeny(w)
	}
}

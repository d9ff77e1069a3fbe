package access

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sisacad/academico/core/session"
)

func Test_Gate_Permits(t *testing.T) {
	adminOnly := Allow(session.RoleAdmin)
	staff := Allow(session.RoleAdmin, session.RoleTeacher)

	tests := []struct {
		name string
		gate Gate
		p    *session.Principal
		want bool
	}{
		{name: "nil principal", gate: adminOnly, p: nil, want: false},
		{name: "allowed role", gate: adminOnly, p: &session.Principal{ID: 1, Role: session.RoleAdmin}, want: true},
		{name: "disallowed role", gate: adminOnly, p: &session.Principal{ID: 2, Role: session.RoleStudent}, want: false},
		{name: "multi-role gate admits teacher", gate: staff, p: &session.Principal{ID: 3, Role: session.RoleTeacher}, want: true},
		{name: "multi-role gate rejects student", gate: staff, p: &session.Principal{ID: 4, Role: session.RoleStudent}, want: false},
		{name: "empty gate rejects everyone", gate: Allow(), p: &session.Principal{ID: 5, Role: session.RoleAdmin}, want: false},
		{name: "invalid role", gate: staff, p: &session.Principal{ID: 6, Role: "ROLE_NOPE"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.gate.Permits(tt.p))
		})
	}
}

func Test_Gate_Render(t *testing.T) {
	gate := Allow(session.RoleAdmin)
	allow := func(w io.Writer) { io.WriteString(w, "allowed") }
	deny := func(w io.Writer) { io.WriteString(w, "denied") }

	t.Run("permitted renders onAllow only", func(t *testing.T) {
		var buf bytes.Buffer
		gate.Render(&buf, &session.Principal{ID: 1, Role: session.RoleAdmin}, allow, deny)
		assert.Equal(t, "allowed", buf.String())
	})

	t.Run("denied renders onDeny only", func(t *testing.T) {
		var buf bytes.Buffer
		gate.Render(&buf, &session.Principal{ID: 1, Role: session.RoleStudent}, allow, deny)
		assert.Equal(t, "denied", buf.String())
	})

	t.Run("denied without onDeny renders nothing", func(t *testing.T) {
		var buf bytes.Buffer
		gate.Render(&buf, nil, allow, nil)
		assert.Empty(t, buf.String())
	})

	t.Run("nested gates short-circuit", func(t *testing.T) {
		var buf bytes.Buffer
		inner := Allow(session.RoleAdmin)
		gate.Render(&buf, &session.Principal{ID: 1, Role: session.RoleTeacher}, func(w io.Writer) {
			inner.Render(w, &session.Principal{ID: 1, Role: session.RoleAdmin}, allow, deny)
		}, nil)
		assert.Empty(t, buf.String())
	})
}

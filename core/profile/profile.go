// Package profile loads the authenticated user's own record, dispatching
// on role to the student or teacher "me" endpoint.
package profile

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/session"
	"github.com/sisacad/academico/core/student"
	"github.com/sisacad/academico/core/teacher"
)

var errUnsupportedRole = errors.New("profile not available for this user type")

// Profile is the role-dispatched "my record" view state. Admins have no
// backing record, only students and teachers do.
type Profile struct {
	mu         sync.Mutex
	store      *session.Store
	studentSvc student.Service
	teacherSvc teacher.Service

	student *student.Student
	teacher *teacher.Teacher
	loading bool
	err     string
}

func New(store *session.Store, students student.Service, teachers teacher.Service) *Profile {
	return &Profile{store: store, studentSvc: students, teacherSvc: teachers}
}

func (p *Profile) Load(ctx context.Context) error {
	principal := p.store.Principal()
	if principal == nil {
		p.setErr("user not authenticated")
		return errors.New("user not authenticated")
	}

	p.mu.Lock()
	p.loading = true
	p.err = ""
	p.student = nil
	p.teacher = nil
	p.mu.Unlock()

	var err error
	switch principal.Role {
	case session.RoleStudent:
		var s student.Student
		if s, err = p.studentSvc.Me(ctx); err == nil {
			p.mu.Lock()
			p.student = &s
			p.mu.Unlock()
		}
	case session.RoleTeacher:
		var t teacher.Teacher
		if t, err = p.teacherSvc.Me(ctx); err == nil {
			p.mu.Lock()
			p.teacher = &t
			p.mu.Unlock()
		}
	default:
		err = errUnsupportedRole
	}

	p.mu.Lock()
	p.loading = false
	if err != nil {
		p.err = core.ErrorMessage(err, "failed to load profile")
	}
	p.mu.Unlock()
	return err
}

func (p *Profile) Student() *student.Student {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.student
}

func (p *Profile) Teacher() *teacher.Teacher {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.teacher
}

func (p *Profile) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Profile) Err() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *Profile) ClearError() {
	p.setErr("")
}

func (p *Profile) setErr(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = msg
}

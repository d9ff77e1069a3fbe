package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/access"
	"github.com/sisacad/academico/core/discipline"
	"github.com/sisacad/academico/core/registration"
	"github.com/sisacad/academico/core/session"
	"github.com/sisacad/academico/core/student"
	"github.com/sisacad/academico/core/teacher"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp      = errors.New("help provided")
	errForbidden = errors.New("permission denied")
)

// Screen gates, matching the API's own endpoint restrictions.
var (
	adminGate          = access.Allow(session.RoleAdmin)
	adminOrTeacherGate = access.Allow(session.RoleAdmin, session.RoleTeacher)
	anyRoleGate        = access.Allow(session.RoleAdmin, session.RoleTeacher, session.RoleStudent)
)

type commandLine struct {
	conf          *core.Config
	store         *session.Store
	students      student.Service
	teachers      teacher.Service
	disciplines   discipline.Service
	registrations registration.Service
	out           io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -email EMAIL                          - sign in; the password is prompted")
	fmt.Fprintln(cli.out, "  logout                                      - sign out and clear the saved session")
	fmt.Fprintln(cli.out, "  whoami                                      - show the signed-in user")
	fmt.Fprintln(cli.out, "  me                                          - show the signed-in user's own record")
	fmt.Fprintln(cli.out, "  students      list|create|update|delete|search ...")
	fmt.Fprintln(cli.out, "  teachers      list|create|update|delete|search ...")
	fmt.Fprintln(cli.out, "  disciplines   list|create|update|delete|search ...")
	fmt.Fprintln(cli.out, "  registrations list|create|delete|search|notes ...")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()
	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		cli.store.Logout(ctx)
		fmt.Fprintln(cli.out, "signed out")
		return nil
	case "whoami":
		return cli.whoami()
	case "me":
		return cli.showProfile(ctx)
	case "students":
		return cli.runStudents(ctx, args[2:])
	case "teachers":
		return cli.runTeachers(ctx, args[2:])
	case "disciplines":
		return cli.runDisciplines(ctx, args[2:])
	case "registrations":
		return cli.runRegistrations(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// guard renders through the gate; a denied principal short-circuits
// the command with errForbidden.
func (cli *commandLine) guard(gate access.Gate, render access.RenderFunc) error {
	allowed := false
	gate.Render(cli.out, cli.store.Principal(),
		func(w io.Writer) {
			allowed = true
			render(w)
		},
		func(w io.Writer) {
			fmt.Fprintln(w, "permission denied")
		},
	)
	if !allowed {
		return errForbidden
	}
	return nil
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

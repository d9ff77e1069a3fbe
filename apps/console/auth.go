package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/sisacad/academico/core/profile"
)

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	email := loginCmd.String("email", "", "The account's email. The password will be prompted next.")
	if err := loginCmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		loginCmd.Usage()
		return errHelp
	}

	pwd, err := cli.promptPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		loginCmd.Usage()
		return errHelp
	}

	if err := cli.store.Login(ctx, *email, pwd); err != nil {
		return err
	}
	p := cli.store.Principal()
	fmt.Fprintf(cli.out, "signed in as %s (%s)\n", p.Name, p.Role)
	return nil
}

func (cli *commandLine) whoami() error {
	p := cli.store.Principal()
	if p == nil {
		fmt.Fprintln(cli.out, "not signed in")
		return nil
	}
	fmt.Fprintf(cli.out, "#%d %s <%s> %s\n", p.ID, p.Name, p.Email, p.Role)
	return nil
}

// showProfile loads the caller's own record; available to students and
// teachers only, the admin seed has no backing record.
func (cli *commandLine) showProfile(ctx context.Context) error {
	return cli.guard(anyRoleGate, func(w io.Writer) {
		prof := profile.New(cli.store, cli.students, cli.teachers)
		if err := prof.Load(ctx); err != nil {
			fmt.Fprintf(w, "error: %s\n", prof.Err())
			return
		}
		if s := prof.Student(); s != nil {
			fmt.Fprintf(w, "#%d %s <%s> registration %s\n", s.ID, s.Name, s.Email, s.RegistrationNumber)
			return
		}
		if t := prof.Teacher(); t != nil {
			fmt.Fprintf(w, "#%d %s <%s>\n", t.ID, t.Name, t.Email)
		}
	})
}

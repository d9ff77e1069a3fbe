package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sisacad/academico/core/form"
	"github.com/sisacad/academico/core/teacher"
)

func (cli *commandLine) runTeachers(ctx context.Context, args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("teachers list", flag.ExitOnError)
	listPage := listCmd.Int("page", 0, "Zero-based page to show.")
	listSort := listCmd.String("sort", "", `Sort as "field,direction"; defaults to nome,asc.`)

	createCmd := flag.NewFlagSet("teachers create", flag.ExitOnError)
	createName := createCmd.String("name", "", "The teacher's full name.")
	createEmail := createCmd.String("email", "", "The teacher's email. The password will be prompted next.")

	updateCmd := flag.NewFlagSet("teachers update", flag.ExitOnError)
	updateID := updateCmd.Int("id", 0, "The teacher to update.")
	updateName := updateCmd.String("name", "", "New full name; empty keeps the current one.")
	updateEmail := updateCmd.String("email", "", "New email; empty keeps the current one.")

	deleteCmd := flag.NewFlagSet("teachers delete", flag.ExitOnError)
	deleteID := deleteCmd.Int("id", 0, "The teacher to delete.")

	searchCmd := flag.NewFlagSet("teachers search", flag.ExitOnError)
	searchID := searchCmd.Int("id", 0, "The teacher to look up.")

	switch args[0] {
	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		return cli.listTeachers(ctx, *listPage, *listSort)
	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.editTeacher(ctx, "New Teacher", form.NewRecord(), form.Values{
			"nome":  *createName,
			"email": *createEmail,
			"senha": pwd,
		})
	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID <= 0 {
			updateCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		overrides := form.Values{"senha": pwd}
		if *updateName != "" {
			overrides["nome"] = *updateName
		}
		if *updateEmail != "" {
			overrides["email"] = *updateEmail
		}
		return cli.editTeacher(ctx, "Edit Teacher", form.ExistingRecord(*updateID), overrides)
	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID <= 0 {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.deleteTeacher(ctx, *deleteID)
	case "search":
		if err := searchCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *searchID <= 0 {
			searchCmd.Usage()
			return errHelp
		}
		return cli.searchTeacher(ctx, *searchID)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listTeachers(ctx context.Context, page int, sort string) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		l := teacher.NewList(cli.teachers, cli.conf.DefaultPageSize)
		if err := l.Load(ctx, page, sort); err != nil {
			runErr = errors.New(l.Err())
			return
		}
		fmt.Fprintln(w, "== Teachers ==")
		for _, t := range l.Items() {
			fmt.Fprintf(w, "#%d %s <%s>\n", t.ID, t.Name, t.Email)
		}
		fmt.Fprintf(w, "page %d/%d (%d total)\n", l.CurrentPage()+1, l.TotalPages(), l.TotalElements())
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) editTeacher(ctx context.Context, title string, target form.RecordID, values form.Values) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		st := teacher.NewForm(cli.teachers)
		defer st.Close()

		if id, ok := target.Existing(); ok {
			existing, err := cli.teachers.GetByID(ctx, id)
			if err != nil {
				runErr = err
				return
			}
			st.SetData(teacher.EditValues(existing), target)
		}
		for name, raw := range values {
			st.HandleChange(name, fmt.Sprint(raw))
		}
		st.HandleSubmit(ctx)

		ed := &form.Editor{Title: title, State: st, Form: teacher.FormView{}}
		ed.Render(w)
		runErr = submitOutcome(st)
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) deleteTeacher(ctx context.Context, id int) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		l := teacher.NewList(cli.teachers, cli.conf.DefaultPageSize)
		if !l.DeleteByID(ctx, id) {
			runErr = errors.New(l.Err())
			return
		}
		fmt.Fprintf(w, "teacher #%d deleted\n", id)
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) searchTeacher(ctx context.Context, id int) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		s := teacher.NewSearch(cli.teachers)
		s.SearchByID(ctx, id)
		switch {
		case s.NotFound():
			fmt.Fprintf(w, "teacher #%d not found\n", id)
		case s.Err() != "":
			runErr = errors.New(s.Err())
		default:
			rec := s.Record()
			fmt.Fprintf(w, "#%d %s <%s>\n", rec.ID, rec.Name, rec.Email)
		}
	})
	if err != nil {
		return err
	}
	return runErr
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sisacad/academico/core/form"
	"github.com/sisacad/academico/core/student"
)

func (cli *commandLine) runStudents(ctx context.Context, args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("students list", flag.ExitOnError)
	listPage := listCmd.Int("page", 0, "Zero-based page to show.")
	listSort := listCmd.String("sort", "", `Sort as "field,direction"; defaults to name,asc.`)

	createCmd := flag.NewFlagSet("students create", flag.ExitOnError)
	createName := createCmd.String("name", "", "The student's full name.")
	createEmail := createCmd.String("email", "", "The student's email.")
	createNumber := createCmd.String("number", "", "The registration number. The password will be prompted next.")

	updateCmd := flag.NewFlagSet("students update", flag.ExitOnError)
	updateID := updateCmd.Int("id", 0, "The student to update.")
	updateName := updateCmd.String("name", "", "New full name; empty keeps the current one.")
	updateEmail := updateCmd.String("email", "", "New email; empty keeps the current one.")
	updateNumber := updateCmd.String("number", "", "New registration number; empty keeps the current one.")

	deleteCmd := flag.NewFlagSet("students delete", flag.ExitOnError)
	deleteID := deleteCmd.Int("id", 0, "The student to delete.")

	searchCmd := flag.NewFlagSet("students search", flag.ExitOnError)
	searchID := searchCmd.Int("id", 0, "The student to look up.")

	switch args[0] {
	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		return cli.listStudents(ctx, *listPage, *listSort)
	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.editStudent(ctx, "New Student", form.NewRecord(), form.Values{
			"name":               *createName,
			"email":              *createEmail,
			"registrationNumber": *createNumber,
			"password":           pwd,
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
		overrides := form.Values{"password": pwd}
		if *updateName != "" {
			overrides["name"] = *updateName
		}
		if *updateEmail != "" {
			overrides["email"] = *updateEmail
		}
		if *updateNumber != "" {
			overrides["registrationNumber"] = *updateNumber
		}
		return cli.editStudent(ctx, "Edit Student", form.ExistingRecord(*updateID), overrides)
	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID <= 0 {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.deleteStudent(ctx, *deleteID)
	case "search":
		if err := searchCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *searchID <= 0 {
			searchCmd.Usage()
			return errHelp
		}
		return cli.searchStudent(ctx, *searchID)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listStudents(ctx context.Context, page int, sort string) error {
	var runErr error
	err := cli.guard(adminOrTeacherGate, func(w io.Writer) {
		l := student.NewList(cli.students, cli.conf.DefaultPageSize)
		if err := l.Load(ctx, page, sort); err != nil {
			runErr = errors.New(l.Err())
			return
		}
		fmt.Fprintln(w, "== Students ==")
		for _, s := range l.Items() {
			fmt.Fprintf(w, "#%d %s <%s> registration %s\n", s.ID, s.Name, s.Email, s.RegistrationNumber)
		}
		fmt.Fprintf(w, "page %d/%d (%d total)\n", l.CurrentPage()+1, l.TotalPages(), l.TotalElements())
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) editStudent(ctx context.Context, title string, target form.RecordID, values form.Values) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		st := student.NewForm(cli.students)
		defer st.Close()

		if id, ok := target.Existing(); ok {
			existing, err := cli.students.GetByID(ctx, id)
			if err != nil {
				runErr = err
				return
			}
			st.SetData(student.EditValues(existing), target)
		}
		for name, raw := range values {
			st.HandleChange(name, fmt.Sprint(raw))
		}
		st.HandleSubmit(ctx)

		ed := &form.Editor{Title: title, State: st, Form: student.FormView{}}
		ed.Render(w)
		runErr = submitOutcome(st)
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) deleteStudent(ctx context.Context, id int) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		l := student.NewList(cli.students, cli.conf.DefaultPageSize)
		if !l.DeleteByID(ctx, id) {
			runErr = errors.New(l.Err())
			return
		}
		fmt.Fprintf(w, "student #%d deleted\n", id)
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) searchStudent(ctx context.Context, id int) error {
	var runErr error
	err := cli.guard(adminOrTeacherGate, func(w io.Writer) {
		s := student.NewSearch(cli.students)
		s.SearchByID(ctx, id)
		switch {
		case s.NotFound():
			fmt.Fprintf(w, "student #%d not found\n", id)
		case s.Err() != "":
			runErr = errors.New(s.Err())
		default:
			rec := s.Record()
			fmt.Fprintf(w, "#%d %s <%s> registration %s\n", rec.ID, rec.Name, rec.Email, rec.RegistrationNumber)
		}
	})
	if err != nil {
		return err
	}
	return runErr
}

// submitOutcome converts rendered form state into the command's exit
// status.
func submitOutcome(st *form.State) error {
	if st.IsSubmitted() {
		return nil
	}
	if msg := st.FormError(); msg != "" {
		return errors.New(msg)
	}
	return errors.New("validation failed")
}

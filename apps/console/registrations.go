package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/form"
	"github.com/sisacad/academico/core/registration"
)

func (cli *commandLine) runRegistrations(ctx context.Context, args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("registrations list", flag.ExitOnError)
	listPage := listCmd.Int("page", 0, "Zero-based page to show.")
	listSort := listCmd.String("sort", "", `Sort as "field,direction"; defaults to dataMatricula,desc.`)

	createCmd := flag.NewFlagSet("registrations create", flag.ExitOnError)
	createStudent := createCmd.Int("student", 0, "The enrolling student's id.")
	createDiscipline := createCmd.Int("discipline", 0, "The discipline's id.")

	deleteCmd := flag.NewFlagSet("registrations delete", flag.ExitOnError)
	deleteID := deleteCmd.Int("id", 0, "The registration to delete.")

	searchCmd := flag.NewFlagSet("registrations search", flag.ExitOnError)
	searchID := searchCmd.Int("id", 0, "The registration to look up.")

	notesCmd := flag.NewFlagSet("registrations notes", flag.ExitOnError)
	notesID := notesCmd.Int("id", 0, "The registration to grade.")
	notesScore1 := notesCmd.String("nota1", "", "First score, 0 to 10; empty leaves it unset.")
	notesScore2 := notesCmd.String("nota2", "", "Second score, 0 to 10; empty leaves it unset.")

	switch args[0] {
	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		return cli.listRegistrations(ctx, *listPage, *listSort)
	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		return cli.createRegistration(ctx, *createStudent, *createDiscipline)
	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID <= 0 {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.deleteRegistration(ctx, *deleteID)
	case "search":
		if err := searchCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *searchID <= 0 {
			searchCmd.Usage()
			return errHelp
		}
		return cli.searchRegistration(ctx, *searchID)
	case "notes":
		if err := notesCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *notesID <= 0 {
			notesCmd.Usage()
			return errHelp
		}
		return cli.updateNotes(ctx, *notesID, *notesScore1, *notesScore2)
	default:
		cli.printUsage()
		return errHelp
	}
}

func formatRegistration(r registration.Registration) string {
	n1, n2 := "-", "-"
	if r.Score1.Valid {
		n1 = strconv.FormatFloat(r.Score1.Float64, 'f', 1, 64)
	}
	if r.Score2.Valid {
		n2 = strconv.FormatFloat(r.Score2.Float64, 'f', 1, 64)
	}
	return fmt.Sprintf(
		"#%d %s -> %s, notas %s/%s, %s, enrolled %s",
		r.ID, r.Student.Name, r.Discipline.Name, n1, n2, r.Status,
		r.EnrolledAt.Format("2006-01-02"),
	)
}

func (cli *commandLine) listRegistrations(ctx context.Context, page int, sort string) error {
	var runErr error
	err := cli.guard(adminOrTeacherGate, func(w io.Writer) {
		l := registration.NewList(cli.registrations, cli.conf.DefaultPageSize)
		if err := l.Load(ctx, page, sort); err != nil {
			runErr = errors.New(l.Err())
			return
		}
		fmt.Fprintln(w, "== Registrations ==")
		for _, r := range l.Items() {
			fmt.Fprintln(w, formatRegistration(r))
		}
		fmt.Fprintf(w, "page %d/%d (%d total)\n", l.CurrentPage()+1, l.TotalPages(), l.TotalElements())
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) createRegistration(ctx context.Context, studentID, disciplineID int) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		f := registration.NewForm(cli.registrations, cli.students, cli.disciplines)
		defer f.Close()

		ed := &form.Editor{Title: "New Registration", State: f.State, Form: f}
		if err := f.LoadOptions(ctx); err != nil {
			ed.Render(w)
			runErr = err
			return
		}
		if studentID > 0 {
			f.HandleChange("alunoId", strconv.Itoa(studentID))
		}
		if disciplineID > 0 {
			f.HandleChange("disciplinaId", strconv.Itoa(disciplineID))
		}
		f.HandleSubmit(ctx)

		ed.Render(w)
		runErr = submitOutcome(f.State)
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) deleteRegistration(ctx context.Context, id int) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		l := registration.NewList(cli.registrations, cli.conf.DefaultPageSize)
		if !l.DeleteByID(ctx, id) {
			runErr = errors.New(l.Err())
			return
		}
		fmt.Fprintf(w, "registration #%d deleted\n", id)
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) searchRegistration(ctx context.Context, id int) error {
	var runErr error
	err := cli.guard(adminOrTeacherGate, func(w io.Writer) {
		s := registration.NewSearch(cli.registrations)
		s.SearchByID(ctx, id)
		switch {
		case s.NotFound():
			fmt.Fprintf(w, "registration #%d not found\n", id)
		case s.Err() != "":
			runErr = errors.New(s.Err())
		default:
			fmt.Fprintln(w, formatRegistration(*s.Record()))
		}
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) updateNotes(ctx context.Context, id int, score1, score2 string) error {
	var runErr error
	err := cli.guard(adminOrTeacherGate, func(w io.Writer) {
		l := registration.NewList(cli.registrations, cli.conf.DefaultPageSize)
		if err := l.UpdateNotes(ctx, id, registration.ScoreInput(score1), registration.ScoreInput(score2)); err != nil {
			var vErr *core.ValidationError
			if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
				err = errors.New(vErr.Fields[0].Error)
			}
			runErr = err
			return
		}
		fmt.Fprintf(w, "registration #%d updated\n", id)
	})
	if err != nil {
		return err
	}
	return runErr
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/sisacad/academico/core/discipline"
	"github.com/sisacad/academico/core/form"
)

func (cli *commandLine) runDisciplines(ctx context.Context, args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("disciplines list", flag.ExitOnError)
	listPage := listCmd.Int("page", 0, "Zero-based page to show.")
	listSort := listCmd.String("sort", "", `Sort as "field,direction"; defaults to nome,asc.`)

	createCmd := flag.NewFlagSet("disciplines create", flag.ExitOnError)
	createName := createCmd.String("name", "", "The discipline's name.")
	createCode := createCmd.String("code", "", "The discipline's code.")
	createWorkload := createCmd.Int("workload", 0, "Workload in hours.")
	createTeacher := createCmd.Int("teacher", 0, "Assigned professor's id; 0 leaves it unassigned.")

	updateCmd := flag.NewFlagSet("disciplines update", flag.ExitOnError)
	updateID := updateCmd.Int("id", 0, "The discipline to update.")
	updateName := updateCmd.String("name", "", "New name; empty keeps the current one.")
	updateCode := updateCmd.String("code", "", "New code; empty keeps the current one.")
	updateWorkload := updateCmd.Int("workload", -1, "New workload in hours; -1 keeps the current one.")
	updateTeacher := updateCmd.Int("teacher", -1, "New professor id; -1 keeps the current assignment, 0 clears it.")

	deleteCmd := flag.NewFlagSet("disciplines delete", flag.ExitOnError)
	deleteID := deleteCmd.Int("id", 0, "The discipline to delete.")

	searchCmd := flag.NewFlagSet("disciplines search", flag.ExitOnError)
	searchID := searchCmd.Int("id", 0, "The discipline to look up.")

	switch args[0] {
	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		return cli.listDisciplines(ctx, *listPage, *listSort)
	case "create":
		if err := createCmd.Parse(args[1:]); err != nil {
			return err
		}
		values := form.Values{
			"nome":         *createName,
			"codigo":       *createCode,
			"cargaHoraria": strconv.Itoa(*createWorkload),
		}
		if *createTeacher > 0 {
			values["professorId"] = strconv.Itoa(*createTeacher)
		}
		return cli.editDiscipline(ctx, "New Discipline", form.NewRecord(), values)
	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID <= 0 {
			updateCmd.Usage()
			return errHelp
		}
		values := form.Values{}
		if *updateName != "" {
			values["nome"] = *updateName
		}
		if *updateCode != "" {
			values["codigo"] = *updateCode
		}
		if *updateWorkload >= 0 {
			values["cargaHoraria"] = strconv.Itoa(*updateWorkload)
		}
		if *updateTeacher == 0 {
			values["professorId"] = ""
		} else if *updateTeacher > 0 {
			values["professorId"] = strconv.Itoa(*updateTeacher)
		}
		return cli.editDiscipline(ctx, "Edit Discipline", form.ExistingRecord(*updateID), values)
	case "delete":
		if err := deleteCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *deleteID <= 0 {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.deleteDiscipline(ctx, *deleteID)
	case "search":
		if err := searchCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *searchID <= 0 {
			searchCmd.Usage()
			return errHelp
		}
		return cli.searchDiscipline(ctx, *searchID)
	default:
		cli.printUsage()
		return errHelp
	}
}

func formatDiscipline(d discipline.Discipline) string {
	prof := "unassigned"
	if d.Teacher != nil {
		prof = d.Teacher.Name
	}
	return fmt.Sprintf("#%d %s [%s] %dh, professor: %s", d.ID, d.Name, d.Code, d.Workload, prof)
}

func (cli *commandLine) listDisciplines(ctx context.Context, page int, sort string) error {
	var runErr error
	err := cli.guard(anyRoleGate, func(w io.Writer) {
		l := discipline.NewList(cli.disciplines, cli.conf.DefaultPageSize)
		if err := l.Load(ctx, page, sort); err != nil {
			runErr = errors.New(l.Err())
			return
		}
		fmt.Fprintln(w, "== Disciplines ==")
		for _, d := range l.Items() {
			fmt.Fprintln(w, formatDiscipline(d))
		}
		fmt.Fprintf(w, "page %d/%d (%d total)\n", l.CurrentPage()+1, l.TotalPages(), l.TotalElements())
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) editDiscipline(ctx context.Context, title string, target form.RecordID, values form.Values) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		f := discipline.NewForm(cli.disciplines, cli.teachers)
		defer f.Close()

		if err := f.LoadOptions(ctx); err != nil {
			ed := &form.Editor{Title: title, State: f.State, Form: f}
			ed.Render(w)
			runErr = err
			return
		}
		if id, ok := target.Existing(); ok {
			existing, err := cli.disciplines.GetByID(ctx, id)
			if err != nil {
				runErr = err
				return
			}
			f.SetData(discipline.EditValues(existing), target)
		}
		for name, raw := range values {
			f.HandleChange(name, fmt.Sprint(raw))
		}
		f.HandleSubmit(ctx)

		ed := &form.Editor{Title: title, State: f.State, Form: f}
		ed.Render(w)
		runErr = submitOutcome(f.State)
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) deleteDiscipline(ctx context.Context, id int) error {
	var runErr error
	err := cli.guard(adminGate, func(w io.Writer) {
		l := discipline.NewList(cli.disciplines, cli.conf.DefaultPageSize)
		if !l.DeleteByID(ctx, id) {
			runErr = errors.New(l.Err())
			return
		}
		fmt.Fprintf(w, "discipline #%d deleted\n", id)
	})
	if err != nil {
		return err
	}
	return runErr
}

func (cli *commandLine) searchDiscipline(ctx context.Context, id int) error {
	var runErr error
	err := cli.guard(anyRoleGate, func(w io.Writer) {
		s := discipline.NewSearch(cli.disciplines)
		s.SearchByID(ctx, id)
		switch {
		case s.NotFound():
			fmt.Fprintf(w, "discipline #%d not found\n", id)
		case s.Err() != "":
			runErr = errors.New(s.Err())
		default:
			fmt.Fprintln(w, formatDiscipline(*s.Record()))
		}
	})
	if err != nil {
		return err
	}
	return runErr
}

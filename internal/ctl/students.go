package ctl

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/skillhub/internal/app/forms"
	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/helpers"
)

func studentFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "full name", Required: required},
		&cli.StringFlag{Name: "email", Usage: "email address", Required: required},
		&cli.StringFlag{Name: "phone", Usage: "phone number", Required: required},
	}
}

// studentForm overlays the flags that were given on f.
func studentForm(c *cli.Context, f forms.StudentForm) forms.StudentForm {
	if c.IsSet("name") {
		f.Name = c.String("name")
	}
	if c.IsSet("email") {
		f.Email = c.String("email")
	}
	if c.IsSet("phone") {
		f.Phone = c.String("phone")
	}
	return f
}

func studentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "students",
		Usage: "list and edit students",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all students",
				Action: func(c *cli.Context) error {
					students, err := servicesFor(c).Students.ListStudents(c.Context)
					if err != nil {
						return fail(err, "Could not load students")
					}
					if len(students) == 0 {
						fmt.Fprintln(c.App.Writer, "No students yet")
						return nil
					}
					w := table(c.App.Writer)
					fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
					for _, s := range students {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.Email, s.Phone)
					}
					return w.Flush()
				},
			},
			{
				Name:      "get",
				Usage:     "show a student and their enrollments",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, "student")
					if err != nil {
						return err
					}
					s, err := servicesFor(c).Students.GetStudent(c.Context, id)
					if err != nil {
						return fail(err, "Could not load student")
					}
					printStudent(c, s)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create a student",
				Flags: studentFlags(true),
				Action: func(c *cli.Context) error {
					f := studentForm(c, forms.StudentForm{})
					if err := f.Validate(); err != nil {
						return fail(err, "Invalid student")
					}
					payload, _ := f.Payload()
					created, err := servicesFor(c).Students.CreateStudent(c.Context, payload)
					if err != nil {
						return fail(err, "Could not create student")
					}
					if created == nil {
						fmt.Fprintln(c.App.Writer, "Student created")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "Student created with id %d\n", created.ID)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "change the given fields of a student",
				Flags: append([]cli.Flag{idFlag("student")}, studentFlags(false)...),
				Action: func(c *cli.Context) error {
					id, err := idFlagValue(c, "student")
					if err != nil {
						return err
					}
					svc := servicesFor(c)
					draft, err := svc.Students.GetStudent(c.Context, id)
					if err != nil {
						return fail(err, "Could not load student")
					}
					f := studentForm(c, forms.StudentFormFrom(*draft))
					if err := f.Validate(); err != nil {
						return fail(err, "Invalid student")
					}
					f.ApplyTo(draft)
					saved, err := svc.Students.UpdateStudent(c.Context, *draft)
					if err != nil {
						return fail(err, "Failed to save student")
					}
					printStudent(c, saved)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a student",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, "student")
					if err != nil {
						return err
					}
					if err := servicesFor(c).Students.DeleteStudent(c.Context, id); err != nil {
						return fail(err, "Failed to delete student")
					}
					fmt.Fprintf(c.App.Writer, "Student %d deleted\n", id)
					return nil
				},
			},
		},
	}
}

func printStudent(c *cli.Context, s *models.Student) {
	w := table(c.App.Writer)
	fmt.Fprintf(w, "ID\t%d\n", s.ID)
	fmt.Fprintf(w, "Name\t%s\n", s.Name)
	fmt.Fprintf(w, "Email\t%s\n", s.Email)
	fmt.Fprintf(w, "Phone\t%s\n", s.Phone)
	_ = w.Flush()

	if len(s.Enrollments) == 0 {
		fmt.Fprintln(c.App.Writer, "\nNo enrollments")
		return
	}
	fmt.Fprintln(c.App.Writer)
	w = table(c.App.Writer)
	fmt.Fprintln(w, "ENROLLMENT\tCOURSE\tSTATUS\tSINCE")
	for _, e := range s.Enrollments {
		course := "-"
		if e.Course != nil {
			course = fmt.Sprintf("%s (#%d)", e.Course.Name, e.Course.ID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, course, e.Status, helpers.FormatDisplay(e.CreatedAt.Time))
	}
	_ = w.Flush()
}

package ctl

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yigit/skillhub/internal/app/forms"
	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/helpers"
)

func courseFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "course name", Required: required},
		&cli.StringFlag{Name: "description", Usage: "markdown description", Required: required},
		&cli.StringFlag{Name: "schedule", Usage: "start time, 2006-01-02T15:04 (UTC) or RFC 3339", Required: required},
		&cli.StringFlag{Name: "instructor", Usage: "instructor id, empty to unlink"},
	}
}

func courseForm(c *cli.Context, f forms.CourseForm) forms.CourseForm {
	if c.IsSet("name") {
		f.Name = c.String("name")
	}
	if c.IsSet("description") {
		f.Description = c.String("description")
	}
	if c.IsSet("schedule") {
		f.Schedule = c.String("schedule")
	}
	if c.IsSet("instructor") {
		f.InstructorID = c.String("instructor")
	}
	return f
}

func coursesCommand() *cli.Command {
	return &cli.Command{
		Name:  "courses",
		Usage: "list and edit courses",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all courses",
				Action: func(c *cli.Context) error {
					courses, err := servicesFor(c).Courses.ListCourses(c.Context)
					if err != nil {
						return fail(err, "Could not load courses")
					}
					if len(courses) == 0 {
						fmt.Fprintln(c.App.Writer, "No courses yet")
						return nil
					}
					w := table(c.App.Writer)
					fmt.Fprintln(w, "ID\tNAME\tINSTRUCTOR\tSCHEDULE")
					for _, course := range courses {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", course.ID, course.Name, instructorName(course), helpers.FormatDisplay(course.Schedule.Time))
					}
					return w.Flush()
				},
			},
			{
				Name:      "get",
				Usage:     "show a course and its enrollments",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, "course")
					if err != nil {
						return err
					}
					course, err := servicesFor(c).Courses.GetCourse(c.Context, id)
					if err != nil {
						return fail(err, "Could not load course")
					}
					printCourse(c, course)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create a course",
				Flags: courseFlags(true),
				Action: func(c *cli.Context) error {
					f := courseForm(c, forms.CourseForm{})
					if err := f.Validate(); err != nil {
						return fail(err, "Invalid course")
					}
					payload, err := f.Payload()
					if err != nil {
						return fail(err, "Invalid course")
					}
					created, err := servicesFor(c).Courses.CreateCourse(c.Context, payload)
					if err != nil {
						return fail(err, "Could not create course")
					}
					if created == nil {
						fmt.Fprintln(c.App.Writer, "Course created")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "Course created with id %d\n", created.ID)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "change the given fields of a course",
				Flags: append([]cli.Flag{idFlag("course")}, courseFlags(false)...),
				Action: func(c *cli.Context) error {
					id, err := idFlagValue(c, "course")
					if err != nil {
						return err
					}
					svc := servicesFor(c)
					draft, err := svc.Courses.GetCourse(c.Context, id)
					if err != nil {
						return fail(err, "Could not load course")
					}
					f := courseForm(c, forms.CourseFormFrom(*draft))
					if err := f.Validate(); err != nil {
						return fail(err, "Invalid course")
					}
					if err := f.ApplyTo(draft); err != nil {
						return fail(err, "Invalid course")
					}
					saved, err := svc.Courses.UpdateCourse(c.Context, *draft)
					if err != nil {
						return fail(err, "Failed to save course")
					}
					printCourse(c, saved)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a course",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, "course")
					if err != nil {
						return err
					}
					if err := servicesFor(c).Courses.DeleteCourse(c.Context, id); err != nil {
						return fail(err, "Failed to delete course")
					}
					fmt.Fprintf(c.App.Writer, "Course %d deleted\n", id)
					return nil
				},
			},
		},
	}
}

func instructorName(c models.Course) string {
	if c.Instructor == nil {
		return "-"
	}
	if c.Instructor.Name == "" {
		return fmt.Sprintf("#%d", c.Instructor.ID)
	}
	return c.Instructor.Name
}

func printCourse(c *cli.Context, course *models.Course) {
	w := table(c.App.Writer)
	fmt.Fprintf(w, "ID\t%d\n", course.ID)
	fmt.Fprintf(w, "Name\t%s\n", course.Name)
	fmt.Fprintf(w, "Instructor\t%s\n", instructorName(*course))
	fmt.Fprintf(w, "Schedule\t%s\n", helpers.FormatDisplay(course.Schedule.Time))
	_ = w.Flush()
	fmt.Fprintf(c.App.Writer, "\n%s\n", course.Description)

	if len(course.Enrollments) == 0 {
		fmt.Fprintln(c.App.Writer, "\nNo enrollments")
		return
	}
	fmt.Fprintln(c.App.Writer)
	w = table(c.App.Writer)
	fmt.Fprintln(w, "ENROLLMENT\tSTUDENT\tSTATUS\tSINCE")
	for _, e := range course.Enrollments {
		student := "-"
		if e.Student != nil {
			student = fmt.Sprintf("%s (#%d)", e.Student.Name, e.Student.ID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, student, e.Status, helpers.FormatDisplay(e.CreatedAt.Time))
	}
	_ = w.Flush()
}

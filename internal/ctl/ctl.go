// Package ctl implements skillhubctl, a command-line client for the SkillHub backend.
package ctl

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/yigit/skillhub/internal/app/forms"
	"github.com/yigit/skillhub/internal/app/services"
	"github.com/yigit/skillhub/internal/pkg/apiclient"
	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// NewApp builds the skillhubctl command tree writing to out.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "skillhubctl",
		Usage:     "manage students, courses and enrollments from the terminal",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "backend origin; requests go to {api-url}/api",
				EnvVars: []string{"API_BASE"},
			},
			&cli.StringFlag{
				Name:    "origin",
				Usage:   "fallback origin when --api-url is empty",
				EnvVars: []string{"API_ORIGIN"},
				Value:   "http://localhost:8000",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every backend request",
			},
		},
		Commands: []*cli.Command{
			studentsCommand(),
			coursesCommand(),
			enrollCommand(),
			unenrollCommand(),
		},
	}
}

// servicesFor builds the services from the global flags.
func servicesFor(c *cli.Context) *services.Services {
	base := c.String("api-url")
	if base == "" {
		base = c.String("origin")
	}

	level := zerolog.WarnLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	lgr := zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter, NoColor: true}).Level(level).With().Timestamp().Logger()

	return services.NewServices(apiclient.New(base, apiclient.WithLogger(lgr)), lgr)
}

// fail turns err into an exit error carrying the user-facing message.
func fail(err error, fallback string) error {
	return cli.Exit(apperrors.Message(err, fallback), 1)
}

func idArg(c *cli.Context, kind string) (int64, error) {
	if c.NArg() != 1 {
		return 0, cli.Exit(fmt.Sprintf("expected exactly one %s id", kind), 2)
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil || id <= 0 {
		return 0, cli.Exit(fmt.Sprintf("invalid %s id %q", kind, c.Args().First()), 2)
	}
	return id, nil
}

// idFlag carries the record id for commands that also take field flags,
// since flags after a positional argument are not parsed.
func idFlag(kind string) cli.Flag {
	return &cli.Int64Flag{Name: "id", Usage: kind + " id", Required: true}
}

func idFlagValue(c *cli.Context, kind string) (int64, error) {
	id := c.Int64("id")
	if id <= 0 {
		return 0, cli.Exit(fmt.Sprintf("invalid %s id %d", kind, id), 2)
	}
	return id, nil
}

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func enrollCommand() *cli.Command {
	return &cli.Command{
		Name:  "enroll",
		Usage: "enroll a student in one or more courses",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "student", Usage: "student id", Required: true},
			&cli.StringFlag{Name: "courses", Usage: "comma-separated course ids", Required: true},
		},
		Action: func(c *cli.Context) error {
			svc := servicesFor(c)
			courseIDs, err := forms.ParseCourseIDs(c.String("courses"))
			if err != nil {
				return fail(err, "Invalid course ids")
			}
			if err := svc.Enrollments.Enroll(c.Context, c.Int64("student"), courseIDs); err != nil {
				return fail(err, "Could not add enrollment")
			}
			fmt.Fprintf(c.App.Writer, "Enrolled student %d in %d course(s)\n", c.Int64("student"), len(courseIDs))
			return nil
		},
	}
}

func unenrollCommand() *cli.Command {
	return &cli.Command{
		Name:      "unenroll",
		Usage:     "remove an enrollment",
		ArgsUsage: "ENROLLMENT_ID",
		Action: func(c *cli.Context) error {
			id, err := idArg(c, "enrollment")
			if err != nil {
				return err
			}
			if err := servicesFor(c).Enrollments.DeleteEnrollment(c.Context, id); err != nil {
				return fail(err, "Could not remove enrollment")
			}
			fmt.Fprintf(c.App.Writer, "Enrollment %d removed\n", id)
			return nil
		},
	}
}

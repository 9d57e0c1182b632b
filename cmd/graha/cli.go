package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ssanyal/graha/internal/config"
	"github.com/ssanyal/graha/internal/errors"
	"github.com/ssanyal/graha/internal/ops"
	"github.com/ssanyal/graha/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "graha",
		Usage:   "Sidereal dignity & numerology engine",
		Version: Version,
		Commands: []*cli.Command{
			numerologyCmd(db, cfg),
			chartCmd(db, cfg),
			dignityCmd(db, cfg),
			analyzeCmd(db, cfg),
			temporalCmd(db, cfg),
			historyCmd(db, cfg),
			fetchCmd(db, cfg),
			deleteCmd(db, cfg),
			exportCmd(db, cfg, baseDir),
			reportCmd(db, cfg),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// birthFlags are the flags shared by every chart-bearing command.
func birthFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "birth", Aliases: []string{"b"}, Required: true, Usage: "Birth date and time (RFC3339 or YYYY-MM-DDTHH:MM in the configured timezone; a bare date is taken at local noon)"},
		&cli.Float64Flag{Name: "lat", Usage: "Birth latitude in degrees (default: configured location)"},
		&cli.Float64Flag{Name: "lon", Usage: "Birth longitude in degrees (default: configured location)"},
		&cli.StringFlag{Name: "ayanamsa", Aliases: []string{"a"}, Usage: "Ayanamsa system (default: configured system)"},
	}
}

// birthInput assembles the shared birth input from flags.
func birthInput(c *cli.Context) ops.BirthInput {
	input := ops.BirthInput{
		BirthTime: c.String("birth"),
		Ayanamsa:  c.String("ayanamsa"),
	}
	if c.IsSet("lat") {
		lat := c.Float64("lat")
		input.Latitude = &lat
	}
	if c.IsSet("lon") {
		lon := c.Float64("lon")
		input.Longitude = &lon
	}
	return input
}

// numerologyCmd creates the numerology command.
func numerologyCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "numerology",
		Usage: "Compute Mulanka and Bhagyanka for a birth",
		Flags: append(birthFlags(),
			&cli.BoolFlag{Name: "skip-sunrise", Usage: "Disable the sunrise day-boundary correction"},
			&cli.BoolFlag{Name: "save", Usage: "Persist the reading"},
		),
		Action: func(c *cli.Context) error {
			output, err := ops.Numerology(c.Context, db, cfg, ops.NumerologyInput{
				BirthInput:            birthInput(c),
				SkipSunriseCorrection: c.Bool("skip-sunrise"),
				Save:                  c.Bool("save"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// chartCmd creates the chart command.
func chartCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "chart",
		Usage: "Cast a sidereal birth chart",
		Flags: append(birthFlags(),
			&cli.StringFlag{Name: "house-system", Usage: "House system: placidus|equal|whole_sign"},
			&cli.BoolFlag{Name: "save", Usage: "Persist the chart"},
		),
		Action: func(c *cli.Context) error {
			output, err := ops.Chart(c.Context, db, cfg, ops.ChartInput{
				BirthInput:  birthInput(c),
				HouseSystem: c.String("house-system"),
				Save:        c.Bool("save"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// dignityCmd creates the dignity command.
func dignityCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "dignity",
		Usage: "Score planetary dignity in the birth chart",
		Flags: append(birthFlags(),
			&cli.StringFlag{Name: "planet", Aliases: []string{"p"}, Usage: "Limit to one graha (English or Sanskrit name)"},
			&cli.BoolFlag{Name: "save", Usage: "Persist the evaluation"},
		),
		Action: func(c *cli.Context) error {
			output, err := ops.Dignity(c.Context, db, cfg, ops.DignityInput{
				BirthInput: birthInput(c),
				Planet:     c.String("planet"),
				Save:       c.Bool("save"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// analyzeCmd creates the analyze command.
func analyzeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Full reading: numbers, chart, dignity, and support verdict",
		Flags: append(birthFlags(),
			&cli.BoolFlag{Name: "skip-sunrise", Usage: "Disable the sunrise day-boundary correction"},
			&cli.BoolFlag{Name: "no-save", Usage: "Compute without persisting"},
		),
		Action: func(c *cli.Context) error {
			output, err := ops.Analyze(c.Context, db, cfg, ops.AnalyzeInput{
				BirthInput:            birthInput(c),
				SkipSunriseCorrection: c.Bool("skip-sunrise"),
				NoSave:                c.Bool("no-save"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// temporalCmd creates the temporal command.
func temporalCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "temporal",
		Usage: "Generate daily score series over a date range",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Required: true, Usage: "Start date, YYYY-MM-DD, inclusive"},
			&cli.StringFlag{Name: "end", Required: true, Usage: "End date, YYYY-MM-DD, inclusive"},
			&cli.Float64Flag{Name: "lat", Usage: "Latitude in degrees (default: configured location)"},
			&cli.Float64Flag{Name: "lon", Usage: "Longitude in degrees (default: configured location)"},
			&cli.StringFlag{Name: "ayanamsa", Aliases: []string{"a"}, Usage: "Ayanamsa system (default: configured system)"},
			&cli.BoolFlag{Name: "no-save", Usage: "Compute without persisting"},
		},
		Action: func(c *cli.Context) error {
			input := ops.TemporalInput{
				StartDate: c.String("start"),
				EndDate:   c.String("end"),
				Ayanamsa:  c.String("ayanamsa"),
				NoSave:    c.Bool("no-save"),
			}
			if c.IsSet("lat") {
				lat := c.Float64("lat")
				input.Latitude = &lat
			}
			if c.IsSet("lon") {
				lon := c.Float64("lon")
				input.Longitude = &lon
			}

			output, err := ops.Temporal(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List stored readings newest-first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Usage: "Filter: numerology|chart|dignity|analysis|temporal"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.History(c.Context, db, cfg, ops.HistoryInput{
				Kind:   c.String("kind"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a stored reading or temporal run by ID",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "planet", Aliases: []string{"p"}, Usage: "For temporal runs: filter points to one graha"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("record ID is required"))
			}

			output, err := ops.Fetch(c.Context, db, cfg, ops.FetchInput{
				ID:     c.Args().First(),
				Planet: c.String("planet"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a stored reading or temporal run by ID",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("record ID is required"))
			}

			output, err := ops.Delete(c.Context, db, cfg, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a temporal run to a CSV or JSON file",
		ArgsUsage: "<run-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "csv", Usage: "Export format: csv|json"},
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Output file path (default: <base>/exports/temporal-<id>.<ext>)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewValidation("run ID is required"))
			}

			output, err := ops.Export(c.Context, db, cfg, ops.ExportInput{
				RunID:   c.Args().First(),
				Format:  ops.ExportFormat(c.String("format")),
				Path:    c.String("path"),
				BaseDir: baseDir,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// reportCmd creates the report command.
func reportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Render a report for a stored analysis or a fresh birth",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "birth", Aliases: []string{"b"}, Usage: "Birth date and time for a fresh report"},
			&cli.Float64Flag{Name: "lat", Usage: "Birth latitude in degrees"},
			&cli.Float64Flag{Name: "lon", Usage: "Birth longitude in degrees"},
			&cli.StringFlag{Name: "ayanamsa", Aliases: []string{"a"}, Usage: "Ayanamsa system"},
			&cli.BoolFlag{Name: "skip-sunrise", Usage: "Disable the sunrise day-boundary correction"},
			&cli.BoolFlag{Name: "html", Usage: "Emit HTML instead of markdown"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ReportInput{
				BirthInput:            birthInput(c),
				SkipSunriseCorrection: c.Bool("skip-sunrise"),
				HTML:                  c.Bool("html"),
			}
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}

			output, err := ops.Report(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			// Reports are meant to be read, not parsed.
			if c.Bool("html") {
				fmt.Println(output.HTML)
			} else {
				fmt.Println(output.Markdown)
			}
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8787, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if ge, ok := err.(*errors.GrahaError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", ge.Code, ge.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

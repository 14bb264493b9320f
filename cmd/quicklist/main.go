package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/nhle/quicklist/internal/config"
	"github.com/nhle/quicklist/internal/importer"
	"github.com/nhle/quicklist/internal/model"
	"github.com/nhle/quicklist/internal/store"
)

type flags struct {
	ConfigPath string
	DBPath     string
	LogLevel   string
	LogFile    string
}

func main() {
	ctx := context.Background()

	var (
		records   *store.RecordStore
		logCloser = func() {}
	)

	f := &flags{}

	app := &cli.Command{
		Name:      "quicklist",
		Usage:     "Local todo list with full-text search",
		UsageText: "quicklist [global options] command [command options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("QUICKLIST_CONFIG"),
				Value:       config.DefaultConfigPath(),
				Destination: &f.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "db",
				Usage:       "path to the database file (overrides config)",
				Sources:     cli.EnvVars("QUICKLIST_DB"),
				Destination: &f.DBPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("QUICKLIST_LOG_LEVEL"),
				Value:       "info",
				Destination: &f.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("QUICKLIST_LOG_FILE"),
				Destination: &f.LogFile,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := newLogger(f.LogLevel, f.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(f.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			dbPath := cfg.Database.Path
			if f.DBPath != "" {
				dbPath = f.DBPath
			}
			if dbPath != ":memory:" {
				if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
					return ctx, fmt.Errorf("create data dir: %w", err)
				}
			}

			records, err = store.OpenRecordStore(ctx, dbPath)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}
			log.Debug().Str("path", dbPath).Msg("database opened")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if records != nil {
				if err := records.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}
			logCloser()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all records in creation order",
				Action: func(ctx context.Context, c *cli.Command) error {
					recs, err := records.ListAll(ctx)
					if err != nil {
						return err
					}
					printRecords(recs)

					if len(recs) > 0 {
						done, err := records.CountCompleted(ctx)
						if err != nil {
							return err
						}
						fmt.Printf("%d/%d done\n", done, len(recs))
					}
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Add a record",
				ArgsUsage: "<description>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "priority",
						Aliases: []string{"p"},
						Usage:   fmt.Sprintf("priority (0-%d)", model.PriorityLevels-1),
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					desc := strings.Join(c.Args().Slice(), " ")
					if err := records.Add(ctx, desc, int(c.Int("priority"))); err != nil {
						return err
					}
					log.Info().Str("description", desc).Msg("record added")
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "Bulk-add records from a newline-delimited file",
				ArgsUsage: "<file>",
				Commands: []*cli.Command{
					{
						Name:  "history",
						Usage: "Show past import batches",
						Action: func(ctx context.Context, c *cli.Command) error {
							batches, err := records.Imports(ctx)
							if err != nil {
								return err
							}
							for _, b := range batches {
								fmt.Printf("%s  %4d records  %s\n",
									b.CreatedAt.Format("2006-01-02 15:04"), b.Count, b.ID)
							}
							return nil
						},
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					lines, err := importer.ReadFile(c.Args().First())
					if err != nil {
						return err
					}
					if err := records.AddMany(ctx, lines); err != nil {
						return err
					}
					fmt.Printf("imported %d records\n", len(lines))
					return nil
				},
			},
			{
				Name:      "done",
				Usage:     "Mark a record completed",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := parseID(c)
					if err != nil {
						return err
					}
					return records.Complete(ctx, id)
				},
			},
			{
				Name:      "undone",
				Usage:     "Mark a record active again",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := parseID(c)
					if err != nil {
						return err
					}
					return records.Uncomplete(ctx, id)
				},
			},
			{
				Name:      "bump",
				Usage:     "Cycle a record's priority",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := parseID(c)
					if err != nil {
						return err
					}
					recs, err := records.ListAll(ctx)
					if err != nil {
						return err
					}
					for _, r := range recs {
						if r.ID == id {
							return records.SetPriority(ctx, id, r.Priority+1)
						}
					}
					return fmt.Errorf("record %d not found", id)
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete a record",
				ArgsUsage: "<id>",
				Action: func(ctx context.Context, c *cli.Command) error {
					id, err := parseID(c)
					if err != nil {
						return err
					}
					return records.Delete(ctx, id)
				},
			},
			{
				Name:      "search",
				Usage:     "Full-text search over record descriptions",
				ArgsUsage: "<term>",
				Action: func(ctx context.Context, c *cli.Command) error {
					recs, err := records.Search(ctx, strings.Join(c.Args().Slice(), " "))
					if err != nil {
						return err
					}
					printRecords(recs)
					return nil
				},
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// newLogger returns a logger writing to the given file, or a console
// writer on stderr when no file is set.
func newLogger(level, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var l zerolog.Logger
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}
		osFile, err := os.Create(file)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		l = zerolog.New(osFile)
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return l.With().Timestamp().Logger().Level(lvl), closer, nil
}

func parseID(c *cli.Command) (int64, error) {
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expected a numeric record id, got %q", c.Args().First())
	}
	return id, nil
}

func printRecords(recs []model.Record) {
	if len(recs) == 0 {
		fmt.Println("nothing to do")
		return
	}
	for _, r := range recs {
		mark := " "
		if r.Completed() {
			mark = "x"
		}
		fmt.Printf("%4d [%s] %s %s\n",
			r.ID, mark, strings.Repeat("!", r.Priority), r.Description)
	}
}

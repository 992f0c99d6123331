package main

import (
	"context"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"flightlog-reconciler/internal/app"
	"flightlog-reconciler/internal/domain/entity"
	"flightlog-reconciler/internal/infrastructure/config"
	"flightlog-reconciler/pkg/logger"
	"flightlog-reconciler/pkg/report"
)

type buildFunc func(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.App, error)

type cli struct {
	date      string
	tolerance int
	logLevel  string

	loadConfig func() (*config.Config, error)
	build      buildFunc
}

func newCLI() *cli {
	return &cli{
		loadConfig: config.LoadConfig,
		build: func(ctx context.Context, cfg *config.Config, log logger.Logger) (*app.App, error) {
			// metrics are only scraped from the service
			return app.New(ctx, cfg, log, prometheus.NewRegistry())
		},
	}
}

func (c *cli) root() *cobra.Command {
	root := &cobra.Command{
		Use:   "flightcheck",
		Short: "Cross-check the daily flight logs",
		Long: `flightcheck fetches one day of flights from GlidingApp, KTrax and the
Aerolog export, normalizes them and lists the launches that one log
has and another does not.

Sources are configured through the same environment variables (or .env
file) as the service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&c.date, "date", "d", "", "flight date YYYY-MM-DD (default today)")
	root.PersistentFlags().IntVar(&c.tolerance, "tolerance", 0, "takeoff tolerance in seconds (default MATCH_TOLERANCE_SECONDS)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(c.compareCmd(), c.listCmd(), c.aliasCmd(), c.versionCmd())
	return root
}

// open loads the configuration, applies flag overrides and builds the app
func (c *cli) open(ctx context.Context, validate bool) (*app.App, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if c.tolerance > 0 {
		cfg.MatchTolerance = time.Duration(c.tolerance) * time.Second
	}
	// one-shot runs gain nothing from the fetch cache
	cfg.SourceCacheTTL = 0
	return c.build(ctx, cfg, logger.NewLoggerWithLevel(c.logLevel))
}

func (c *cli) dateFor(a *app.App) string {
	if c.date != "" {
		return c.date
	}
	return a.Processor.Today()
}

func (c *cli) compareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare every configured source and print the differences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			rec, err := a.Processor.Reconcile(cmd.Context(), c.dateFor(a))
			if err != nil {
				return err
			}
			return report.WriteReconciliation(cmd.OutOrStdout(), rec)
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	var group, includeTows, notesOnly bool

	cmd := &cobra.Command{
		Use:   "list <ga|kt|al>",
		Short: "List the flights of one source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, ok := entity.ParseSource(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", entity.ErrUnknownSource, args[0])
			}

			a, err := c.open(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			date := c.dateFor(a)
			flights, err := a.Processor.Flights(cmd.Context(), source, date)
			if err != nil {
				return err
			}
			return report.WriteFlights(cmd.OutOrStdout(), flights, report.Options{
				Title:             fmt.Sprintf("%s flights on %s", source.DisplayName(), date),
				IncludeTows:       includeTows,
				NotesOnly:         notesOnly,
				GroupByLaunchType: group,
			})
		},
	}

	cmd.Flags().BoolVar(&group, "group", true, "group flights by launch type")
	cmd.Flags().BoolVar(&includeTows, "include-tows", false, "include tug flights")
	cmd.Flags().BoolVar(&notesOnly, "notes-only", false, "only flights that carry a note")
	return cmd
}

func (c *cli) aliasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage the stored callsign aliases (needs POSTGRES_DSN)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <callsign> <canonical>",
		Short: "Map a callsign variant to a canonical aircraft id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openAliases(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if err := a.AliasRepo.Save(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the stored aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openAliases(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			aliases, err := a.AliasRepo.List(cmd.Context())
			if err != nil {
				return err
			}
			table := tablewriter.NewTable(cmd.OutOrStdout())
			table.Header("Callsign", "Canonical")
			for _, alias := range aliases {
				if err := table.Append(alias.Callsign, alias.Canonical); err != nil {
					return err
				}
			}
			return table.Render()
		},
	})
	return cmd
}

func (c *cli) openAliases(ctx context.Context) (*app.App, error) {
	a, err := c.open(ctx, false)
	if err != nil {
		return nil, err
	}
	if a.AliasRepo == nil {
		a.Close(context.Background())
		return nil, fmt.Errorf("POSTGRES_DSN must be set to manage aliases")
	}
	return a, nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flightcheck %s\n", version)
		},
	}
}

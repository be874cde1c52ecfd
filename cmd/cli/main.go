package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stbarnabas/serveteam/internal/config"
	"github.com/stbarnabas/serveteam/pkg/clients/calendarclient"
	"github.com/stbarnabas/serveteam/pkg/core/services"
	"github.com/stbarnabas/serveteam/pkg/db"
	"github.com/stbarnabas/serveteam/pkg/export"
	"github.com/stbarnabas/serveteam/pkg/postgres"
	"github.com/stbarnabas/serveteam/pkg/utils/logging"
)

const dateLayout = "2006-01-02"

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	configPath string
	verbose    bool
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "serveteam",
		Short: "ServeTeam CLI - Assign people to serving roles",
		Long:  `A CLI tool for seeding events, generating role assignments, and publishing serving rotas.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Name())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: serveteam.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug output on the console")

	rootCmd.AddCommand(seedEventsCmd())
	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(viewSolutionCmd())
	rootCmd.AddCommand(verifyCmd())
	rootCmd.AddCommand(exportCsvCmd())
	rootCmd.AddCommand(publishCalendarCmd())
	rootCmd.AddCommand(listPeopleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp(command string) error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(command, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Debug("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.logger.Debug("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Debug("Database ready")

	return nil
}

// windowFlags parses the --from/--until flags, defaulting to the next 28 days
func windowFlags(cmd *cobra.Command) (time.Time, time.Time, error) {
	fromStr, _ := cmd.Flags().GetString("from")
	untilStr, _ := cmd.Flags().GetString("until")

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 28)

	var err error
	if fromStr != "" {
		from, err = time.Parse(dateLayout, fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from date (want YYYY-MM-DD): %w", err)
		}
		until = from.AddDate(0, 0, 28)
	}
	if untilStr != "" {
		until, err = time.Parse(dateLayout, untilStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --until date (want YYYY-MM-DD): %w", err)
		}
		// Include events starting any time on the until date
		until = until.AddDate(0, 0, 1).Add(-time.Second)
	}

	return from, until, nil
}

// Command definitions

func seedEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seedEvents",
		Short: "Expand the configured event series into concrete events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, until, err := windowFlags(cmd)
			if err != nil {
				return err
			}

			result, err := services.SeedEvents(app.ctx, app.database, app.cfg, app.logger, from, until)
			if err != nil {
				return err
			}

			fmt.Printf("\nSeeded %d events (%d already existed)\n\n", len(result.Created), result.Skipped)
			for _, event := range result.Created {
				fmt.Printf("  %s  %s (%d role-slots)\n",
					event.StartsAt.Format("2006-01-02 15:04"), event.Name, totalSlots(event.Requirements))
			}

			return nil
		},
	}

	cmd.Flags().String("from", "", "Window start date YYYY-MM-DD (default: today)")
	cmd.Flags().String("until", "", "Window end date YYYY-MM-DD (default: 28 days from start)")

	return cmd
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Generate a new solution assigning people to role-slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, until, err := windowFlags(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.GenerateSolution(app.ctx, app.database, app.cfg, app.logger, services.GenerateOptions{
				From:   from,
				Until:  until,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			solution := result.Solution
			fmt.Printf("\nSolution %s\n\n", solution.ID)
			fmt.Printf("Assignments:     %d\n", solution.AssignmentCount)
			fmt.Printf("Unfilled slots:  %d\n", solution.UnfilledSlotCount)
			fmt.Printf("Fairness spread: %d\n", solution.FairnessSpread)
			if solution.Incomplete {
				fmt.Printf("Search budget exhausted - result completed with the greedy fallback\n")
			}

			for _, slot := range solution.Unfilled {
				fmt.Printf("  ! %s %s: %s\n", slot.EventID, slot.Role, slot.Reason)
			}

			if dryRun {
				fmt.Printf("\nDry run - solution not saved\n")
			} else {
				fmt.Printf("\nSaved. View it with: serveteam viewSolution %s\n", solution.ID)
			}

			return nil
		},
	}

	cmd.Flags().String("from", "", "Window start date YYYY-MM-DD (default: today)")
	cmd.Flags().String("until", "", "Window end date YYYY-MM-DD (default: 28 days from start)")
	cmd.Flags().Bool("dry-run", false, "Solve without saving the solution")

	return cmd
}

func viewSolutionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "viewSolution [solution_id]",
		Short: "Show a solution's assignments (defaults to the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var solutionID string
			if len(args) > 0 {
				solutionID = args[0]
			}

			view, err := services.ViewSolution(app.ctx, app.database, app.cfg.OrganizationID, solutionID, app.logger)
			if err != nil {
				return err
			}

			printSolutionView(view)
			return nil
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [solution_id]",
		Short: "Audit a stored solution against the current data (defaults to the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var solutionID string
			if len(args) > 0 {
				solutionID = args[0]
			}

			result, err := services.VerifySolution(app.ctx, app.database, app.cfg, app.logger, solutionID)
			if err != nil {
				return err
			}

			if len(result.Violations) == 0 {
				fmt.Printf("\nSolution %s is sound\n", result.SolutionID)
				return nil
			}

			fmt.Printf("\nSolution %s has %d violations:\n\n", result.SolutionID, len(result.Violations))
			for _, v := range result.Violations {
				fmt.Printf("  ! %s\n", v.Description)
			}

			return fmt.Errorf("%d violations found", len(result.Violations))
		},
	}
}

func exportCsvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportCsv [solution_id]",
		Short: "Export a solution as CSV (defaults to the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var solutionID string
			if len(args) > 0 {
				solutionID = args[0]
			}

			view, err := services.ViewSolution(app.ctx, app.database, app.cfg.OrganizationID, solutionID, app.logger)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				return export.WriteSolutionCSV(os.Stdout, view)
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer file.Close()

			if err := export.WriteSolutionCSV(file, view); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().String("out", "", "Output file (default: stdout)")

	return cmd
}

func publishCalendarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publishCalendar [solution_id]",
		Short: "Publish a solution to the configured Google Calendar (defaults to the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var solutionID string
			if len(args) > 0 {
				solutionID = args[0]
			}

			oauthCfg, err := config.LoadOAuthClient()
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			client, err := calendarclient.NewClient(app.ctx, oauthCfg)
			if err != nil {
				return fmt.Errorf("failed to create calendar client: %w", err)
			}

			result, err := services.PublishCalendar(app.ctx, app.database, client, app.cfg, app.logger, solutionID)
			if err != nil {
				return err
			}

			fmt.Printf("\nPublished %d events from solution %s to %s\n",
				len(result.CalendarEventIDs), result.SolutionID, app.cfg.CalendarID)

			return nil
		},
	}
}

func listPeopleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listPeople",
		Short: "List the organization's serving roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := app.database.GetPeople(app.ctx, app.cfg.OrganizationID)
			if err != nil {
				return fmt.Errorf("failed to list people: %w", err)
			}

			fmt.Printf("\nFound %d people:\n\n", len(people))
			for _, p := range people {
				fmt.Printf("- %s (%s)", p.Name, p.ID)
				if len(p.Capabilities) > 0 {
					fmt.Printf(" - %v", p.Capabilities)
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func printSolutionView(view *services.SolutionView) {
	solution := view.Solution
	fmt.Printf("\nSolution %s (created %s)\n\n", solution.ID, solution.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Assignments:     %d\n", solution.AssignmentCount)
	fmt.Printf("Unfilled slots:  %d\n", solution.UnfilledSlotCount)
	fmt.Printf("Fairness spread: %d\n\n", solution.FairnessSpread)

	for _, a := range view.Assignments {
		name := a.PersonID
		if person, ok := view.People[a.PersonID]; ok {
			name = person.Name
		}
		eventLabel := a.EventID
		if event, ok := view.Events[a.EventID]; ok {
			eventLabel = fmt.Sprintf("%s %s", event.StartsAt.Format("2006-01-02 15:04"), event.Name)
		}
		fmt.Printf("  %s  %-12s %s\n", eventLabel, a.Role, name)
	}

	for _, u := range view.Unfilled {
		eventLabel := u.EventID
		if event, ok := view.Events[u.EventID]; ok {
			eventLabel = fmt.Sprintf("%s %s", event.StartsAt.Format("2006-01-02 15:04"), event.Name)
		}
		fmt.Printf("  %s  %-12s UNFILLED (%s)\n", eventLabel, u.Role, u.Reason)
	}
	fmt.Println()
}

func totalSlots(requirements []db.RoleRequirement) int {
	total := 0
	for _, r := range requirements {
		total += r.HeadCount
	}
	return total
}

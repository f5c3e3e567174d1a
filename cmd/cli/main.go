package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/brightwater-rehab/scheduler/internal/config"
	"github.com/brightwater-rehab/scheduler/pkg/core/services"
	"github.com/brightwater-rehab/scheduler/pkg/postgres"
	"github.com/brightwater-rehab/scheduler/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Brightwater scheduler CLI - Manage therapist shift schedules",
		Long:  `A CLI tool for generating, validating and publishing therapist shift schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
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

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(listCyclesCmd())
	rootCmd.AddCommand(listTherapistsCmd())
	rootCmd.AddCommand(generateScheduleCmd())
	rootCmd.AddCommand(validateCycleCmd())
	rootCmd.AddCommand(weeklyReportCmd())
	rootCmd.AddCommand(publishCycleCmd())
	rootCmd.AddCommand(addOverrideCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// Initialize logger
	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	// Connect to the database
	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Info("Database connected successfully")

	return nil
}

// Command definitions

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Println("\n✓ Migrations applied")
			return nil
		},
	}
}

func listCyclesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listCycles",
		Short: "List all schedule cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cycles, err := app.database.GetCycles(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list cycles: %w", err)
			}

			fmt.Printf("\nFound %d cycles:\n\n", len(cycles))
			for _, c := range cycles {
				status := "draft"
				if c.Published {
					status = "published"
				}
				fmt.Printf("- %s  %s..%s  [%s]  %s\n", c.ID, c.StartDate, c.EndDate, status, c.Label)
			}
			fmt.Println()
			return nil
		},
	}
}

func listTherapistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listTherapists",
		Short: "List the therapist roster with normalized limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			therapists, err := services.ListTherapists(app.ctx, app.database, app.cfg, app.logger)
			if err != nil {
				return fmt.Errorf("failed to list therapists: %w", err)
			}

			fmt.Printf("\nFound %d therapists:\n\n", len(therapists))
			for _, t := range therapists {
				flags := ""
				if t.LeadEligible {
					flags += " [lead]"
				}
				if !t.Active {
					flags += " [inactive]"
				}
				if t.OnLeave {
					flags += " [on leave]"
				}
				fmt.Printf("- %s (%s) - %s/%s - limit %d/wk%s\n",
					t.FullName(),
					t.ID,
					t.Category,
					t.PrimaryShift,
					t.WeeklyLimit,
					flags,
				)
			}
			fmt.Println()
			return nil
		},
	}
}

func generateScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <cycle_id>",
		Short: "Fill every under-covered slot of a cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")

			result, err := services.GenerateSchedule(app.ctx, app.database, app.cfg, app.logger, args[0], dryRun, force)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Generation completed for %q\n\n", result.CycleLabel)
			fmt.Printf("New assignments: %d\n", len(result.NewAssignments))
			fmt.Printf("Unfilled slots:  %d\n", len(result.UnfilledSlots))
			for _, slot := range result.UnfilledSlots {
				fmt.Printf("  ✗ %s\n", slot)
			}

			printCoverage(result.Coverage.TotalViolations, result.Coverage.Issues)
			printWeekly(result.Weekly, nil)

			switch {
			case result.Saved:
				fmt.Println("\n✓ Assignments saved.")
			case dryRun:
				fmt.Println("\nDry run - nothing saved.")
			case len(result.NewAssignments) == 0:
				fmt.Println("\nNothing to save - every slot already covered.")
			default:
				fmt.Println("\n⚠ Violations remain - not saved. Re-run with --force to save anyway.")
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")
	cmd.Flags().Bool("force", false, "Save even when validation reports violations")

	return cmd
}

func validateCycleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validateCycle <cycle_id>",
		Short: "Check every slot of a cycle for coverage and leadership violations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ValidateCycle(app.ctx, app.database, app.cfg, app.logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nValidation report for %q\n", result.CycleLabel)
			printCoverage(result.Coverage.TotalViolations, result.Coverage.Issues)
			if result.Coverage.TotalViolations == 0 {
				fmt.Println("\n✓ Cycle is clean.")
			}
			return nil
		},
	}
}

func weeklyReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weeklyReport <cycle_id>",
		Short: "Compare worked days per therapist-week against weekly limits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.WeeklyReport(app.ctx, app.database, app.cfg, app.logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nWeekly report for %q\n", result.CycleLabel)
			printWeekly(result.Summary, result.Names)
			if result.Summary.Violations == 0 {
				fmt.Println("\n✓ Every therapist-week is within limits.")
			}
			return nil
		},
	}
}

func publishCycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishCycle <cycle_id>",
		Short: "Publish a cycle once it passes validation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			result, err := services.PublishCycle(app.ctx, app.database, app.cfg, app.logger, args[0], force)
			if err != nil {
				return err
			}

			if !result.Published {
				fmt.Printf("\n⚠ Publish blocked: %d violations outstanding in %q.\n", result.Violations, result.CycleLabel)
				printCoverage(result.Coverage.TotalViolations, result.Coverage.Issues)
				printWeekly(result.Weekly, nil)
				fmt.Println("\nRe-run with --force to publish anyway.")
				return nil
			}

			if result.Forced {
				fmt.Printf("\n✓ Cycle %q published (forced past %d violations).\n", result.CycleLabel, result.Violations)
			} else {
				fmt.Printf("\n✓ Cycle %q published.\n", result.CycleLabel)
			}
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Publish even when validation reports violations")

	return cmd
}

func addOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addOverride <cycle_id> <therapist_id> <date>",
		Short: "Record an availability override for one therapist and date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, _ := cmd.Flags().GetString("scope")
			overrideType, _ := cmd.Flags().GetString("type")
			source, _ := cmd.Flags().GetString("source")
			note, _ := cmd.Flags().GetString("note")
			actor, _ := cmd.Flags().GetString("actor")

			override, err := services.AddOverride(app.ctx, app.database, app.logger, services.AddOverrideInput{
				CycleID:          args[0],
				TherapistID:      args[1],
				Date:             args[2],
				Scope:            scope,
				Type:             overrideType,
				Source:           source,
				Note:             note,
				ActorTherapistID: actor,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Override saved\n\n")
			fmt.Printf("ID:        %s\n", override.ID)
			fmt.Printf("Therapist: %s\n", override.TherapistID)
			fmt.Printf("Date:      %s (%s)\n", args[2], override.Scope)
			fmt.Printf("Type:      %s\n", override.Type)
			if override.Note != "" {
				fmt.Printf("Note:      %s\n", override.Note)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().String("scope", "both", "Shift scope: day, night or both")
	cmd.Flags().String("type", "force_off", "Override type: force_on or force_off")
	cmd.Flags().String("source", "manager", "Who entered it: manager or therapist")
	cmd.Flags().String("note", "", "Free-text reason")
	cmd.Flags().String("actor", "", "Therapist ID performing the change (empty for managers)")

	return cmd
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (connect once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands without reconnecting.
The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			// Get all sibling commands (excluding interactive itself)
			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts := strings.Fields(line)
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Goodbye!")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				// Reset command flags and args
				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				// Execute the command's RunE directly, bypassing the full Execute() flow
				// This avoids re-running PersistentPreRunE which would reconnect
				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("Error parsing flags: %v\n\n", err)
					continue
				}

				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("Error: %v\n\n", err)
					continue
				}

				if targetCmd.RunE != nil {
					if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
						fmt.Printf("Error: %v\n\n", err)
					}
				} else if targetCmd.Run != nil {
					targetCmd.Run(targetCmd, cmdArgs)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	for _, sub := range commands {
		fmt.Printf("  %-40s %s\n", sub.Use, sub.Short)
	}

	fmt.Println("\n  help                                     Show this help message")
	fmt.Println("  exit, quit                               Exit the interactive session")
}

package cmd

import (
	"context"
	"fmt"

	"asset-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the cache stores",
	Long:  `Checks the persisted manifest, the cached shell, stale entries and, with the sql backend, the database schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), checkAll)
	},
}

var manifestCheckCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Compare the persisted manifest with the build",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkManifest)
	},
}

var shellCheckCmd = &cobra.Command{
	Use:   "shell",
	Short: "Check and fix the cached shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkShell)
	},
}

var staleCheckCmd = &cobra.Command{
	Use:   "stale",
	Short: "List the entries the next activation would evict",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkStale)
	},
}

var serverCheckCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the sql cache schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), checkServer)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(manifestCheckCmd, shellCheckCmd, staleCheckCmd, serverCheckCmd)

	shellCheckCmd.Flags().BoolVar(&fixFlag, "fix", false, "Refetch missing shell resources")
}

type integrityCheck int

const (
	checkAll integrityCheck = iota
	checkManifest
	checkShell
	checkStale
	checkServer
)

func runIntegrityChecks(ctx context.Context, only integrityCheck) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	logg := a.logger

	svc := integrity.NewService(a.sync, a.db, logg)
	run := func(c integrityCheck) bool { return only == checkAll || only == c }

	if run(checkManifest) {
		logg.Info("Checking persisted manifest...")
		report, err := svc.CheckManifest(ctx)
		if err != nil {
			return fmt.Errorf("manifest check failed: %w", err)
		}
		switch report.Status {
		case "ok":
			logg.Info("Persisted manifest matches the build.", zap.String("version", report.Version))
		case "error":
			logg.Error("Persisted manifest is unreadable", zap.String("error", report.Error))
		default:
			logg.Warn("Persisted manifest differs from the build",
				zap.Bool("present", report.Present),
				zap.Strings("added", report.Added),
				zap.Strings("removed", report.Removed),
				zap.Strings("changed", report.Changed))
		}
	}

	if run(checkShell) {
		logg.Info("Checking cached shell...")
		missing, err := svc.CheckShell(ctx)
		if err != nil {
			return fmt.Errorf("shell check failed: %w", err)
		}

		if len(missing) == 0 {
			logg.Info("Shell is intact.")
		} else {
			logg.Warn("Missing shell resources detected", zap.Strings("missing", missing))

			if only == checkShell && fixFlag {
				logg.Info("Refetching missing shell resources...")
				if err := svc.FixShell(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix shell: %w", err)
				}
				logg.Info("Shell fixed successfully.")
			} else if only == checkShell {
				logg.Info("Run with --fix to refetch missing shell resources.")
			}
		}
	}

	if run(checkStale) {
		logg.Info("Checking stale entries...")
		plan, err := svc.CheckStale(ctx)
		if err != nil {
			return fmt.Errorf("stale check failed: %w", err)
		}
		for _, action := range plan.Evictions() {
			logg.Warn("Stale entry", zap.String("key", action.Key), zap.String("reason", action.Reason))
		}
		logg.Info("Stale check completed",
			zap.Int("entries", plan.Summary.TotalEntries),
			zap.Int("retained", plan.Summary.Retained),
			zap.Int("removed", plan.Summary.Removed),
			zap.Int("changed", plan.Summary.Changed))
	}

	if run(checkServer) && (a.db != nil || only == checkServer) {
		logg.Info("Checking server schema integrity...")
		report, err := svc.CheckServer()
		if err != nil {
			return fmt.Errorf("server schema check failed (requires CACHE_DRIVER=sql): %w", err)
		}
		if report.Matched {
			logg.Info("Server schema matches expected definition.", zap.String("driver", report.Driver))
		} else {
			logg.Warn("Server schema mismatches found", zap.String("driver", report.Driver))
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	return nil
}

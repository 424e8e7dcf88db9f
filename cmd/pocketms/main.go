// ABOUTME: Entry point for the pocketms CLI.
// ABOUTME: Validates, prints, serves and checks admin page configs with cobra commands.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/2389/pocketms/core"
	"github.com/2389/pocketms/internal/collections"
	"github.com/2389/pocketms/internal/config"
	"github.com/2389/pocketms/internal/logging"
	"github.com/2389/pocketms/internal/manifest"
	"github.com/2389/pocketms/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries settings shared by all commands.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "pocketms",
		Short: "PocketMS - admin pages for PocketBase collections",
		Long: `PocketMS describes an admin UI over PocketBase collections as a config file:
one page per collection, with list, create, update and delete settings.

Quick Start:
  pocketms validate pocketms.yaml       # Check the config shape
  pocketms check pocketms.yaml          # Compare pages with PocketBase collections
  pocketms serve pocketms.yaml          # Serve the config to the admin UI on port 9010`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("db", "", "Request log database path (default ./pocketms.db or $XDG_DATA_HOME/pocketms/pocketms.db)")
	rootCmd.PersistentFlags().StringSlice("env-file", []string{".env"}, "Env files to load before reading settings")
	a.v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	a.v.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))

	validateCmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a config file",
		Long: `Load a .yaml, .yml or .json config and report every structural problem:
missing resource names, titles or descriptions, empty form layouts, required
fields that are not in the layout, and duplicate resources.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runValidate,
	}

	printCmd := &cobra.Command{
		Use:   "print <config>",
		Short: "Print the normalized config",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runPrint,
	}
	printCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")

	serveCmd := &cobra.Command{
		Use:   "serve <config>",
		Short: "Serve the config to the admin UI",
		Long: `Start a read-only HTTP service exposing the config.

Routes:
  GET /healthz                          Health check
  GET /api/config                       Whole config
  GET /api/pages                        Navigation, in registration order
  GET /api/pages/{resource}             One page as configured
  GET /api/pages/{resource}/{action}    Effective list/create/update/delete settings

Environment Variables:
  POCKETMS_PORT         Port (default: 9010)
  POCKETMS_DB           Request log database path
  POCKETMS_APP_NAME     Overrides appName from the file`,
		Args: cobra.ExactArgs(1),
		RunE: a.runServe,
	}
	serveCmd.Flags().StringP("port", "p", "9010", "Port to listen on")
	serveCmd.Flags().Bool("record", true, "Record requests in the database")
	a.v.BindPFlag("port", serveCmd.Flags().Lookup("port"))

	checkCmd := &cobra.Command{
		Use:   "check <config>",
		Short: "Check pages against PocketBase collections",
		Long: `List the collections of a PocketBase instance and report pages whose
resource has no collection, and columns or form fields the collection lacks.

Listing collections needs a superuser token (--token or POCKETMS_TOKEN).`,
		Args: cobra.ExactArgs(1),
		RunE: a.runCheck,
	}
	checkCmd.Flags().String("backend", "http://127.0.0.1:8090", "PocketBase URL")
	checkCmd.Flags().String("token", "", "PocketBase superuser token")
	checkCmd.Flags().Duration("timeout", 10*time.Second, "Request timeout")
	a.v.BindPFlag("backend", checkCmd.Flags().Lookup("backend"))
	a.v.BindPFlag("token", checkCmd.Flags().Lookup("token"))

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent requests to the manifest service",
		Args:  cobra.NoArgs,
		RunE:  a.runLogs,
	}
	logsCmd.Flags().IntP("limit", "n", 20, "Number of entries")
	logsCmd.Flags().String("resource", "", "Only requests for this resource")
	logsCmd.Flags().Bool("errors", false, "Only requests with status >= 400")

	rootCmd.AddCommand(validateCmd, printCmd, serveCmd, checkCmd, logsCmd)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	envFiles, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil {
		return err
	}
	if err := config.LoadEnv(envFiles...); err != nil {
		return err
	}

	a.v.SetEnvPrefix("POCKETMS")
	a.v.AutomaticEnv()

	level, err := logging.ParseLevel(a.v.GetString("log_level"))
	if err != nil {
		return err
	}
	a.logger = logging.New(cmd.ErrOrStderr(), level)
	return nil
}

func (a *app) runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(args[0])
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "%s: %d problems\n", args[0], len(verr.Errors))
			for _, fe := range verr.Errors {
				fmt.Fprintf(out, "  %s\n", fe)
			}
		}
		return err
	}

	fmt.Fprintf(out, "%s: ok, %d pages (%s)\n", args[0], len(cfg.Pages), strings.Join(cfg.ResourceNames(), ", "))
	return nil
}

func (a *app) runPrint(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	data, err := config.Encode(cfg, config.Format(format))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	record, err := cmd.Flags().GetBool("record")
	if err != nil {
		return err
	}

	var rec logging.Recorder
	if record {
		dbPath, err := a.dbPath()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		s, err := store.New(dbPath, a.logger)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer s.Close()

		// Runs before Close: requests served up to Shutdown are still written.
		bg := logging.NewBackground(s, a.logger)
		defer bg.Wait()
		rec = bg
	}

	handler, err := newServer(cfg, a.logger, rec)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.v.GetString("port"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("pocketms listening", "addr", srv.Addr, "app", cfg.AppName, "pages", len(cfg.Pages))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-cmd.Context().Done():
		a.logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// newServer builds the manifest handler. rec may be nil to skip recording.
func newServer(cfg *core.Config, logger *slog.Logger, rec logging.Recorder) (http.Handler, error) {
	return manifest.NewRouter(cfg, logger, rec)
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}

	backend := a.v.GetString("backend")
	client := collections.New(backend,
		collections.WithToken(a.v.GetString("token")),
		collections.WithTimeout(timeout),
		collections.WithRetries(2),
	)

	a.logger.Debug("checking pages", "backend", backend, "pages", len(cfg.Pages))
	report, err := collections.Check(cmd.Context(), client, cfg)
	if err != nil {
		return fmt.Errorf("check against %s failed: %w", backend, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), report)
	if !report.OK() {
		return fmt.Errorf("%d problems found", len(report.Problems))
	}
	return nil
}

func (a *app) runLogs(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	resource, err := cmd.Flags().GetString("resource")
	if err != nil {
		return err
	}
	onlyErrors, err := cmd.Flags().GetBool("errors")
	if err != nil {
		return err
	}

	dbPath, err := a.dbPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no request log at %s: %w", dbPath, err)
	}

	s, err := store.New(dbPath, a.logger)
	if err != nil {
		return err
	}
	defer s.Close()

	q := store.RequestLogQuery{Limit: limit, Resource: resource}
	if onlyErrors {
		q.MinStatus = http.StatusBadRequest
	}
	logs, err := s.RecentRequests(q)
	if err != nil {
		return err
	}

	printLogs(cmd.OutOrStdout(), logs)
	return nil
}

func printLogs(w io.Writer, logs []*store.RequestLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "no requests recorded")
		return
	}
	for _, l := range logs {
		fmt.Fprintf(w, "%s  %-6s %-40s %d  %dms\n",
			l.Timestamp.Local().Format(time.DateTime), l.Method, l.Path, l.StatusCode, l.DurationMs)
	}
}

// dbPath returns the --db / POCKETMS_DB path, falling back to the default
// location. Nothing is created on disk.
func (a *app) dbPath() (string, error) {
	path := a.v.GetString("db")
	if strings.TrimSpace(path) == "" {
		path = getDefaultDBPath()
	}
	return validateAndCleanDBPath(path)
}

// validateAndCleanDBPath validates and cleans a database path.
// Handles Unix/Linux, macOS, and Windows paths (including UNC and drive letters).
func validateAndCleanDBPath(path string) (string, error) {
	cleanPath := filepath.Clean(strings.TrimSpace(path))

	if cleanPath == "" || cleanPath == "." || cleanPath == "/" {
		return "", fmt.Errorf("database path cannot be empty, '.', or '/'")
	}

	if runtime.GOOS == "windows" && len(cleanPath) == 2 && cleanPath[1] == ':' {
		return "", fmt.Errorf("database path cannot be a bare drive letter")
	}

	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("database path cannot contain '..'")
	}

	lowerPath := strings.ToLower(cleanPath)
	for _, pattern := range []string{".git", ".svn", "node_modules", ".env", "credentials", "secret"} {
		if strings.Contains(lowerPath, pattern) {
			return "", fmt.Errorf("database path cannot contain '%s' directory", pattern)
		}
	}

	return cleanPath, nil
}

// getDefaultDBPath returns the default request log path.
// Priority: ./pocketms.db if present > XDG_DATA_HOME/pocketms/pocketms.db
func getDefaultDBPath() string {
	cwdPath := "./pocketms.db"
	if _, err := os.Stat(cwdPath); err == nil {
		return cwdPath
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil || homeDir == "" || homeDir == "/" {
			return cwdPath
		}
		if runtime.GOOS == "windows" {
			dataHome = os.Getenv("LOCALAPPDATA")
			if dataHome == "" {
				dataHome = filepath.Join(homeDir, "AppData", "Local")
			}
		} else {
			dataHome = filepath.Join(homeDir, ".local", "share")
		}
	}

	return filepath.Join(dataHome, "pocketms", "pocketms.db")
}

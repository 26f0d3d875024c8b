package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yukikurage/team-management-api/internal/config"
	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Team management API",
	Long:  `Serves the team management API: employees, invitations, teams, projects and tasks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, err := bootstrap()
		if err != nil {
			return err
		}
		return database.Migrate(log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, shuffleDeadlinesCmd)
}

// bootstrap loads configuration, builds the logger and connects to the
// database. Every subcommand starts here.
func bootstrap() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err := database.Connect(cfg, log); err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/perkloop/perkloop/internal/interfaces/cli/admin"
	"github.com/perkloop/perkloop/internal/interfaces/cli/migrate"
	"github.com/perkloop/perkloop/internal/interfaces/cli/server"
)

// @title                      Perkloop API
// @version                    1.0
// @BasePath                   /api/v1
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:          "perkloop",
		Short:        "Perkloop - savings and investment backend",
		Long:         `Perkloop serves the savings API, runs the rate feeds and scheduler, and ships migration and admin tools.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

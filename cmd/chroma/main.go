package main

import (
	"os"

	"github.com/spf13/cobra"

	"chroma/internal/interfaces/cli/migrate"
	"chroma/internal/interfaces/cli/server"
)

// @title Chroma API
// @version 1.0
// @description Anonymous photo colorization backend: fingerprint identities, daily quotas, provider fallback.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Anonymous bearer credential from /auth/anonymous. Format: Bearer <token>
func main() {
	rootCmd := &cobra.Command{
		Use:   "chroma",
		Short: "Chroma - anonymous photo colorization API",
		Long:  `Chroma is the backend for anonymous photo colorization: fingerprint-based identities, daily quotas, and a provider fallback chain.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

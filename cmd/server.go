/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/gestion-rh/apiserver/config"
	"github.com/gestion-rh/apiserver/internal/logger"
	"github.com/gestion-rh/apiserver/internal/server"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the gestion-rh backend server",
	Long: `Starts the gestion-rh backend server. Usage:

	gestion-rh server
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadConfig()
		log := logger.New(cfg.LogLevel)

		srv, err := server.New(cmd.Context(), cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
			os.Exit(1)
		}
		if err := srv.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

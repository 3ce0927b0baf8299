package main

import (
	"log"
	"os"

	_ "eureka/docs"
	"eureka/internal/config"
	"eureka/internal/database"
	"eureka/internal/server"

	"github.com/spf13/cobra"
)

// @title           Eureka Task API
// @version         1.0
// @description     API for drafting, publishing and tracking personal tasks.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:          "eureka",
		Short:        "Task management API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.Load(envFiles...))
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "env files to load before the environment (default .env)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(config.Load(envFiles...))
		},
	})
	root.AddCommand(newMigrateCmd(&envFiles))
	return root
}

func newMigrateCmd(envFiles *[]string) *cobra.Command {
	var (
		down  bool
		steps int
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(*envFiles...)
			if down {
				return database.MigrateDown(cfg, steps)
			}
			return database.MigrateUp(cfg)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back instead of applying")
	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back with --down")
	return cmd
}

func serve(cfg *config.Config) error {
	s, err := server.Init(cfg)
	if err != nil {
		log.Printf("❌ Server initialization failed: %v", err)
		return err
	}

	s.Run()
	return nil
}

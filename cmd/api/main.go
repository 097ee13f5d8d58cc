package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskflow/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow API Server",
		Long:  `TaskFlow is a personal task tracker with a dashboard, a monthly calendar and best-effort remote sync.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proposalarchitect/speakerscout/config"
	srv "github.com/proposalarchitect/speakerscout/internal/server"
)

var version = "dev"

func main() {
	var root = &cobra.Command{Use: "speakerscout"}

	var configPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the speaking opportunity pipeline HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(configPath)
			return srv.Run(cfg)
		},
	}
	serve.Flags().StringVar(&configPath, "config", "", "path to config file (default: search config/, .)")

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	root.AddCommand(serve, versionCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

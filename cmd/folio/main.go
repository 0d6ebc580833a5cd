package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmorelli/folio/internal/config"
	"github.com/jmorelli/folio/internal/logger"
	"github.com/jmorelli/folio/internal/pipeline"
	"github.com/jmorelli/folio/internal/site"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "folio",
		Short: "Personal portfolio page from GitHub repos and an ORCID record",
	}

	root.PersistentFlags().String("config", "folio.yaml", "path to config file")
	root.AddCommand(buildCmd(), serveCmd(), versionCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var (
		output  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Fetch repositories and publications, render the page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.Output.Dir = output
			}

			log := logger.New(cfg.Logging.Level)

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res := pipeline.New(cfg, log).Run(ctx)

			gen := site.NewGenerator(cfg.Output.Dir, profileName(cfg), cfg.Profile.Tagline)
			path, err := gen.Generate(res)
			if err != nil {
				return err
			}

			fmt.Printf("Page written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "override the output directory")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall fetch timeout")
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		port  int
		build bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			log := logger.New(cfg.Logging.Level)

			if build {
				res := pipeline.New(cfg, log).Run(cmd.Context())
				gen := site.NewGenerator(cfg.Output.Dir, profileName(cfg), cfg.Profile.Tagline)
				if _, err := gen.Generate(res); err != nil {
					return err
				}
			}

			if _, err := os.Stat(cfg.Output.Dir); os.IsNotExist(err) {
				return fmt.Errorf("output dir %s not found; run `folio build` first", cfg.Output.Dir)
			}

			return site.Serve(cmd.Context(), cfg.Output.Dir, cfg.Server.Port, log)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "override the server port")
	cmd.Flags().BoolVar(&build, "build", false, "rebuild the page before serving")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the folio version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// profileName falls back to the GitHub account when no display name is set.
func profileName(cfg *config.Config) string {
	if cfg.Profile.Name != "" {
		return cfg.Profile.Name
	}
	return cfg.GitHub.User
}

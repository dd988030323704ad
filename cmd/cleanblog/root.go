package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/cleanblog"
)

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "cleanblog",
		Short:         "cleanblog is a small server-rendered blog backed by SQLite",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = version
	cmd.PersistentFlags().StringVar(&configPath, "config", cleanblog.EnvOr("CLEANBLOG_CONFIG", ""), "path to a TOML config file")

	cmd.AddCommand(
		newServeCmd(&configPath),
		newPostsCmd(&configPath),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig layers the config file and environment over the defaults.
func loadConfig(path string) (cleanblog.SiteConfig, error) {
	var cfg cleanblog.SiteConfig
	if path != "" {
		if err := cleanblog.LoadConfigFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := cleanblog.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cleanblog version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cleanblog %s\n", version)
		},
	}
}

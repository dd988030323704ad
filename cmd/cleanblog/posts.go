package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/cleanblog"
)

func newPostsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect stored posts",
	}
	cmd.AddCommand(newPostsListCmd(configPath))
	return cmd
}

func newPostsListCmd(configPath *string) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every post as id, date and title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DatabasePath = dbPath
			}
			store, err := cleanblog.NewStore(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
			}
			defer store.Close()

			posts, err := store.ListPosts()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTITLE")
			for _, p := range posts {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.Date, p.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	return cmd
}

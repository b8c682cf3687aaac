package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/trawl/internal/app"
	"github.com/five82/trawl/internal/browser"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "trawl: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "trawl",
		Short:         "Search browser bookmarks, history and cookies from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/trawl/config.toml)")
	flags.StringVar(&opts.Browser, "browser", "", "browser to read: chrome, chromium, edge, brave, vivaldi or firefox")
	flags.StringVar(&opts.Profile, "profile", "", "profile directory, name or path")
	root.Flags().BoolVar(&opts.Popup, "popup", false, "use the compact popup layout")
	root.Flags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/trawl/prefs.toml)")

	root.AddCommand(
		printCmd(&opts, browser.SourceBookmarks, "List bookmarks matching query"),
		printCmd(&opts, browser.SourceHistory, "List visited pages matching query"),
		printCmd(&opts, browser.SourceCookies, "List cookies whose domain or name contains query"),
		logCmd(&opts),
	)
	return root
}

func printCmd(opts *app.Options, source browser.Source, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(source) + " [query]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return app.Print(cmd.Context(), *opts, source, query, cmd.OutOrStdout())
		},
	}
}

func logCmd(opts *app.Options) *cobra.Command {
	var lines int
	var level string
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the end of trawl's log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.PrintLog(*opts, lines, level, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to print")
	cmd.Flags().StringVar(&level, "level", "trace", "only lines at or above this level")
	return cmd
}

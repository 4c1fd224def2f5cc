package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/entrhq/llmmixer/pkg/config"
	"github.com/entrhq/llmmixer/pkg/logging"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or reset the saved layout",
	}
	cmd.AddCommand(newConfigPathCmd(opts), newConfigShowCmd(opts), newConfigResetCmd(opts))
	return cmd
}

func newConfigPathCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings document location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}

func newConfigShowCmd(opts *rootOptions) *cobra.Command {
	var (
		format string
		color  bool
		style  string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective layout after migration",
		Long: `Prints the layout the shell would start with: the saved document after
legacy migration and order normalization, or the defaults when nothing is
saved yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(logging.NewNop())
			if err != nil {
				return err
			}

			f := store.Format()
			if format != "" {
				if f, err = config.ParseFormat(format); err != nil {
					return err
				}
			}

			data, err := config.Encode(store.Load(), f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !color {
				_, err = out.Write(data)
				return err
			}
			lexer := "json"
			if f == config.FormatYAML {
				lexer = "yaml"
			}
			return quick.Highlight(out, string(data), lexer, "terminal256", style)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: json or yaml (default: the document's own format)")
	cmd.Flags().BoolVar(&color, "color", false, "syntax-highlight the output")
	cmd.Flags().StringVar(&style, "style", "monokai", "highlight style used with --color")
	return cmd
}

func newConfigResetCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default layout",
		Long:  `Replaces the saved services with the defaults. Browser settings in the document are kept.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(logging.NewNop())
			if err != nil {
				return err
			}

			if !yes {
				fmt.Fprint(cmd.OutOrStdout(), "This will reset all layout settings to default. Continue? [y/N] ")
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(answer)) {
				case "y", "yes":
				default:
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			cfg := config.DefaultConfiguration()
			cfg.Browser = store.Load().Browser
			if err := store.Save(cfg); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Layout reset: %s\n", store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/ofile/pkg/ofile"
)

type settingsKey struct{}

// newRootCmd builds the command tree. Subcommands read the merged settings
// stored on the command context by PersistentPreRunE.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ofile",
		Short: "Inspect, compare, copy and delete files and directory trees",
		Long: `ofile works on files and directories as whole entries: it prints content
digests, compares trees by content, copies trees replacing what is in the way,
renames entries and deletes trees while reporting what could not be removed.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			ofile.SetLogger(ofile.NewLogger(cmd.ErrOrStderr(), s.logLevel))
			cmd.SetContext(withSettings(cmd.Context(), s))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("root", "", "Root directory paths are resolved against (default: host paths)")
	flags.String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	flags.String("match", "name", "How directory children are paired when comparing (name, positional)")
	flags.Int("block-size", ofile.DefaultBlockSize, "Read block size for digests and line counts")
	flags.String("config", "", "TOML config file supplying the same keys")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newChecksumCommand())
	rootCmd.AddCommand(newEqualCommand())
	rootCmd.AddCommand(newCopyCommand())
	rootCmd.AddCommand(newDeleteCommand())
	rootCmd.AddCommand(newRenameCommand())
	rootCmd.AddCommand(newCatCommand())
	rootCmd.AddCommand(newLinesCommand())

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of ofile`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ofile version %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

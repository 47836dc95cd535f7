package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/ofile/pkg/ofile"
)

func withSettings(ctx context.Context, s *settings) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(cmd *cobra.Command) *settings {
	if s, ok := cmd.Context().Value(settingsKey{}).(*settings); ok {
		return s
	}
	return &settings{opts: ofile.DefaultOptions()}
}

func newChecksumCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum [file...]",
		Short: "Print the MD5 digest of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			for _, p := range args {
				h, err := s.openExisting(p)
				if err != nil {
					return err
				}
				sum, err := h.Checksum()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, h.Path())
			}
			return nil
		},
	}
}

func newEqualCommand() *cobra.Command {
	var ignoreName bool

	cmd := &cobra.Command{
		Use:   "equal [a] [b]",
		Short: "Compare two files or directory trees by content",
		Long: `Compare two entries. Files are equal when their digests match, directories
when every child has an equal counterpart. Exits non-zero when they differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			a, err := s.openExisting(args[0])
			if err != nil {
				return err
			}
			b, err := s.openExisting(args[1])
			if err != nil {
				return err
			}

			if ofile.Equal(a, b, !ignoreName) {
				fmt.Fprintf(cmd.OutOrStdout(), "equal: %s %s\n", a.Path(), b.Path())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "different: %s %s\n", a.Path(), b.Path())
			return errors.New("entries differ")
		},
	}

	cmd.Flags().BoolVar(&ignoreName, "ignore-name", false, "Do not require the two entries to share a name")
	return cmd
}

func newCopyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "copy [source] [destination]",
		Short: "Copy a file or directory tree, replacing what is at the destination",
		Long: `Copy source to destination. A destination ending in a slash receives the
source file under its own name. Directories are copied recursively.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			src, err := s.openExisting(args[0])
			if err != nil {
				return err
			}
			dst, err := src.CopyReplace(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "copied %s -> %s\n", src.Path(), dst.Path())
			return nil
		},
	}
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [path...]",
		Short: "Delete files and directory trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			var errs []error
			for _, p := range args {
				h, err := s.openExisting(p)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				res := h.DeleteTree()
				for _, f := range res.Failures {
					fmt.Fprintf(cmd.ErrOrStderr(), "  could not delete %s: %v\n", f.Path, f.Err)
				}
				if err := res.Err(); err != nil {
					errs = append(errs, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%d entries)\n", res.Path, res.Deleted)
			}
			return errors.Join(errs...)
		},
	}
}

func newRenameCommand() *cobra.Command {
	var move bool

	cmd := &cobra.Command{
		Use:   "rename [path] [new-name]",
		Short: "Rename an entry within its directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			h, err := s.openExisting(args[0])
			if err != nil {
				return err
			}

			var renamed *ofile.Handle
			if move {
				renamed, err = h.RenameToPath(args[1])
			} else {
				renamed, err = h.RenameTo(args[1])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "renamed %s -> %s\n", h.Path(), renamed.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&move, "move", false, "Treat new-name as a full destination path")
	return cmd
}

func newCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat [file]",
		Short: "Print a file line by line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			h, err := s.openExisting(args[0])
			if err != nil {
				return err
			}
			defer func() {
				_ = h.Close()
			}()

			for {
				line, err := h.ReadLine()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}
}

func newLinesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lines [file...]",
		Short: "Count the lines of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := settingsFrom(cmd)
			for _, p := range args {
				h, err := s.openExisting(p)
				if err != nil {
					return err
				}
				n, err := h.CountLines()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%8d %s\n", n, h.Path())
			}
			return nil
		},
	}
}

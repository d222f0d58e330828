// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MKhiriev/mdiary/internal/config"
	"github.com/MKhiriev/mdiary/internal/controller"
	"github.com/MKhiriev/mdiary/internal/logger"
	"github.com/MKhiriev/mdiary/internal/tui"
	"github.com/MKhiriev/mdiary/models"
)

var errNoTerminal = errors.New(`the diary needs an interactive terminal; use "mdiary list" to print entries`)

type rootOptions struct {
	keyFile   string
	configDir string
	dataDir   string
	reset     bool
}

func newRootCmd(info models.AppBuildInfo) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "mdiary",
		Short: "mdiary - a diary that lives in your terminal",
		Long: `mdiary keeps numbered, timestamped diary entries in a local SQLite file.
Entries can be encrypted with a key that is generated on first run.

Environment variables:
  MDIARY_CONFIG_DIR  - directory of the settings file
  MDIARY_DATA_DIR    - directory of the diary and log files
  MDIARY_KEY_DIR     - directory where new keys are written
  MDIARY_KEY_FILE    - key of an encrypted diary
  MDIARY_LOG_LEVEL   - debug, info, warn or error`,
		Version:       info.BuildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireTerminal(cmd); err != nil {
				return err
			}
			return withSession(cmd, opts, func(ctx context.Context, ctrl *controller.Controller) error {
				return tui.Run(ctx, ctrl, info)
			})
		},
	}
	cmd.SetVersionTemplate(info.String() + "\n")

	cmd.PersistentFlags().StringVarP(&opts.keyFile, "key", "k", "", "key file of an encrypted diary (or MDIARY_KEY_FILE)")
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", "", "settings directory (or MDIARY_CONFIG_DIR)")
	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "diary data directory (or MDIARY_DATA_DIR)")
	cmd.Flags().BoolVarP(&opts.reset, "reset", "r", false, "archive the current settings and run setup again")

	cmd.AddCommand(newListCmd(opts), newCountCmd(opts), newVersionCmd(info))

	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every entry, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, ctrl *controller.Controller) error {
				entries, err := ctrl.ListEntries(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(out, "The diary is empty.")
					return nil
				}
				header := color.New(color.FgCyan, color.Bold)
				for _, e := range entries {
					_, _ = header.Fprintln(out, e.Header())
					_, _ = fmt.Fprintln(out, e.Text)
					_, _ = fmt.Fprintln(out)
				}
				return nil
			})
		},
	}
}

func newCountCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, ctrl *controller.Controller) error {
				n, err := ctrl.CountEntries(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}

func newVersionCmd(info models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	}
}

func requireTerminal(cmd *cobra.Command) error {
	in, ok := cmd.InOrStdin().(*os.File)
	if !ok || !term.IsTerminal(int(in.Fd())) {
		return errNoTerminal
	}
	return nil
}

// withSession resolves paths, opens the log and the diary, and hands the
// session to run. The store is closed on every path out.
func withSession(cmd *cobra.Command, opts *rootOptions, run func(context.Context, *controller.Controller) error) error {
	paths, err := config.GetPaths(config.Paths{
		ConfigDir: opts.configDir,
		DataDir:   opts.dataDir,
		KeyFile:   opts.keyFile,
	})
	if err != nil {
		return err
	}

	log, closeLog := logger.NewFileLogger("mdiary", paths.LogFile(), paths.LogLevel)
	defer func() { _ = closeLog() }()

	if opts.reset {
		archived, resetErr := config.ResetSettings(paths.SettingsFile())
		if resetErr != nil {
			log.Err(resetErr).Str("func", "withSession").Msg("failed to reset settings")
			return resetErr
		}
		if archived != "" {
			log.Info().Str("func", "withSession").Str("archive", archived).Msg("settings archived")
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("Previous settings archived to ")+archived)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = log.WithContext(ctx)

	ctrl, err := controller.Open(ctx, paths, log)
	if err != nil {
		return err
	}
	defer func() { _ = ctrl.Close() }()

	return run(ctx, ctrl)
}

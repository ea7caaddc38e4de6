package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redhat/browser-e2e-tests/test/framework/profile"
)

func newProfilesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List and validate browser capability profiles",
	}
	cmd.AddCommand(newProfilesListCmd(a), newProfilesValidateCmd())
	return cmd
}

func newProfilesListCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the profiles sessions are started with, or the profiles in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if dir != "" {
				profiles, err := profile.LoadAll(dir)
				if err != nil {
					return err
				}
				for _, p := range profiles {
					printProfile(out, p.Name, p)
				}
				return nil
			}

			modes := make([]string, 0, len(a.cfg.Capabilities))
			for mode := range a.cfg.Capabilities {
				modes = append(modes, string(mode))
			}
			sort.Strings(modes)
			for _, mode := range modes {
				printProfile(out, mode, a.cfg.Capabilities[profile.Mode(mode)])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of profile YAML files")
	return cmd
}

func newProfilesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate capabilities files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if _, err := profile.LoadSet(path); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "✗ %v\n", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d capabilities files are invalid", failed, len(args))
			}
			return nil
		},
	}
}

func printProfile(w io.Writer, key string, p *profile.Profile) {
	fmt.Fprintf(w, "%s: %s (%s)\n", key, p.Name, p.BrowserName)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	if len(p.Args) > 0 {
		fmt.Fprintf(w, "  args: %s\n", strings.Join(p.Args, " "))
	}
	if me := p.MobileEmulation; me != nil {
		fmt.Fprintf(w, "  mobile: %dx%d @%.1f\n", me.Width, me.Height, me.PixelRatio)
	}
}

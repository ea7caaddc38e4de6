package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redhat/browser-e2e-tests/test/framework"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that a browser can be started and artifacts can be written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, err := framework.New(framework.WithConfig(a.cfg), framework.WithLogger(a.logger))
			if err != nil {
				return err
			}

			result, err := fw.CheckPrerequisites(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			if !result.AllMet {
				return fmt.Errorf("prerequisites not met")
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redhat/browser-e2e-tests/test/framework"
	"github.com/redhat/browser-e2e-tests/test/framework/fixtures"
	"github.com/redhat/browser-e2e-tests/test/framework/registration"
)

func newRegisterCmd(a *app) *cobra.Command {
	var (
		endpoint  string
		attempts  int
		req       = registration.Request{
			Customer: fixtures.DefaultRegisteredCustomer(),
			Address:  fixtures.DefaultUKAddress(),
		}
		emailName string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new customer and print its id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fw, err := framework.New(framework.WithConfig(a.cfg), framework.WithLogger(a.logger))
			if err != nil {
				return err
			}

			var opts []registration.Option
			if endpoint != "" {
				opts = append(opts, registration.WithEndpoint(endpoint))
			}
			if attempts > 1 {
				opts = append(opts, registration.WithAttempts(attempts))
			}
			client, err := fw.Registration(opts...)
			if err != nil {
				return err
			}

			if req.Email == "" && emailName != "" {
				req.Email = fixtures.UniqueEmailAddress(emailName, "")
			}
			id := client.GenerateNewRegisteredUser(cmd.Context(), req)
			if id == "" {
				if err := client.LastError(); err != nil {
					return fmt.Errorf("registration against %s failed: %w", client.Endpoint(), err)
				}
				return fmt.Errorf("registration against %s returned no customer id", client.Endpoint())
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&endpoint, "endpoint", "", "Register endpoint (defaults to the REGISTRATION_ENV service)")
	flags.IntVar(&attempts, "attempts", 1, "attempts on transport errors and 5xx responses")
	flags.StringVar(&req.Email, "email", "", "e-mail address (default: a unique address)")
	flags.StringVar(&emailName, "email-name", "", "local part prefix of the generated e-mail address")
	flags.StringVar(&req.Password, "password", "", "account password")
	flags.StringVar(&req.Customer.FirstName, "first-name", req.Customer.FirstName, "customer first name")
	flags.StringVar(&req.Customer.Surname, "surname", req.Customer.Surname, "customer surname")
	flags.StringVar(&req.Address.PostCode, "post-code", req.Address.PostCode, "address post code")
	flags.StringVar(&req.Address.CountryCode, "country", req.Address.CountryCode, "ISO country code")
	return cmd
}

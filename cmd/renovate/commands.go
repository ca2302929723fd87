package main

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "renovate",
		Short:         "Renovation orders API",
		Long:          `Serves the renovation orders API and runs one-off operator tasks against its database.`,
		SilenceUsage:  true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	promoteCmd = &cobra.Command{
		Use:   "promote",
		Short: "Grant the admin role to an existing account",
		Long:  `Looks up the account by email and sets its role to admin. Admins cannot self-register; this is the only way to create one.`,
		Args:  cobra.NoArgs,
		RunE:  runPromote,
	}
	promoteEmail string
)

func init() {
	promoteCmd.Flags().StringVar(&promoteEmail, "email", "", "email of the account to promote")
	_ = promoteCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(promoteCmd)
}

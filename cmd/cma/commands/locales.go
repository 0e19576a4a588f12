package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// NewLocalesCommand creates the locales command group
func NewLocalesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locales",
		Aliases: []string{"locale"},
		Short:   "Manage locales",
		Long:    "List and manage locales in an environment",
	}

	cmd.AddCommand(newLocalesListCommand())
	cmd.AddCommand(newLocalesGetCommand())
	cmd.AddCommand(newLocalesCreateCommand())
	cmd.AddCommand(newLocalesDeleteCommand())

	return cmd
}

func newLocalesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List locales",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			locales, err := client.Locales().List(context.Background(), cma.NewQueryParams())
			if err != nil {
				return fmt.Errorf("failed to list locales: %w", err)
			}

			return renderStructured(locales.Items, func() error {
				if len(locales.Items) == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No locales found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Code", "Name", "Default", "Fallback", "Optional")

				for i := range locales.Items {
					locale := &locales.Items[i]

					fallback := NotAvailable
					if locale.FallbackCode != nil {
						fallback = *locale.FallbackCode
					}

					_ = table.Append(locale.Code, locale.Name,
						strconv.FormatBool(locale.Default), fallback,
						strconv.FormatBool(locale.Optional))
				}

				return table.Render()
			})
		},
	}
}

func newLocalesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get LOCALE_ID",
		Short: "Get locale details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			locale, err := client.Locales().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get locale: %w", err)
			}

			return renderStructured(locale, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", sysID(locale.Sys))
				_ = table.Append("Name", locale.Name)
				_ = table.Append("Code", locale.Code)
				_ = table.Append("Default", strconv.FormatBool(locale.Default))
				_ = table.Append("Optional", strconv.FormatBool(locale.Optional))
				_ = table.Append("Delivery API", strconv.FormatBool(locale.ContentDelivery))
				_ = table.Append("Management API", strconv.FormatBool(locale.ContentManagement))

				return table.Render()
			})
		},
	}
}

func newLocalesCreateCommand() *cobra.Command {
	var (
		name     string
		fallback string
		optional bool
	)

	cmd := &cobra.Command{
		Use:   "create CODE",
		Short: "Create a locale",
		Long:  "Create a locale such as de-DE in the current environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := args[0]
			if name == "" {
				name = code
			}

			request := &cma.LocaleCreateRequest{
				Name:              name,
				Code:              code,
				Optional:          optional,
				ContentDelivery:   true,
				ContentManagement: true,
			}

			if fallback != "" {
				request.FallbackCode = &fallback
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			locale, err := client.Locales().Create(context.Background(), request)
			if err != nil {
				return fmt.Errorf("failed to create locale: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created locale %s (%s)\n", locale.Code, sysID(locale.Sys))

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the code)")
	cmd.Flags().StringVar(&fallback, "fallback", "", "fallback locale code")
	cmd.Flags().BoolVar(&optional, "optional", false, "allow publishing entries without this locale")

	return cmd
}

func newLocalesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete LOCALE_ID",
		Short: "Delete a locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete locale '%s'? (y/N): ", args[0])

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = fmt.Fprintln(os.Stdout, "Cancelled")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			if err := client.Locales().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete locale: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted locale %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// NewSpacesCommand creates the spaces command group
func NewSpacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spaces",
		Aliases: []string{"space"},
		Short:   "Manage spaces",
		Long:    "List and manage Contentful spaces",
	}

	cmd.AddCommand(newSpacesListCommand())
	cmd.AddCommand(newSpacesGetCommand())
	cmd.AddCommand(newSpacesCreateCommand())
	cmd.AddCommand(newSpacesRenameCommand())
	cmd.AddCommand(newSpacesDeleteCommand())

	return cmd
}

func newSpacesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List spaces",
		Long:  "List all spaces the token has access to",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			params := cma.NewQueryParams().WithLimit(limit)

			spaces, err := client.Spaces().List(context.Background(), params)
			if err != nil {
				return fmt.Errorf("failed to list spaces: %w", err)
			}

			return renderStructured(spaces.Items, func() error {
				if len(spaces.Items) == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No spaces found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Created")

				for i := range spaces.Items {
					space := &spaces.Items[i]
					_ = table.Append(sysID(space.Sys), space.Name, sysTime(space.Sys.CreatedAt))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("rendering table: %w", err)
				}

				if spaces.Total > len(spaces.Items)+spaces.Skip {
					_, _ = fmt.Fprintf(os.Stdout, "\nShowing %d of %d spaces\n", len(spaces.Items), spaces.Total)
				}

				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of spaces to return")

	return cmd
}

func newSpacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SPACE_ID",
		Short: "Get space details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			space, err := client.Spaces().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get space: %w", err)
			}

			return renderStructured(space, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", sysID(space.Sys))
				_ = table.Append("Name", space.Name)
				_ = table.Append("Version", sysVersion(space.Sys))
				_ = table.Append("Created", sysTime(space.Sys.CreatedAt))
				_ = table.Append("Updated", sysTime(space.Sys.UpdatedAt))

				return table.Render()
			})
		},
	}
}

func newSpacesCreateCommand() *cobra.Command {
	var defaultLocale string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			space, err := client.Spaces().Create(context.Background(), &cma.SpaceCreateRequest{
				Name:          args[0],
				DefaultLocale: defaultLocale,
			})
			if err != nil {
				return fmt.Errorf("failed to create space: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created space '%s' (%s)\n", space.Name, sysID(space.Sys))

			return nil
		},
	}

	cmd.Flags().StringVar(&defaultLocale, "default-locale", "", "default locale for the new space")

	return cmd
}

func newSpacesRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename SPACE_ID NEW_NAME",
		Short: "Rename a space",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			space, err := client.Spaces().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get space: %w", err)
			}

			space.Name = args[1]

			updated, err := client.Spaces().Update(ctx, space)
			if err != nil {
				return fmt.Errorf("failed to rename space: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Renamed space %s to '%s'\n", sysID(updated.Sys), updated.Name)

			return nil
		},
	}
}

func newSpacesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete SPACE_ID",
		Short: "Delete a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete space '%s'? (y/N): ", args[0])

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

			if err := client.Spaces().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete space: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted space %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

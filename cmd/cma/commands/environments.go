package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

// NewEnvironmentsCommand creates the environments command group
func NewEnvironmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "environments",
		Aliases: []string{"environment", "envs"},
		Short:   "Manage environments",
		Long:    "List and manage environments within a space",
	}

	cmd.AddCommand(newEnvironmentsListCommand())
	cmd.AddCommand(newEnvironmentsGetCommand())
	cmd.AddCommand(newEnvironmentsCreateCommand())
	cmd.AddCommand(newEnvironmentsDeleteCommand())

	return cmd
}

func newEnvironmentsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			environments, err := client.Environments().List(context.Background(), cma.NewQueryParams())
			if err != nil {
				return fmt.Errorf("failed to list environments: %w", err)
			}

			return renderStructured(environments.Items, func() error {
				if len(environments.Items) == 0 {
					_, _ = fmt.Fprintln(os.Stdout, "No environments found")

					return nil
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.Header("ID", "Name", "Created")

				for i := range environments.Items {
					env := &environments.Items[i]
					_ = table.Append(sysID(env.Sys), env.Name, sysTime(env.Sys.CreatedAt))
				}

				return table.Render()
			})
		},
	}
}

func newEnvironmentsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ENVIRONMENT_ID",
		Short: "Get environment details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			env, err := client.Environments().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get environment: %w", err)
			}

			return renderStructured(env, func() error {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Field", "Value")
				_ = table.Append("ID", sysID(env.Sys))
				_ = table.Append("Name", env.Name)
				_ = table.Append("Version", sysVersion(env.Sys))
				_ = table.Append("Created", sysTime(env.Sys.CreatedAt))

				return table.Render()
			})
		},
	}
}

func newEnvironmentsCreateCommand() *cobra.Command {
	var (
		name   string
		source string
	)

	cmd := &cobra.Command{
		Use:   "create ENVIRONMENT_ID",
		Short: "Create an environment",
		Long: `Create an environment within the current space.

With --source, the new environment is cloned from an existing one
instead of starting empty.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			environmentID := args[0]
			if name == "" {
				name = environmentID
			}

			request := &cma.EnvironmentCreateRequest{Name: name}
			ctx := context.Background()

			var env *cma.Environment
			if source != "" {
				env, err = client.Environments().CreateFromSource(ctx, environmentID, source, request)
			} else {
				env, err = client.Environments().Create(ctx, environmentID, request)
			}

			if err != nil {
				return fmt.Errorf("failed to create environment: %w", err)
			}

			if source != "" {
				_, _ = fmt.Fprintf(os.Stdout, "Created environment '%s' from '%s'\n", sysID(env.Sys), source)
			} else {
				_, _ = fmt.Fprintf(os.Stdout, "Created environment '%s'\n", sysID(env.Sys))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the environment id)")
	cmd.Flags().StringVar(&source, "source", "", "environment to clone from")

	return cmd
}

func newEnvironmentsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ENVIRONMENT_ID",
		Short: "Delete an environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete environment '%s'? (y/N): ", args[0])

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

			if err := client.Environments().Delete(context.Background(), args[0]); err != nil {
				return fmt.Errorf("failed to delete environment: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted environment %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

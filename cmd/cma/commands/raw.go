package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRawCommand creates the raw command
func NewRawCommand() *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   "raw METHOD PATH",
		Short: "Perform a raw API request",
		Long: `Perform an arbitrary request against the management API.

The path is relative to the API root, e.g. /spaces/abc/environments.
A request body can be given with --data, either inline JSON or @file.`,
		Example: `  cma raw GET /spaces/abc123/environments
  cma raw POST /spaces/abc123/environments/master/entries --data @entry.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			path := args[1]

			var body interface{}

			if data != "" {
				raw := []byte(data)

				if strings.HasPrefix(data, "@") {
					fileData, err := os.ReadFile(data[1:]) // #nosec G304 -- the path is a user-supplied CLI argument
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", data[1:], err)
					}

					raw = fileData
				}

				if err := json.Unmarshal(raw, &body); err != nil {
					return fmt.Errorf("failed to parse request body: %w", err)
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			resource, err := client.Raw(context.Background(), method, path, body)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}

			if resource == nil {
				_, _ = fmt.Fprintln(os.Stdout, "OK")

				return nil
			}

			if viper.GetString("output") == OutputFormatYAML {
				return renderYAML(resource)
			}

			return renderJSON(resource)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "request body, inline JSON or @file")

	return cmd
}

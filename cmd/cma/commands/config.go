package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/contentful-labs/cma-client/internal/constants"
)

// cliConfig is the persisted shape of ~/.cma/config.yaml. Flags and CMA_*
// environment variables override it at runtime.
type cliConfig struct {
	Token       string `yaml:"token,omitempty"`
	Host        string `yaml:"host,omitempty"`
	Space       string `yaml:"space,omitempty"`
	Environment string `yaml:"environment,omitempty"`
	Output      string `yaml:"output,omitempty"`
}

// configKeys are the keys the config command accepts.
var configKeys = []string{"token", "host", "space", "environment", "output"}

func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".cma")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yaml"), nil
}

func loadCLIConfig() (*cliConfig, string, error) {
	path, err := configFilePath()
	if err != nil {
		return nil, "", err
	}

	config := &cliConfig{}

	data, err := os.ReadFile(path) // #nosec G304 -- path is derived from the user home directory
	if err != nil {
		if os.IsNotExist(err) {
			return config, path, nil
		}

		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	return config, path, nil
}

func saveCLIConfig(config *cliConfig, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func setConfigValue(config *cliConfig, key, value string) error {
	switch key {
	case "token":
		config.Token = value
	case "host":
		config.Host = value
	case "space":
		config.Space = value
	case "environment":
		config.Environment = value
	case "output":
		config.Output = value
	default:
		return fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownConfigKey, key, strings.Join(configKeys, ", "))
	}

	return nil
}

func getConfigValue(config *cliConfig, key string) (string, error) {
	switch key {
	case "token":
		return config.Token, nil
	case "host":
		return config.Host, nil
	case "space":
		return config.Space, nil
	case "environment":
		return config.Environment, nil
	case "output":
		return config.Output, nil
	default:
		return "", fmt.Errorf("%w: %s (valid keys: %s)", ErrUnknownConfigKey, key, strings.Join(configKeys, ", "))
	}
}

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Get and set persistent CLI configuration values",
	}

	cmd.AddCommand(newConfigListCommand())
	cmd.AddCommand(newConfigGetCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _, err := loadCLIConfig()
			if err != nil {
				return err
			}

			values := map[string]string{
				"token":       config.Token,
				"host":        config.Host,
				"space":       config.Space,
				"environment": config.Environment,
				"output":      config.Output,
			}

			keys := make([]string, 0, len(values))
			for key := range values {
				keys = append(keys, key)
			}

			sort.Strings(keys)

			for _, key := range keys {
				value := values[key]
				if key == "token" && value != "" {
					value = "***"
				}

				if value == "" {
					value = "(not set)"
				}

				_, _ = fmt.Fprintf(os.Stdout, "%-12s %s\n", key, value)
			}

			return nil
		},
	}
}

func newConfigGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, _, err := loadCLIConfig()
			if err != nil {
				return err
			}

			value, err := getConfigValue(config, args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, value)

			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, path, err := loadCLIConfig()
			if err != nil {
				return err
			}

			if err := setConfigValue(config, args[0], args[1]); err != nil {
				return err
			}

			if err := saveCLIConfig(config, path); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config, path, err := loadCLIConfig()
			if err != nil {
				return err
			}

			if err := setConfigValue(config, args[0], ""); err != nil {
				return err
			}

			if err := saveCLIConfig(config, path); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", args[0])

			return nil
		},
	}
}

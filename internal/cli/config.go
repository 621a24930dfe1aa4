package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dshills/covdiff/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage covdiff configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(os.Stderr, "Config file already exists at %s\n", path)
			return nil
		}

		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Config file created at %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile()
		if err != nil {
			return err
		}

		if err := config.SetField(&cfg, args[0], args[1]); err != nil {
			return err
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration and where it comes from",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(os.Stdout)
	},
}

// showConfig prints the effective config as YAML, preceded by comment lines
// naming the config file and any environment overrides in effect.
func showConfig(w io.Writer) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(nil)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "# config file: %s (not found, using defaults)\n", path)
	} else {
		fmt.Fprintf(w, "# config file: %s\n", path)
	}
	if env := config.EnvOverrides(); len(env) > 0 {
		fmt.Fprintf(w, "# environment: %s\n", strings.Join(env, ", "))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
}

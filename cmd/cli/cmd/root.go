// Package cmd provides the CLI commands for pricing-calculator.
package cmd

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"pricing-calculator/internal/config"
	"pricing-calculator/internal/logging"
)

// Version is the tool version, overridden at build time with -ldflags
var Version = "0.1.0"

var (
	cfgFile     string
	verbose     bool
	catalogPath string
	noColor     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pricing-calculator",
	Short: "Calculate monthly revenue for client pricing models",
	Long: `pricing-calculator prices a client's expected activity under a pricing model.

It ships a catalog of client types with their default pricing models, and
can load further client types from HCL or JSON files.

Examples:
  pricing-calculator clients
  pricing-calculator calculate psp_merchants --transactions 20000
  pricing-calculator calculate --structure hybrid --param monthly_fee=500 --param percentage_fee=0.2
  pricing-calculator calculate saas_embedded --format json`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pricing-calculator.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "HCL or JSON catalog file or directory merged over the built-in client types")

	// Add subcommands
	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func initConfig() {
	config.LoadEnv()

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()
	config.Set(cfg)

	// Initialize logging
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pricing-calculator version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := sonic.ConfigStd.MarshalIndent(config.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s", path)
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee Fuzzy engine. Provides commands to
evaluate, sweep and validate Mamdani and Takagi-Sugeno models with configuration management
and structured logging.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-fuzzy/cmd/fuzzy/commands"
	"github.com/kleascm/akaylee-fuzzy/pkg/fuzzy"
)

func newRootCmd() *cobra.Command {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "akaylee-fuzzy",
		Short: "Akaylee Fuzzy - Mamdani and Takagi-Sugeno fuzzy inference engine",
		Long: `Akaylee Fuzzy evaluates fuzzy rule based models. Linguistic variables are defined
by piecewise linear membership functions, rules are written in a small textual grammar,
and rule blocks are evaluated with Mamdani centroid defuzzification or Takagi-Sugeno
weighted averaging.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Configuration file path")
	pf.String("log-level", "warn", "Logging level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json, custom)")
	pf.String("log-dir", "", "Log output directory (empty logs to stderr only)")
	pf.Int("log-max-files", 10, "Maximum number of log files to keep")
	pf.Int("resolution", fuzzy.DefaultResolution, "Mamdani output domain samples")
	pf.String("no-fire-policy", "default", "Behavior when no rule fires (default, error)")
	pf.String("metrics-file", "", "Write Prometheus metrics in textfile format after the run")

	// Bind flags to viper
	viper.BindPFlag("config", pf.Lookup("config"))
	viper.BindPFlag("log_level", pf.Lookup("log-level"))
	viper.BindPFlag("log_format", pf.Lookup("log-format"))
	viper.BindPFlag("log_dir", pf.Lookup("log-dir"))
	viper.BindPFlag("log_max_files", pf.Lookup("log-max-files"))
	viper.BindPFlag("resolution", pf.Lookup("resolution"))
	viper.BindPFlag("no_fire_policy", pf.Lookup("no-fire-policy"))
	viper.BindPFlag("metrics_file", pf.Lookup("metrics-file"))

	// Add compute command
	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "Evaluate a model for one set of crisp inputs",
		Long: `Evaluate every rule block of a model. Inputs are given as repeated name=value pairs;
inputs the model does not use are ignored.`,
		Example: `  akaylee-fuzzy compute --model accident --input speed=110 --input visibility=2
  akaylee-fuzzy compute --model-file model.yaml --input temp=21 --json`,
		Args: cobra.NoArgs,
		RunE: commands.RunCompute,
	}
	computeCmd.Flags().String("model", "", "Built-in model name")
	computeCmd.Flags().String("model-file", "", "YAML model file")
	computeCmd.Flags().StringArray("input", nil, "Crisp input as name=value (repeatable)")
	computeCmd.Flags().Bool("json", false, "Print results as JSON")
	computeCmd.MarkFlagsMutuallyExclusive("model", "model-file")

	viper.BindPFlag("compute.model", computeCmd.Flags().Lookup("model"))
	viper.BindPFlag("compute.model_file", computeCmd.Flags().Lookup("model-file"))
	viper.BindPFlag("compute.input", computeCmd.Flags().Lookup("input"))
	viper.BindPFlag("compute.json", computeCmd.Flags().Lookup("json"))

	rootCmd.AddCommand(computeCmd)

	// Add sweep command
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a model over a two dimensional input grid",
		Long: `Sweep two input variables over a regular grid and write the response surface as JSON.
Axes are given as name:min:max:steps. Other inputs are held at the values given with --input.`,
		Example: `  akaylee-fuzzy sweep --model tomorrow --x yesterday:0:20:21 --y today:0:20:21 --output surface.json`,
		Args:    cobra.NoArgs,
		RunE:    commands.RunSweep,
	}
	sweepCmd.Flags().String("model", "", "Built-in model name")
	sweepCmd.Flags().String("model-file", "", "YAML model file")
	sweepCmd.Flags().String("x", "", "X axis as name:min:max:steps (required)")
	sweepCmd.Flags().String("y", "", "Y axis as name:min:max:steps (required)")
	sweepCmd.Flags().StringArray("input", nil, "Fixed input as name=value (repeatable)")
	sweepCmd.Flags().String("block", "", "Rule block to sweep (default: the only block)")
	sweepCmd.Flags().String("target", "", "Mamdani output variable (default: the only output)")
	sweepCmd.Flags().Int("workers", 0, "Concurrent rows (0 = number of CPUs)")
	sweepCmd.Flags().String("output", "", "Surface JSON file (default: timestamped file under --results-dir)")
	sweepCmd.Flags().String("results-dir", "./results", "Directory for timestamped surfaces")
	sweepCmd.MarkFlagRequired("x")
	sweepCmd.MarkFlagRequired("y")
	sweepCmd.MarkFlagsMutuallyExclusive("model", "model-file")

	viper.BindPFlag("sweep.model", sweepCmd.Flags().Lookup("model"))
	viper.BindPFlag("sweep.model_file", sweepCmd.Flags().Lookup("model-file"))
	viper.BindPFlag("sweep.x", sweepCmd.Flags().Lookup("x"))
	viper.BindPFlag("sweep.y", sweepCmd.Flags().Lookup("y"))
	viper.BindPFlag("sweep.input", sweepCmd.Flags().Lookup("input"))
	viper.BindPFlag("sweep.block", sweepCmd.Flags().Lookup("block"))
	viper.BindPFlag("sweep.target", sweepCmd.Flags().Lookup("target"))
	viper.BindPFlag("sweep.workers", sweepCmd.Flags().Lookup("workers"))
	viper.BindPFlag("sweep.output", sweepCmd.Flags().Lookup("output"))
	viper.BindPFlag("sweep.results_dir", sweepCmd.Flags().Lookup("results-dir"))

	rootCmd.AddCommand(sweepCmd)

	// Add check command for model file validation
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate and build a model file",
		Long: `Decode a YAML model file, validate its structure, resolve every rule and build the
system without evaluating it. Useful in CI before shipping a model.`,
		Args: cobra.NoArgs,
		RunE: commands.RunCheck,
	}
	checkCmd.Flags().String("model-file", "", "YAML model file (required)")
	checkCmd.MarkFlagRequired("model-file")
	viper.BindPFlag("check.model_file", checkCmd.Flags().Lookup("model-file"))

	rootCmd.AddCommand(checkCmd)

	// Add list-models command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "list-models",
		Short: "List the built-in models",
		Args:  cobra.NoArgs,
		RunE:  commands.ListModels,
	})

	return rootCmd
}

func main() {
	// Execute root command
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

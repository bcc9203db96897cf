/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for bsonschema. Infers a draft-04 JSON Schema from a
single sample document (JSON, MongoDB Extended JSON, YAML, BSON or a JSON block embedded
in HTML) with configuration from flags, a config file or the environment.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/bsonschema/cmd/bsonschema/commands"
	"github.com/kleascm/bsonschema/pkg/sample"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	logFormat  string
	logDir     string
	noColor    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bsonschema",
		Short: "bsonschema - infer a JSON Schema from one sample document",
		Long: `bsonschema walks a single representative document and produces a draft-04
JSON Schema describing its structure. BSON types such as ObjectId, binary data,
dates, regular expressions and 32/64-bit integers keep their own type names.`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Also write logs to timestamped files in this directory")
	rootCmd.PersistentFlags().Int("log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured log output")

	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))

	// Sample flags are shared by infer and check
	rootCmd.PersistentFlags().String("format", "auto", "Sample format (auto, json, extjson, yaml, bson, html)")
	rootCmd.PersistentFlags().String("selector", "", "CSS selector of the JSON block in HTML samples")
	rootCmd.PersistentFlags().String("method", "GET", "HTTP method for URL samples (GET, POST)")
	rootCmd.PersistentFlags().StringSlice("header", []string{}, "HTTP header for URL samples (Key: Value)")
	rootCmd.PersistentFlags().String("body", "", "HTTP request body for POST samples")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "HTTP request timeout")
	rootCmd.PersistentFlags().Int64("max-size", sample.DefaultMaxSize, "Maximum sample size in bytes")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("selector", rootCmd.PersistentFlags().Lookup("selector"))
	viper.BindPFlag("method", rootCmd.PersistentFlags().Lookup("method"))
	viper.BindPFlag("headers", rootCmd.PersistentFlags().Lookup("header"))
	viper.BindPFlag("body", rootCmd.PersistentFlags().Lookup("body"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	viper.BindPFlag("max_size", rootCmd.PersistentFlags().Lookup("max-size"))

	inferCmd := &cobra.Command{
		Use:   "infer [file|url|-]",
		Short: "Infer a schema from a sample document",
		Long: `Read one sample document and print its inferred schema. The sample may be a
local file, an http(s) URL or "-" for standard input (the default). With --title,
object samples get that title; array samples get "<title> Set" at the root and
the plain title on their items.`,
		Args: cobra.MaximumNArgs(1),
		RunE: commands.RunInfer,
	}

	inferCmd.Flags().String("title", "", "Schema title")
	inferCmd.Flags().StringP("output", "o", "", "Write the schema to this file instead of stdout")
	inferCmd.Flags().String("output-format", "json", "Schema output format (json, yaml)")
	inferCmd.Flags().Int("indent", 2, "Indentation width (0 = compact JSON)")

	viper.BindPFlag("title", inferCmd.Flags().Lookup("title"))
	viper.BindPFlag("output", inferCmd.Flags().Lookup("output"))
	viper.BindPFlag("output_format", inferCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("indent", inferCmd.Flags().Lookup("indent"))

	rootCmd.AddCommand(inferCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List the type names the classifier can emit",
		Long: `List every type name in classification order together with the Go and BSON
values that map to it.`,
		Run: commands.ListTypes,
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "check [file|url]",
		Short: "Validate configuration and, optionally, a sample source",
		Long: `Validate the configuration and log directory. When a sample location is given,
also fetch and decode it without inferring a schema.`,
		Args: cobra.MaximumNArgs(1),
		RunE: commands.PerformSelfCheck,
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

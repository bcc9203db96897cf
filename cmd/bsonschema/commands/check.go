/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Self-check command. Validates configuration, the log directory and,
optionally, that a sample can be fetched and decoded.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleascm/bsonschema/pkg/sample"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type selfCheck struct {
	name     string
	function func() error
}

// PerformSelfCheck performs configuration and environment validation
func PerformSelfCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔍 bsonschema - Self-Check")
	fmt.Fprintln(out, "==========================")
	fmt.Fprintln(out)

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	checks := []selfCheck{
		{"Configuration Validation", checkConfiguration},
		{"Log Directory", checkLogDirectory},
	}
	if len(args) > 0 {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		checks = append(checks, selfCheck{"Sample Source", func() error { return checkSample(ctx, args) }})
	}

	passed := 0
	total := len(checks)

	for _, check := range checks {
		fmt.Fprintf(out, "🔍 %s... ", check.name)
		if err := check.function(); err != nil {
			fmt.Fprintf(out, "❌ FAILED: %v\n", err)
		} else {
			fmt.Fprintln(out, "✅ PASSED")
			passed++
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "📊 Results: %d/%d checks passed\n", passed, total)

	if passed != total {
		return fmt.Errorf("%d/%d checks failed", total-passed, total)
	}
	fmt.Fprintln(out, "✨ All checks passed!")
	return nil
}

// checkConfiguration validates every configurable value
func checkConfiguration() error {
	if err := LoggerConfigFromViper().Validate(); err != nil {
		return err
	}
	_, err := ResolveInferSettings(nil)
	return err
}

// checkLogDirectory verifies the log directory can be written
func checkLogDirectory() error {
	dir := viper.GetString("log_dir")
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create log directory: %w", err)
	}
	probe := filepath.Join(dir, ".bsonschema_check")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("log directory not writable: %w", err)
	}
	return os.Remove(probe)
}

// checkSample fetches and decodes the given sample
func checkSample(ctx context.Context, args []string) error {
	settings, err := ResolveInferSettings(args)
	if err != nil {
		return err
	}
	_, _, err = sample.Load(ctx, settings.Location, settings.Sample)
	return err
}

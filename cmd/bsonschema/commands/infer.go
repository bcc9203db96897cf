/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer.go
Description: Schema inference command. Loads one sample document from a file, stdin or an
HTTP endpoint, infers its draft-04 schema and writes it as JSON or YAML.
*/

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kleascm/bsonschema/pkg/inference"
	"github.com/kleascm/bsonschema/pkg/sample"
	"github.com/kleascm/bsonschema/pkg/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// InferSettings collects the inference options resolved from flags, config and env
type InferSettings struct {
	Location     string
	Title        string
	Titled       bool // a title was given, possibly empty
	Output       string
	OutputFormat schema.Format
	Indent       int
	Sample       *sample.Options
}

// ResolveInferSettings reads the inference settings from viper
func ResolveInferSettings(args []string) (*InferSettings, error) {
	location := sample.StdinPath
	if len(args) > 0 && args[0] != "" {
		location = args[0]
	}

	format, err := sample.ParseFormat(viper.GetString("format"))
	if err != nil {
		return nil, err
	}
	outputFormat, err := schema.ParseFormat(viper.GetString("output_format"))
	if err != nil {
		return nil, err
	}
	indent := viper.GetInt("indent")
	if indent < 0 {
		return nil, fmt.Errorf("indent must not be negative: %d", indent)
	}

	opts := sample.DefaultOptions()
	opts.Format = format
	if method := viper.GetString("method"); method != "" {
		opts.Method = strings.ToUpper(method)
	}
	opts.Headers = viper.GetStringSlice("headers")
	opts.Body = viper.GetString("body")
	if timeout := viper.GetDuration("timeout"); timeout > 0 {
		opts.Timeout = timeout
	}
	opts.Selector = viper.GetString("selector")
	if maxSize := viper.GetInt64("max_size"); maxSize > 0 {
		opts.MaxSize = maxSize
	}

	return &InferSettings{
		Location:     location,
		Title:        viper.GetString("title"),
		Titled:       viper.IsSet("title"),
		Output:       viper.GetString("output"),
		OutputFormat: outputFormat,
		Indent:       indent,
		Sample:       opts,
	}, nil
}

// RunInfer infers a schema for the sample named by the first argument
func RunInfer(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return err
	}
	defer logger.Close()

	settings, err := ResolveInferSettings(args)
	if err != nil {
		logger.LogFailure("configuration", err, nil)
		return err
	}
	settings.Sample.Stdin = cmd.InOrStdin()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	value, payload, err := sample.Load(ctx, settings.Location, settings.Sample)
	if err != nil {
		logger.LogFailure("load", err, map[string]interface{}{"location": settings.Location})
		return err
	}
	logger.LogSample(payload.Origin, string(payload.Format), len(payload.Data), nil)

	engine := inference.NewEngine(inference.WithLogger(logger.GetLogger()))
	start := time.Now()
	var node *schema.Node
	if settings.Titled {
		node, err = engine.InferTitled(settings.Title, value)
	} else {
		node, err = engine.Infer(value)
	}
	if err != nil {
		logger.LogFailure("inference", err, map[string]interface{}{"origin": payload.Origin})
		return err
	}
	logger.LogInference(settings.Title, node.Type, time.Since(start), nil)

	if err := writeSchema(cmd.OutOrStdout(), node, settings); err != nil {
		logger.LogFailure("output", err, map[string]interface{}{"output": settings.Output})
		return err
	}
	return nil
}

// writeSchema writes the document to the output file, or to w when none is set
func writeSchema(w io.Writer, node *schema.Node, settings *InferSettings) error {
	if settings.Output == "" || settings.Output == sample.StdinPath {
		return schema.Encode(w, node, settings.OutputFormat, settings.Indent)
	}

	data, err := schema.Marshal(node, settings.OutputFormat, settings.Indent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(settings.Output, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	return nil
}

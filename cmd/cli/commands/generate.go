package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inferloop/tabsynth/cmd/cli/config"
	"github.com/inferloop/tabsynth/internal/export"
	"github.com/inferloop/tabsynth/internal/synthesis"
	"github.com/inferloop/tabsynth/internal/templates"
	"github.com/inferloop/tabsynth/pkg/models"
)

type GenerateOptions struct {
	SchemaFile          string
	Template            string
	Rows                int
	Seed                int64
	PrivacyLevel        string
	MissingPercentage   float64
	OutlierPercentage   float64
	DuplicatePercentage float64
	OutputFile          string
	Format              string
	PostgresDSN         string
	PostgresTable       string
}

func NewGenerateCmd() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic tabular data",
		Long: `Generate synthetic tabular data from a schema file or a built-in
template, applying constraints, anonymization, and output formatting.`,
		Example: `  # Generate 500 customer records as CSV
  tabsynth generate --template customer_database --rows 500 --output customers.csv

  # Generate from a schema file with a fixed seed
  tabsynth generate --schema orders.yaml --rows 1000 --seed 42 --format json

  # Generate anonymized data and load it into Postgres
  tabsynth generate --template healthcare_records --privacy high \
    --postgres-dsn "postgres://localhost/synth?sslmode=disable" --postgres-table patients`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyConfigDefaults(cmd, opts)
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SchemaFile, "schema", "s", "", "Path to schema file (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.Template, "template", "t", "", "Built-in template name (see 'tabsynth templates')")
	cmd.Flags().IntVarP(&opts.Rows, "rows", "n", 100, "Number of rows to generate")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed (0 uses current time)")
	cmd.Flags().StringVar(&opts.PrivacyLevel, "privacy", "low", "Privacy level (low, medium, high)")
	cmd.Flags().Float64Var(&opts.MissingPercentage, "missing", 0, "Percentage of records with a missing value (0-100)")
	cmd.Flags().Float64Var(&opts.OutlierPercentage, "outliers", 0, "Percentage of outliers in numeric columns (0-100)")
	cmd.Flags().Float64Var(&opts.DuplicatePercentage, "duplicates", 0, "Percentage of duplicated records to append (0-100)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "csv", "Output format (csv, json, sql)")
	cmd.Flags().StringVar(&opts.PostgresDSN, "postgres-dsn", "", "Postgres connection string to load the dataset into")
	cmd.Flags().StringVar(&opts.PostgresTable, "postgres-table", "", "Postgres table name (required with --postgres-dsn)")

	return cmd
}

// applyConfigDefaults fills in flags the user left untouched from the CLI
// config file. Explicit flags always win.
func applyConfigDefaults(cmd *cobra.Command, opts *GenerateOptions) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		return
	}

	if !cmd.Flags().Changed("format") && cfg.DefaultFormat != "" {
		opts.Format = cfg.DefaultFormat
	}
	if !cmd.Flags().Changed("output") && cfg.DefaultOutput != "" {
		opts.OutputFile = cfg.DefaultOutput
	}
	if !cmd.Flags().Changed("rows") && cfg.DefaultRows > 0 {
		opts.Rows = cfg.DefaultRows
	}
	if !cmd.Flags().Changed("privacy") && cfg.Generation.PrivacyLevel != "" {
		opts.PrivacyLevel = cfg.Generation.PrivacyLevel
	}
	if !cmd.Flags().Changed("missing") {
		opts.MissingPercentage = cfg.Generation.MissingPercentage
	}
	if !cmd.Flags().Changed("outliers") {
		opts.OutlierPercentage = cfg.Generation.OutlierPercentage
	}
	if !cmd.Flags().Changed("duplicates") {
		opts.DuplicatePercentage = cfg.Generation.DuplicatePercentage
	}
	if opts.PostgresDSN == "" && cfg.Postgres.DSN != "" {
		opts.PostgresDSN = cfg.Postgres.DSN
		if opts.PostgresTable == "" {
			opts.PostgresTable = cfg.Postgres.Table
		}
	}
}

func runGenerate(opts *GenerateOptions) error {
	schema, err := resolveSchema(opts.SchemaFile, opts.Template)
	if err != nil {
		return err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := newLogger()
	engine := synthesis.NewEngine(logger)

	dataset, err := engine.Generate(&models.GenerationRequest{
		Schema:              schema,
		Rows:                opts.Rows,
		Seed:                seed,
		PrivacyLevel:        models.PrivacyLevel(opts.PrivacyLevel),
		MissingPercentage:   opts.MissingPercentage,
		OutlierPercentage:   opts.OutlierPercentage,
		DuplicatePercentage: opts.DuplicatePercentage,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Generated %d records from schema %q (seed %d)\n",
		len(dataset.Records), dataset.SchemaName, dataset.Seed)

	if opts.PostgresDSN != "" {
		if opts.PostgresTable == "" {
			return fmt.Errorf("--postgres-table is required with --postgres-dsn")
		}
		sink, err := export.NewPostgresSink(opts.PostgresDSN, logger)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.Store(context.Background(), dataset, opts.PostgresTable); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Loaded dataset into table %q\n", opts.PostgresTable)
		return nil
	}

	out, closer, err := openOutput(opts.OutputFile)
	if err != nil {
		return err
	}
	defer closer()

	return export.NewEngine(logger).Export(out, dataset, opts.Format)
}

func resolveSchema(schemaFile, template string) (*models.Schema, error) {
	switch {
	case schemaFile != "" && template != "":
		return nil, fmt.Errorf("--schema and --template are mutually exclusive")
	case schemaFile != "":
		return models.LoadSchema(schemaFile)
	case template != "":
		schema := templates.Lookup(template)
		if schema == nil {
			return nil, fmt.Errorf("unknown template %q (see 'tabsynth templates')", template)
		}
		return schema, nil
	default:
		return nil, fmt.Errorf("either --schema or --template is required")
	}
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/inferloop/tabsynth/internal/export"
	"github.com/inferloop/tabsynth/internal/privacy"
	"github.com/inferloop/tabsynth/internal/synthesis"
	"github.com/inferloop/tabsynth/pkg/models"
)

type AnonymizeOptions struct {
	InputFile  string
	SchemaFile string
	Level      string
	Seed       int64
	OutputFile string
	Format     string
}

func NewAnonymizeCmd() *cobra.Command {
	opts := &AnonymizeOptions{}

	cmd := &cobra.Command{
		Use:   "anonymize",
		Short: "Anonymize an existing dataset",
		Long: `Apply masking, pseudonymization, date fuzzing, noise, or generalization
to a dataset JSON file, using its schema to decide the treatment per column.`,
		Example: `  # Mask PII columns of a previously generated dataset
  tabsynth anonymize --input customers.json --schema customers.yaml --level medium

  # Full pseudonymization and generalization
  tabsynth anonymize --input customers.json --schema customers.yaml --level high -o safe.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnonymize(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.InputFile, "input", "i", "", "Path to dataset JSON file")
	cmd.Flags().StringVarP(&opts.SchemaFile, "schema", "s", "", "Path to schema file (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.Level, "level", "l", "medium", "Privacy level (low, medium, high)")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "Random seed (0 uses current time)")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "-", "Output file (- for stdout)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "json", "Output format (csv, json, sql)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("schema")

	return cmd
}

func runAnonymize(opts *AnonymizeOptions) error {
	level := models.PrivacyLevel(opts.Level)
	switch level {
	case models.PrivacyLevelLow, models.PrivacyLevelMedium, models.PrivacyLevelHigh:
	default:
		return fmt.Errorf("unknown privacy level %q", opts.Level)
	}

	dataset, err := loadDataset(opts.InputFile)
	if err != nil {
		return err
	}
	schema, err := models.LoadSchema(opts.SchemaFile)
	if err != nil {
		return err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger := newLogger()
	anonymizer := privacy.NewAnonymizer(rand.New(rand.NewSource(seed)), logger)
	synthesis.AnonymizeDataset(dataset, schema, anonymizer, level)
	dataset.PrivacyLevel = level

	out, closer, err := openOutput(opts.OutputFile)
	if err != nil {
		return err
	}
	defer closer()

	return export.NewEngine(logger).Export(out, dataset, opts.Format)
}

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inferloop/tabsynth/internal/validation"
	"github.com/inferloop/tabsynth/pkg/models"
)

type ValidateOptions struct {
	SchemaFile string
	DataFile   string
}

func NewValidateCmd() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a schema file, optionally against a dataset",
		Example: `  # Check a schema for structural problems
  tabsynth validate --schema orders.yaml

  # Check a previously generated dataset against its schema
  tabsynth validate --schema orders.yaml --data orders.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.SchemaFile, "schema", "s", "", "Path to schema file (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.DataFile, "data", "d", "", "Path to a dataset JSON file to check against the schema")
	cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(opts *ValidateOptions) error {
	schema, err := models.LoadSchema(opts.SchemaFile)
	if err != nil {
		return err
	}

	logger := newLogger()
	result := validation.NewSchemaValidator(logger).ValidateSchema(schema)
	printValidation("Schema", result.Valid, result.Errors, result.Warnings)

	if !result.Valid {
		return fmt.Errorf("schema validation failed")
	}

	if opts.DataFile != "" {
		dataset, err := loadDataset(opts.DataFile)
		if err != nil {
			return err
		}
		dataResult := validation.NewDataValidator(logger).ValidateData(dataset, schema)
		printValidation("Data", dataResult.Valid, dataResult.Errors, dataResult.Warnings)
		if !dataResult.Valid {
			return fmt.Errorf("data validation failed")
		}
	}

	return nil
}

func printValidation(subject string, valid bool, errs, warnings []string) {
	if valid {
		fmt.Printf("%s: OK\n", subject)
	} else {
		fmt.Printf("%s: FAILED\n", subject)
	}
	for _, e := range errs {
		fmt.Printf("  error: %s\n", e)
	}
	for _, w := range warnings {
		fmt.Printf("  warning: %s\n", w)
	}
}

func loadDataset(path string) (*models.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	var dataset models.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}
	return &dataset, nil
}

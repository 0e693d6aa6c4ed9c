package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inferloop/tabsynth/internal/templates"
)

func NewTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates [name]",
		Short: "List built-in schema templates or show one as JSON",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # List available templates
  tabsynth templates

  # Print the e-commerce template schema
  tabsynth templates ecommerce_transactions`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range templates.Names() {
					schema := templates.Lookup(name)
					fmt.Printf("%-28s %d fields\n", name, len(schema.Fields))
				}
				return nil
			}

			schema := templates.Lookup(args[0])
			if schema == nil {
				return fmt.Errorf("unknown template %q", args[0])
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(schema)
		},
	}

	return cmd
}

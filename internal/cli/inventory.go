package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/flix/internal/inventory"
)

// InventoryItem is the JSON form of one catalog entry.
type InventoryItem struct {
	Position  int    `json:"position"`
	Title     string `json:"title"`
	Stock     int    `json:"stock"`
	Available bool   `json:"available"`
}

// NewInventoryCommand creates the inventory command.
func NewInventoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory [file]",
		Short: "Print the sorted catalog",
		Long: `Load an inventory file and print its titles in catalog order.

Each line of the file is "<stock> <title>". A leading "A", "An" or "The"
is dropped from multi-word titles. Titles with no copies on the shelf
are marked "(currently unavailable)".

Without a file argument the inventory named in the config file is used.

Examples:
  flix inventory ./movies.txt
  flix inventory ./movies.txt --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInventory(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runInventory(opts *RootOptions, args []string, cmd *cobra.Command) error {
	catalog, err := loadCatalog(opts, args)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		items := make([]InventoryItem, 0, catalog.Len())
		for i, it := range catalog.Snapshot() {
			items = append(items, InventoryItem{
				Position:  i,
				Title:     it.Name(),
				Stock:     it.Stock(),
				Available: it.IsAvailable(),
			})
		}
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(items)
	}

	fmt.Fprint(cmd.OutOrStdout(), catalog.Traverse())
	return nil
}

// loadCatalog loads the inventory named by args[0], falling back to the
// configured inventory.
func loadCatalog(opts *RootOptions, args []string) (*inventory.Catalog, error) {
	path := opts.Config().Inventory
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, NewExitError(ExitCommandError, "no inventory file given and none configured")
	}

	catalog, err := inventory.LoadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load inventory", err)
	}
	return catalog, nil
}

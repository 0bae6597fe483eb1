package catalog

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/format"
	"github.com/solemate/cli/internal/session"
)

// CatalogCmd represents the catalog command
var CatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Product catalog commands",
	Long: `Product catalog commands for Solemate CLI.

This command group lists products and categories. Catalog data is
public; no sign-in is required.`,
}

// productsCmd lists products
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products",
	Long:  "List catalog products, optionally filtered by category or best sellers",
	RunE:  runProducts,
}

// categoriesCmd lists categories
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	Long:  "List all product categories",
	RunE:  runCategories,
}

func newClient() (*api.Client, error) {
	cfg := config.Get()
	store, err := session.NewStoreFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return api.New(cfg, store), nil
}

func runProducts(cmd *cobra.Command, args []string) error {
	categoryID, _ := cmd.Flags().GetString("category")
	bestSellers, _ := cmd.Flags().GetBool("best-sellers")

	client, err := newClient()
	if err != nil {
		return err
	}

	products, err := client.ListProducts(cmd.Context(), categoryID, bestSellers)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	if len(products) == 0 {
		fmt.Println("No products found")
		return nil
	}
	return format.Print(products)
}

func runCategories(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	categories, err := client.ListCategories(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	if len(categories) == 0 {
		fmt.Println("No categories found")
		return nil
	}
	return format.Print(categories)
}

func init() {
	productsCmd.Flags().StringP("category", "c", "", "Filter by category id")
	productsCmd.Flags().Bool("best-sellers", false, "Only show best sellers")

	CatalogCmd.AddCommand(productsCmd)
	CatalogCmd.AddCommand(categoriesCmd)
}

package favorites

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solemate/cli/internal/api"
	"github.com/solemate/cli/internal/config"
	"github.com/solemate/cli/internal/format"
	"github.com/solemate/cli/internal/session"
)

// FavoritesCmd represents the favorites command
var FavoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Favorites commands",
	Long: `Favorites commands for Solemate CLI.

Favorites are user-scoped: the signed-in user's bearer token is
attached, and the commands fail without an active session.`,
}

// listCmd lists favorites
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorites",
	Long:  "List the signed-in user's favorite products",
	RunE:  runList,
}

// addCmd adds a favorite
var addCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a favorite",
	Long:  "Save a product to the favorites list",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

// removeCmd removes a favorite
var removeCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a favorite",
	Long:  "Remove a product from the favorites list",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

// newClient builds the client and requires a signed-in session.
func newClient() (*api.Client, session.Session, error) {
	cfg := config.Get()
	store, err := session.NewStoreFromConfig(cfg)
	if err != nil {
		return nil, session.Session{}, fmt.Errorf("failed to open session store: %w", err)
	}

	sess, ok := store.Current()
	if !ok || store.Expired() {
		return nil, session.Session{}, errors.New("not signed in; run: solemate auth signin")
	}
	return api.New(cfg, store), sess, nil
}

func runList(cmd *cobra.Command, args []string) error {
	client, _, err := newClient()
	if err != nil {
		return err
	}

	favorites, err := client.ListFavorites(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	if len(favorites) == 0 {
		fmt.Println("No favorites yet")
		return nil
	}
	return format.Print(favorites)
}

func runAdd(cmd *cobra.Command, args []string) error {
	productID := args[0]

	client, sess, err := newClient()
	if err != nil {
		return err
	}

	favorite, err := client.AddFavorite(cmd.Context(), sess.UserID, productID)
	if err != nil {
		if api.StatusCode(err) == 409 {
			return fmt.Errorf("product %s is already in favorites", productID)
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	format.PrintSuccess("✓ Product %s added to favorites", favorite.ProductID)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	productID := args[0]

	client, sess, err := newClient()
	if err != nil {
		return err
	}

	if err := client.RemoveFavorite(cmd.Context(), sess.UserID, productID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	format.PrintSuccess("✓ Product %s removed from favorites", productID)
	return nil
}

func init() {
	FavoritesCmd.AddCommand(listCmd)
	FavoritesCmd.AddCommand(addCmd)
	FavoritesCmd.AddCommand(removeCmd)
}

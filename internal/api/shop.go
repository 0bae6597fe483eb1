package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/solemate/cli/internal/models"
)

// returnRepresentation asks the REST layer to echo written rows back.
var returnRepresentation = http.Header{"Prefer": []string{"return=representation"}}

// ListProducts returns catalog products, optionally filtered by category
// or restricted to best sellers.
func (c *Client) ListProducts(ctx context.Context, categoryID string, bestSellers bool) ([]models.Product, error) {
	query := url.Values{}
	query.Set("select", "*")
	if categoryID != "" {
		query.Set("category_id", "eq."+categoryID)
	}
	if bestSellers {
		query.Set("best_seller", "is.true")
	}

	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "rest/v1/products?"+query.Encode(), ScopePublic, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories returns all product categories.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "rest/v1/categories?select=*", ScopePublic, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListFavorites returns the signed-in user's favorites.
func (c *Client) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := c.do(ctx, http.MethodGet, "rest/v1/favorites?select=*", ScopeUser, nil, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// AddFavorite saves a product to the user's favorites. Uniqueness is
// enforced by the backend; adding a duplicate yields a 409.
func (c *Client) AddFavorite(ctx context.Context, userID, productID string) (*models.Favorite, error) {
	req := models.FavoriteRequest{UserID: userID, ProductID: productID}

	var rows []models.Favorite
	err := c.send(ctx, http.MethodPost, "rest/v1/favorites", c.credentialFor(ScopeUser), req, &rows, returnRepresentation)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("favorite not returned by server")
	}
	return &rows[0], nil
}

// RemoveFavorite deletes a product from the user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, userID, productID string) error {
	query := url.Values{}
	query.Set("user_id", "eq."+userID)
	query.Set("product_id", "eq."+productID)
	return c.do(ctx, http.MethodDelete, "rest/v1/favorites?"+query.Encode(), ScopeUser, nil, nil)
}

// GetProfile fetches the shop profile for a user id.
func (c *Client) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+userID)

	var profiles []models.Profile
	if err := c.do(ctx, http.MethodGet, "rest/v1/profiles?"+query.Encode(), ScopeUser, nil, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile not found")
	}
	return &profiles[0], nil
}

// UpdateProfile patches the mutable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.Profile, error) {
	query := url.Values{}
	query.Set("id", "eq."+userID)

	var rows []models.Profile
	err := c.send(ctx, http.MethodPatch, "rest/v1/profiles?"+query.Encode(), c.credentialFor(ScopeUser), update, &rows, returnRepresentation)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile not returned by server")
	}
	return &rows[0], nil
}

package models

// Product represents a product in the shop catalog
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
	ImageURL    string  `json:"image_url,omitempty" yaml:"image_url,omitempty"`
	CategoryID  string  `json:"category_id,omitempty" yaml:"category_id,omitempty"`
	BestSeller  bool    `json:"best_seller" yaml:"best_seller"`
}

// Category represents a product category
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Favorite represents a product saved to the user's favorites list
type Favorite struct {
	ID        string `json:"id" yaml:"id"`
	UserID    string `json:"user_id" yaml:"user_id"`
	ProductID string `json:"product_id" yaml:"product_id"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// FavoriteRequest is the body for adding a product to favorites
type FavoriteRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

// Profile represents the user's shop profile
type Profile struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address   string `json:"address,omitempty" yaml:"address,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
}

// ProfileUpdate carries the mutable profile fields for a PATCH
type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

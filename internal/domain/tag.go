package domain

import "context"

// Tag is a flat label referenced by products and packages.
// swagger:model Tag
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagRepository defines storage operations for tags and their product links.
type TagRepository interface {
	// EnsureTagForProduct creates the tag if needed and links it to the
	// product. Linking twice is a no-op.
	EnsureTagForProduct(ctx context.Context, productID, tagName string) (string, error)
	ListTagsByProductID(ctx context.Context, productID string) ([]*Tag, error)
	// ListTagsForProducts loads tags for many products at once, keyed by product ID.
	ListTagsForProducts(ctx context.Context, productIDs []string) (map[string][]*Tag, error)
	RemoveProductTag(ctx context.Context, productID, tagID string) error
}

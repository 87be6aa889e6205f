package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

type productVariant struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Price string `json:"price"`
}

type product struct {
	ID       int64            `json:"id"`
	Title    string           `json:"title"`
	Variants []productVariant `json:"variants"`
}

// ProductRepository reads the catalog side of the platform. The first
// variant's price is the authoritative per-night rate for a product.
type ProductRepository struct {
	Client *ShopifyClient
}

func NewProductRepository(client *ShopifyClient) *ProductRepository {
	return &ProductRepository{Client: client}
}

func (r *ProductRepository) GetNightlyRate(ctx context.Context, productID int64) (float64, string, error) {
	var out struct {
		Product product `json:"product"`
	}
	if err := r.Client.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d.json", productID), nil, &out); err != nil {
		return 0, "", err
	}
	if len(out.Product.Variants) == 0 {
		return 0, "", fmt.Errorf("product %d has no variants", productID)
	}
	rate, err := strconv.ParseFloat(out.Product.Variants[0].Price, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parsing price %q of product %d: %w", out.Product.Variants[0].Price, productID, err)
	}
	return rate, out.Product.Title, nil
}

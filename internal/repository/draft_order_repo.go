package repository

import (
	"context"
	"fmt"
	"net/http"

	"lodgely/internal/entities"
)

// DraftOrderLineItem is a custom (non-catalog) line item: the price is set by
// this service, and the booking details travel as line item properties so the
// orders/create webhook can read them back.
type DraftOrderLineItem struct {
	Title      string                      `json:"title"`
	Price      string                      `json:"price"`
	Quantity   int                         `json:"quantity"`
	Properties []entities.LineItemProperty `json:"properties,omitempty"`
}

type draftOrder struct {
	ID         int64                `json:"id,omitempty"`
	Email      string               `json:"email,omitempty"`
	LineItems  []DraftOrderLineItem `json:"line_items,omitempty"`
	InvoiceURL string               `json:"invoice_url,omitempty"`
}

// DraftOrderRepository creates payable draft orders on the platform.
type DraftOrderRepository struct {
	Client *ShopifyClient
}

func NewDraftOrderRepository(client *ShopifyClient) *DraftOrderRepository {
	return &DraftOrderRepository{Client: client}
}

// CreateDraftOrder posts a single-item draft order and returns the invoice
// URL the customer pays through.
func (r *DraftOrderRepository) CreateDraftOrder(ctx context.Context, email string, item DraftOrderLineItem) (string, error) {
	payload := map[string]draftOrder{"draft_order": {
		Email:     email,
		LineItems: []DraftOrderLineItem{item},
	}}

	var out struct {
		DraftOrder draftOrder `json:"draft_order"`
	}
	if err := r.Client.do(ctx, http.MethodPost, "/draft_orders.json", payload, &out); err != nil {
		return "", err
	}
	if out.DraftOrder.InvoiceURL == "" {
		return "", fmt.Errorf("draft order %d created without an invoice URL", out.DraftOrder.ID)
	}
	return out.DraftOrder.InvoiceURL, nil
}

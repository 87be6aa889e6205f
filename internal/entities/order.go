package entities

import "strconv"

// Order is the subset of the platform's orders/create webhook payload this
// service reads.
type Order struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	LineItems []OrderLineItem `json:"line_items"`
}

type OrderLineItem struct {
	ProductID  int64              `json:"product_id"`
	Title      string             `json:"title"`
	Quantity   int                `json:"quantity"`
	Properties []LineItemProperty `json:"properties"`
}

type LineItemProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Property returns the value of the named line item property, or "".
func (li OrderLineItem) Property(name string) string {
	for _, p := range li.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// ProductRef resolves the product a line item books: the product_id field
// when the platform set one, otherwise the "Product ID" property carried by
// custom line items.
func (li OrderLineItem) ProductRef() int64 {
	if li.ProductID != 0 {
		return li.ProductID
	}
	id, err := strconv.ParseInt(li.Property("Product ID"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

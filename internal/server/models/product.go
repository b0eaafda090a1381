package models

import "time"

// Product is a catalog item. Price and Quantity are opaque strings carried
// through from the API unmodified; the server does no arithmetic on them.
// ImageKey is the object-storage key of the product image, empty when no
// image has been attached.
type Product struct {
	ID          string
	Name        string
	Price       string
	Brand       string
	Description string
	ImageKey    string
	Quantity    string
	CreatedAt   time.Time
}

package domain

// CartItem is a product held in the cart together with its quantity.
// Count is always >= 1; an item whose count would reach zero is removed
// from the cart instead. Items are keyed by ProdID.
type CartItem struct {
	Product
	Count int `json:"count"`
}

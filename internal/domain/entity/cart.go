package entity

import "time"

// CartItem línea de un carrito.
type CartItem struct {
	ProductID string
	Quantity  int
	Product   *Product // poblado solo en lecturas
}

// Cart carrito de compras referenciado desde User.CartID.
type Cart struct {
	ID        string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

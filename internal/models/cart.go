package models

// CartLineItem es una línea del carrito: un producto y su cantidad
type CartLineItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartSnapshot es la vista derivada del carrito que consume el frontend
type CartSnapshot struct {
	Items []CartLineItem `json:"items"`
	Total float64        `json:"total"`
	Count int            `json:"count"`
}

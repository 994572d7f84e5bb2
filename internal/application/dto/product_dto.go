package dto

import "time"

// ProductResponse salida de un producto con sus contadores.
type ProductResponse struct {
	ID            string    `json:"id"`
	WarehouseID   string    `json:"warehouse_id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	CurrentStock  int64     `json:"current_stock"`
	ReservedStock int64     `json:"reserved_stock"`
	ReorderPoint  int64     `json:"reorder_point"`
	MaxStock      int64     `json:"max_stock"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductLocationResponse cantidad de un producto en una ubicación.
type ProductLocationResponse struct {
	ProductID  string    `json:"product_id"`
	LocationID string    `json:"location_id"`
	Quantity   int64     `json:"quantity"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeleteProductResponse indica si el producto se eliminó o solo se desactivó.
type DeleteProductResponse struct {
	ProductID   string `json:"product_id"`
	Deactivated bool   `json:"deactivated"` // true = tenía movimientos, se conserva inactivo
}

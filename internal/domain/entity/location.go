package entity

import "time"

// Tipos de ubicación física dentro de una bodega.
const (
	LocationTypeBuilding = "BUILDING"
	LocationTypeZone     = "ZONE"
	LocationTypeAisle    = "AISLE"
	LocationTypeShelf    = "SHELF"
	LocationTypeBin      = "BIN"
	LocationTypeStorage  = "STORAGE"
)

// ValidLocationType informa si t es un tipo de ubicación conocido.
func ValidLocationType(t string) bool {
	switch t {
	case LocationTypeBuilding, LocationTypeZone, LocationTypeAisle,
		LocationTypeShelf, LocationTypeBin, LocationTypeStorage:
		return true
	}
	return false
}

// Location representa una ubicación física (zona, pasillo, estante, bin...) de una bodega.
// IsDefault marca la ubicación que recibe los ítems de órdenes sin ubicación explícita.
type Location struct {
	ID          string
	WarehouseID string
	Code        string // único por bodega
	Name        string
	Type        string
	Capacity    *int64 // nil = sin capacidad definida
	IsDefault   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductLocation es la cantidad física de un producto en una ubicación.
// Las filas que llegan a cero se conservan como histórico.
type ProductLocation struct {
	ProductID  string
	LocationID string
	Quantity   int64
	UpdatedAt  time.Time
}

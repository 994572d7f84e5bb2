package entity

// Roles válidos (vienen resueltos en el token del servicio de identidad).
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleViewer  = "viewer"
)

// Actor identifica quién ejecuta una operación y en qué bodega está acotado.
// Lo construye la capa HTTP a partir del token; el núcleo no autentica.
type Actor struct {
	WarehouseID string
	UserID      string
	Role        string
}

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

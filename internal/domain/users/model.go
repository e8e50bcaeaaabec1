package users

import (
	"time"

	"gestor-visitas/internal/domain/access"
)

// User se provisiona fuera del sistema (administrador). Aquí es solo lectura.
type User struct {
	ID     int64
	Nombre string
	Email  string // único, clave de login
	Rol    access.Role
	Area   string

	CreatedAt time.Time
}

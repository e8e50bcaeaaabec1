package auth

import "gestor-visitas/internal/domain/access"

// Claims representa la información extraída del token de sesión.
type Claims struct {
	UserID int64
	Email  string
	Role   access.Role
	Area   string
}

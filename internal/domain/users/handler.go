package users

import (
	"net/http"
	"strings"
	"time"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/middleware"
	"gestor-visitas/internal/platform/logger"
	"gestor-visitas/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/api/usuarios", listUsersHandler(svc, log))
}

type userResponse struct {
	ID        int64       `json:"id"`
	Nombre    string      `json:"nombre"`
	Email     string      `json:"email"`
	Rol       access.Role `json:"rol"`
	Area      string      `json:"area"`
	CreatedAt time.Time   `json:"created_at"`
}

// listUsersHandler godoc
// @Summary Listar usuarios
// @Description Lista usuarios, opcionalmente filtrando por rol. `rol=ASESOR` está disponible para cualquier usuario autenticado (se usa al programar visitas); el resto requiere rol JEFE.
// @Tags usuarios
// @Produce json
// @Param rol query string false "JEFE o ASESOR"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /api/usuarios [get]
func listUsersHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			response.Fail(w, http.StatusUnauthorized, "No autenticado", "")
			return
		}

		var role *access.Role
		if v := strings.TrimSpace(r.URL.Query().Get("rol")); v != "" {
			rr := access.Role(strings.ToUpper(v))
			if !rr.Valid() {
				response.Fail(w, http.StatusBadRequest, "rol inválido", "InvalidPayload")
				return
			}
			role = &rr
		}

		// Listar asesores se permite a cualquiera; lo demás solo al jefe.
		if (role == nil || *role != access.RoleAsesor) && claims.Role != access.RoleJefe {
			response.Fail(w, http.StatusForbidden, "No autorizado", "Forbidden")
			return
		}

		items, err := svc.List(r.Context(), role)
		if err != nil {
			log.Error("listar usuarios", map[string]any{"err": err.Error()})
			response.Fail(w, http.StatusInternalServerError, "Error al obtener usuarios", "")
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		response.OK(w, http.StatusOK, out, "")
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		Area:      u.Area,
		CreatedAt: u.CreatedAt,
	}
}

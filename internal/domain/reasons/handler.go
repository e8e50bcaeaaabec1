package reasons

import (
	"net/http"

	"gestor-visitas/internal/middleware"
	"gestor-visitas/internal/platform/logger"
	"gestor-visitas/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Get("/api/motivos-cancelacion", listReasonsHandler(svc, log))
}

type reasonResponse struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// listReasonsHandler godoc
// @Summary Listar motivos de cancelación
// @Tags motivos
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/motivos-cancelacion [get]
func listReasonsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			response.Fail(w, http.StatusUnauthorized, "No autenticado", "")
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			log.Error("listar motivos", map[string]any{"err": err.Error()})
			response.Fail(w, http.StatusInternalServerError, "Error al obtener motivos de cancelación", "")
			return
		}

		out := make([]reasonResponse, 0, len(items))
		for _, m := range items {
			out = append(out, reasonResponse{ID: m.ID, Nombre: m.Nombre, Descripcion: m.Descripcion})
		}
		response.OK(w, http.StatusOK, out, "")
	}
}

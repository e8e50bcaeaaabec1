package visits

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/middleware"
	"gestor-visitas/internal/platform/logger"
	"gestor-visitas/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/visitas", func(vr chi.Router) {
		vr.Post("/", createVisitHandler(svc, log))
		vr.Get("/", listVisitsHandler(svc, log))

		vr.Get("/{visitaID}", getVisitHandler(svc, log))
		vr.Get("/{visitaID}/trazabilidad", trailHandler(svc, log))

		vr.Put("/{visitaID}/ejecutar", executeHandler(svc, log))
		vr.Put("/{visitaID}/reasignar", reassignHandler(svc, log))
		vr.Put("/{visitaID}/cancelar", cancelHandler(svc, log))
	})

	r.Get("/api/tipos-visita", kindsHandler())
}

type createVisitRequest struct {
	AsesorID        int64  `json:"asesor_id"`
	Objetivo        string `json:"objetivo"`
	Tipo            string `json:"tipo"`
	FechaProgramada string `json:"fecha_programada"` // RFC3339 o YYYY-MM-DDTHH:MM
}

type executeRequest struct {
	Observaciones string `json:"observaciones"`
	Estado        string `json:"estado"` // opcional
}

type reassignRequest struct {
	NuevoAsesorID int64  `json:"nuevo_asesor_id"`
	Motivo        string `json:"motivo"`
}

type cancelRequest struct {
	MotivoCancelacionID int64  `json:"motivo_cancelacion_id"`
	Observaciones       string `json:"observaciones"`
}

type visitResponse struct {
	ID                  int64     `json:"id"`
	AsesorID            int64     `json:"asesor_id"`
	AsesorNombre        string    `json:"asesor_nombre,omitempty"`
	Objetivo            string    `json:"objetivo"`
	Tipo                VisitKind `json:"tipo"`
	FechaProgramada     time.Time `json:"fecha_programada"`
	Estado              State     `json:"estado"`
	MotivoCancelacionID *int64    `json:"motivo_cancelacion_id,omitempty"`
	MotivoCancelacion   string    `json:"motivo_cancelacion,omitempty"`
	Observaciones       *string   `json:"observaciones,omitempty"`
	CreadoPor           int64     `json:"creado_por"`
	ProgramadaPorNombre string    `json:"programada_por_nombre,omitempty"`
	ReasignadaPor       *int64    `json:"reasignada_por,omitempty"`
	ModificadoPor       *int64    `json:"modificado_por,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	// Acciones que el usuario actual podría aplicar ahora.
	Acciones []access.Action `json:"acciones"`
}

type traceResponse struct {
	ID             int64         `json:"id"`
	UsuarioID      int64         `json:"usuario_id"`
	Accion         access.Action `json:"accion"`
	Detalle        string        `json:"detalle"`
	EstadoAnterior string        `json:"estado_anterior,omitempty"`
	EstadoNuevo    string        `json:"estado_nuevo"`
	Fecha          time.Time     `json:"fecha"`
}

type kindResponse struct {
	Valor  VisitKind `json:"valor"`
	Nombre string    `json:"nombre"`
}

// createVisitHandler godoc
// @Summary Programar visita
// @Tags visitas
// @Accept json
// @Produce json
// @Param body body createVisitRequest true "Visita"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /api/visitas [post]
func createVisitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		var req createVisitRequest
		if err := response.DecodeStrict(r, &req); err != nil {
			response.Fail(w, http.StatusBadRequest, "JSON inválido", string(KindInvalidPayload))
			return
		}

		v, err := svc.Create(r.Context(), actor, CreateInput{
			AsesorID:        req.AsesorID,
			Objetivo:        req.Objetivo,
			Tipo:            req.Tipo,
			FechaProgramada: req.FechaProgramada,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}
		response.OK(w, http.StatusCreated, toVisitResponse(v, actor), "Visita programada")
	}
}

// listVisitsHandler godoc
// @Summary Listar visitas
// @Description El jefe ve todas (con filtros); el asesor solo las propias.
// @Tags visitas
// @Produce json
// @Param asesor_id query int false "Asesor"
// @Param fecha query string false "YYYY-MM-DD"
// @Param estado query string false "Estado"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/visitas [get]
func listVisitsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		var filter ListFilter
		if raw := strings.TrimSpace(q.Get("asesor_id")); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				response.Fail(w, http.StatusBadRequest, "asesor_id inválido", string(KindInvalidPayload))
				return
			}
			filter.AsesorID = &id
		}
		filter.Fecha = strings.TrimSpace(q.Get("fecha"))
		if raw := strings.TrimSpace(q.Get("estado")); raw != "" {
			st, ok := ParseState(raw)
			if !ok {
				response.Fail(w, http.StatusBadRequest, "estado inválido", string(KindInvalidPayload))
				return
			}
			filter.Estado = &st
		}

		items, err := svc.List(r.Context(), actor, filter)
		if err != nil {
			writeError(w, log, err)
			return
		}

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v, actor))
		}
		response.OK(w, http.StatusOK, out, "")
	}
}

// getVisitHandler godoc
// @Summary Obtener visita
// @Tags visitas
// @Produce json
// @Param visitaID path int true "Visita"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/visitas/{visitaID} [get]
func getVisitHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		id, ok := visitIDParam(w, r)
		if !ok {
			return
		}

		v, err := svc.Get(r.Context(), actor, id)
		if err != nil {
			writeError(w, log, err)
			return
		}
		response.OK(w, http.StatusOK, toVisitResponse(v, actor), "")
	}
}

// trailHandler godoc
// @Summary Trazabilidad de una visita
// @Tags visitas
// @Produce json
// @Param visitaID path int true "Visita"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/visitas/{visitaID}/trazabilidad [get]
func trailHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		id, ok := visitIDParam(w, r)
		if !ok {
			return
		}

		items, err := svc.Trail(r.Context(), actor, id)
		if err != nil {
			writeError(w, log, err)
			return
		}

		out := make([]traceResponse, 0, len(items))
		for _, e := range items {
			out = append(out, traceResponse{
				ID:             e.ID,
				UsuarioID:      e.UsuarioID,
				Accion:         e.Accion,
				Detalle:        e.Detalle,
				EstadoAnterior: e.EstadoAnterior,
				EstadoNuevo:    e.EstadoNuevo,
				Fecha:          e.Fecha,
			})
		}
		response.OK(w, http.StatusOK, out, "")
	}
}

// executeHandler godoc
// @Summary Ejecutar visita
// @Description PROGRAMADA/REASIGNADA -> EN_EJECUCION -> EJECUTADA. Cerrar exige observaciones.
// @Tags visitas
// @Accept json
// @Produce json
// @Param visitaID path int true "Visita"
// @Param body body executeRequest false "Observaciones"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/visitas/{visitaID}/ejecutar [put]
func executeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		id, ok := visitIDParam(w, r)
		if !ok {
			return
		}

		var req executeRequest
		if err := response.DecodeOptional(r, &req); err != nil {
			response.Fail(w, http.StatusBadRequest, "JSON inválido", string(KindInvalidPayload))
			return
		}
		p := EjecutarPayload{Observaciones: req.Observaciones}
		if strings.TrimSpace(req.Estado) != "" {
			st, ok := ParseState(req.Estado)
			if !ok {
				response.Fail(w, http.StatusBadRequest, "estado inválido", string(KindInvalidPayload))
				return
			}
			p.Estado = st
		}

		v, err := svc.Ejecutar(r.Context(), id, actor, p)
		if err != nil {
			writeError(w, log, err)
			return
		}
		response.OK(w, http.StatusOK, toVisitResponse(v, actor), "Visita actualizada")
	}
}

// reassignHandler godoc
// @Summary Reasignar visita
// @Tags visitas
// @Accept json
// @Produce json
// @Param visitaID path int true "Visita"
// @Param body body reassignRequest true "Nuevo asesor"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/visitas/{visitaID}/reasignar [put]
func reassignHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		id, ok := visitIDParam(w, r)
		if !ok {
			return
		}

		var req reassignRequest
		if err := response.DecodeStrict(r, &req); err != nil {
			response.Fail(w, http.StatusBadRequest, "JSON inválido", string(KindInvalidPayload))
			return
		}

		v, err := svc.Reasignar(r.Context(), id, actor, ReasignarPayload{
			NuevoAsesorID: req.NuevoAsesorID,
			Motivo:        req.Motivo,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}
		response.OK(w, http.StatusOK, toVisitResponse(v, actor), "Visita reasignada")
	}
}

// cancelHandler godoc
// @Summary Cancelar visita
// @Tags visitas
// @Accept json
// @Produce json
// @Param visitaID path int true "Visita"
// @Param body body cancelRequest true "Motivo"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/visitas/{visitaID}/cancelar [put]
func cancelHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}
		id, ok := visitIDParam(w, r)
		if !ok {
			return
		}

		var req cancelRequest
		if err := response.DecodeStrict(r, &req); err != nil {
			response.Fail(w, http.StatusBadRequest, "JSON inválido", string(KindInvalidPayload))
			return
		}

		v, err := svc.Cancelar(r.Context(), id, actor, CancelarPayload{
			MotivoCancelacionID: req.MotivoCancelacionID,
			Observaciones:       req.Observaciones,
		})
		if err != nil {
			writeError(w, log, err)
			return
		}
		response.OK(w, http.StatusOK, toVisitResponse(v, actor), "Visita cancelada")
	}
}

// kindsHandler godoc
// @Summary Tipos de visita
// @Tags visitas
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/tipos-visita [get]
func kindsHandler() http.HandlerFunc {
	body := []kindResponse{
		{Valor: KindEmpresarial, Nombre: "Empresarial"},
		{Valor: KindIndividual, Nombre: "Individual"},
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, http.StatusOK, body, "")
	}
}

func actorFrom(w http.ResponseWriter, r *http.Request) (Actor, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "No autenticado", "")
		return Actor{}, false
	}
	return Actor{ID: claims.UserID, Role: claims.Role}, true
}

func visitIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "visitaID"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(w, http.StatusNotFound, "Visita no encontrada", string(KindNotFound))
		return 0, false
	}
	return id, true
}

// StatusFor traduce un ErrorKind a código HTTP.
func StatusFor(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidStateTransition, KindConcurrencyConflict:
		return http.StatusConflict
	case KindInvalidPayload:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var de *Error
	if errors.As(err, &de) {
		response.Fail(w, StatusFor(de.Kind), de.Message, string(de.Kind))
		return
	}
	log.Error("visitas: error interno", map[string]any{"err": err.Error()})
	response.Fail(w, http.StatusInternalServerError, "Error interno", "")
}

func toVisitResponse(v Visit, actor Actor) visitResponse {
	acciones := AllowedActions(actor.Role, v.Estado)
	// EJECUTAR solo aplica al asesor dueño.
	if v.AsesorID != actor.ID {
		filtered := acciones[:0]
		for _, a := range acciones {
			if a != access.ActionEjecutar {
				filtered = append(filtered, a)
			}
		}
		acciones = filtered
	}
	return visitResponse{
		ID:                  v.ID,
		AsesorID:            v.AsesorID,
		AsesorNombre:        v.AsesorNombre,
		Objetivo:            v.Objetivo,
		Tipo:                v.Tipo,
		FechaProgramada:     v.FechaProgramada,
		Estado:              v.Estado,
		MotivoCancelacionID: v.MotivoCancelacionID,
		MotivoCancelacion:   v.MotivoCancelacion,
		Observaciones:       v.Observaciones,
		CreadoPor:           v.CreadoPor,
		ProgramadaPorNombre: v.ProgramadaPorNombre,
		ReasignadaPor:       v.ReasignadaPor,
		ModificadoPor:       v.ModificadoPor,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
		Acciones:            acciones,
	}
}

package session

import (
	"errors"
	"net/http"
	"time"

	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/domain/users"
	"gestor-visitas/internal/middleware"
	"gestor-visitas/internal/platform/logger"
	"gestor-visitas/internal/platform/response"

	"github.com/go-chi/chi/v5"
)

// CookieOptions controla la cookie de sesión.
type CookieOptions struct {
	// Secure debe ir en true detrás de HTTPS.
	Secure bool
}

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, cookie CookieOptions) {
	r.Route("/api/auth", func(ar chi.Router) {
		ar.Post("/send-otp", sendCodeHandler(svc, log))
		ar.Post("/verify-otp", verifyCodeHandler(svc, log, cookie))
		ar.Post("/logout", logoutHandler(cookie))
		ar.Get("/me", meHandler(svc, log))
	})
}

type sendCodeRequest struct {
	Email string `json:"email"`
}

type verifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type sessionUser struct {
	ID     int64       `json:"id"`
	Nombre string      `json:"nombre"`
	Email  string      `json:"email"`
	Rol    access.Role `json:"rol"`
	Area   string      `json:"area"`
}

type verifyCodeResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Usuario   sessionUser `json:"usuario"`
}

// sendCodeHandler godoc
// @Summary Enviar código de acceso
// @Tags auth
// @Accept json
// @Produce json
// @Param body body sendCodeRequest true "Email"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /api/auth/send-otp [post]
func sendCodeHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendCodeRequest
		if err := response.DecodeStrict(r, &req); err != nil {
			response.Fail(w, http.StatusBadRequest, "JSON inválido", "InvalidPayload")
			return
		}

		err := svc.SendCode(r.Context(), req.Email)
		switch {
		case err == nil:
			response.OK(w, http.StatusOK, nil, "Código enviado exitosamente")
		case errors.Is(err, ErrInvalidInput):
			response.Fail(w, http.StatusBadRequest, "Email es requerido", "InvalidPayload")
		case errors.Is(err, ErrUserNotFound):
			response.Fail(w, http.StatusNotFound, "Usuario no encontrado", "NotFound")
		case errors.Is(err, ErrDeliveryFailure):
			response.Fail(w, http.StatusBadGateway, "Error al enviar el código", "DeliveryFailure")
		default:
			log.Error("send-otp", map[string]any{"err": err.Error()})
			response.Fail(w, http.StatusInternalServerError, "Error interno del servidor", "")
		}
	}
}

// verifyCodeHandler godoc
// @Summary Verificar código e iniciar sesión
// @Description Setea la cookie auth_token (8 horas) y devuelve el token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body verifyCodeRequest true "Email y código"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/auth/verify-otp [post]
func verifyCodeHandler(svc *Service, log logger.Logger, cookie CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyCodeRequest
		if err := response.DecodeStrict(r, &req); err != nil {
			response.Fail(w, http.StatusBadRequest, "JSON inválido", "InvalidPayload")
			return
		}

		sess, err := svc.VerifyCode(r.Context(), req.Email, req.Code)
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidInput):
			response.Fail(w, http.StatusBadRequest, "Email y código son requeridos", "InvalidPayload")
			return
		case errors.Is(err, ErrInvalidCode):
			response.Fail(w, http.StatusUnauthorized, "Código inválido o expirado", "")
			return
		case errors.Is(err, ErrUserNotFound):
			response.Fail(w, http.StatusNotFound, "Usuario no encontrado", "NotFound")
			return
		default:
			log.Error("verify-otp", map[string]any{"err": err.Error()})
			response.Fail(w, http.StatusInternalServerError, "Error interno del servidor", "")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.CookieName,
			Value:    sess.Token,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			MaxAge:   int(time.Until(sess.ExpiresAt).Seconds()),
			HttpOnly: true,
			Secure:   cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})

		response.OK(w, http.StatusOK, verifyCodeResponse{
			Token:     sess.Token,
			ExpiresAt: sess.ExpiresAt,
			Usuario:   toSessionUser(sess.User),
		}, "Autenticación exitosa")
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/auth/logout [post]
func logoutHandler(cookie CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		response.OK(w, http.StatusOK, nil, "Sesión cerrada exitosamente")
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/auth/me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			response.Fail(w, http.StatusUnauthorized, "No autenticado", "")
			return
		}

		u, err := svc.Me(r.Context(), claims.UserID)
		switch {
		case err == nil:
			response.OK(w, http.StatusOK, toSessionUser(u), "")
		case errors.Is(err, ErrUserNotFound):
			// Token válido de un usuario dado de baja.
			response.Fail(w, http.StatusUnauthorized, "No autenticado", "")
		default:
			log.Error("me", map[string]any{"err": err.Error()})
			response.Fail(w, http.StatusInternalServerError, "Error interno del servidor", "")
		}
	}
}

func toSessionUser(u users.User) sessionUser {
	return sessionUser{ID: u.ID, Nombre: u.Nombre, Email: u.Email, Rol: u.Rol, Area: u.Area}
}

package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"gestor-visitas/internal/adapters/auth/jwt"
	"gestor-visitas/internal/domain/access"
	"gestor-visitas/internal/platform/metrics"
	"gestor-visitas/internal/router"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	jefeID   = "1"
	asesor7  = "7"
	asesor9  = "9"
	jefeRol  = string(access.RoleJefe)
	asesorRl = string(access.RoleAsesor)
)

func newDevServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{DevAuth: true}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_ExecuteByOwner(t *testing.T) {
	ts := newDevServer(t)

	id := createVisit(t, ts.URL, 7)

	// 1) Otro asesor no puede ejecutar
	{
		st, _ := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/ejecutar", asesor9, asesorRl, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 execute by other advisor, got %d", st)
		}
	}

	// 2) El dueño inicia sin body
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/ejecutar", asesor7, asesorRl, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 start execution, got %d body=%s", st, string(body))
		}
		if got := visitState(t, body); got != "EN_EJECUCION" {
			t.Fatalf("expected EN_EJECUCION, got %s", got)
		}
	}

	// 3) Cerrar sin observaciones => 400
	{
		st, _ := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/ejecutar", asesor7, asesorRl, map[string]any{})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 closing without observations, got %d", st)
		}
	}

	// 4) Cerrar con observaciones
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/ejecutar", asesor7, asesorRl, map[string]any{
			"observaciones": "Cliente atendido",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 close execution, got %d body=%s", st, string(body))
		}
		if got := visitState(t, body); got != "EJECUTADA" {
			t.Fatalf("expected EJECUTADA, got %s", got)
		}
	}

	// 5) Terminal
	{
		st, _ := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/ejecutar", asesor7, asesorRl, map[string]any{
			"observaciones": "otra vez",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on terminal visit, got %d", st)
		}
	}

	// 6) Trazabilidad: PROGRAMAR + 2 EJECUTAR, en orden
	{
		st, body := doReq(t, ts.URL, "GET", "/api/visitas/"+id+"/trazabilidad", jefeID, jefeRol, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 trail, got %d body=%s", st, string(body))
		}
		var resp struct {
			Data []struct {
				Accion      string `json:"accion"`
				EstadoNuevo string `json:"estado_nuevo"`
			} `json:"data"`
		}
		_ = json.Unmarshal(body, &resp)
		if len(resp.Data) != 3 {
			t.Fatalf("expected 3 trace entries, got %d body=%s", len(resp.Data), string(body))
		}
		want := []string{"PROGRAMADA", "EN_EJECUCION", "EJECUTADA"}
		for i, e := range resp.Data {
			if e.EstadoNuevo != want[i] {
				t.Fatalf("trace %d: expected %s, got %s", i, want[i], e.EstadoNuevo)
			}
		}
	}
}

func TestHTTP_EndToEnd_ReassignThenExecute(t *testing.T) {
	ts := newDevServer(t)

	id := createVisit(t, ts.URL, 7)

	// El asesor no puede reasignar
	{
		st, _ := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/reasignar", asesor7, asesorRl, map[string]any{
			"nuevo_asesor_id": 9,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 reassign by advisor, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/reasignar", jefeID, jefeRol, map[string]any{
			"nuevo_asesor_id": 9,
			"motivo":          "Cambio de zona",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 reassign, got %d body=%s", st, string(body))
		}
		if got := visitState(t, body); got != "REASIGNADA" {
			t.Fatalf("expected REASIGNADA, got %s", got)
		}
	}

	// El asesor anterior pierde la visita
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/visitas/"+id, asesor7, asesorRl, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 get by previous advisor, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/ejecutar", asesor9, asesorRl, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 execute by new advisor, got %d body=%s", st, string(body))
		}
		if got := visitState(t, body); got != "EN_EJECUCION" {
			t.Fatalf("expected EN_EJECUCION, got %s", got)
		}
	}
}

func TestHTTP_EndToEnd_Cancel(t *testing.T) {
	ts := newDevServer(t)

	id := createVisit(t, ts.URL, 7)

	{
		st, _ := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/cancelar", jefeID, jefeRol, map[string]any{
			"motivo_cancelacion_id": 999,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 unknown reason, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/cancelar", jefeID, jefeRol, map[string]any{
			"motivo_cancelacion_id": 1,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
		if got := visitState(t, body); got != "CANCELADA" {
			t.Fatalf("expected CANCELADA, got %s", got)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/cancelar", jefeID, jefeRol, map[string]any{
			"motivo_cancelacion_id": 1,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 cancel twice, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "PUT", "/api/visitas/404/cancelar", jefeID, jefeRol, map[string]any{
			"motivo_cancelacion_id": 1,
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown visit, got %d", st)
		}
	}
}

func TestHTTP_ListScopedToAdvisor(t *testing.T) {
	ts := newDevServer(t)

	createVisit(t, ts.URL, 7)
	createVisit(t, ts.URL, 9)

	count := func(userID, role, query string) int {
		st, body := doReq(t, ts.URL, "GET", "/api/visitas"+query, userID, role, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var resp struct {
			Data []json.RawMessage `json:"data"`
		}
		_ = json.Unmarshal(body, &resp)
		return len(resp.Data)
	}

	if n := count(jefeID, jefeRol, ""); n != 2 {
		t.Fatalf("jefe: expected 2 visits, got %d", n)
	}
	if n := count(jefeID, jefeRol, "?asesor_id=9"); n != 1 {
		t.Fatalf("jefe filtered: expected 1 visit, got %d", n)
	}
	// El filtro asesor_id no amplía lo que ve un asesor.
	if n := count(asesor7, asesorRl, "?asesor_id=9"); n != 1 {
		t.Fatalf("asesor: expected 1 visit, got %d", n)
	}

	st, _ := doReq(t, ts.URL, "GET", "/api/visitas?fecha=14-10-2026", jefeID, jefeRol, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad fecha, got %d", st)
	}
}

func TestHTTP_RequiresAuth(t *testing.T) {
	ts := newDevServer(t)

	st, _ := doReq(t, ts.URL, "GET", "/api/visitas", "", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without claims, got %d", st)
	}

	// Rol inválido en header => sin claims
	st, _ = doReq(t, ts.URL, "GET", "/api/visitas", asesor7, "ADMIN", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unknown role, got %d", st)
	}
}

func TestHTTP_HealthKindsAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		DevAuth:  true,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
	}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "GET", "/health", "", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("expected 200 ok health, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/api/tipos-visita", "", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "EMPRESARIAL") {
		t.Fatalf("expected visit kinds, got %d body=%s", st, string(body))
	}

	id := createVisit(t, ts.URL, 7)
	_, _ = doReq(t, ts.URL, "PUT", "/api/visitas/"+id+"/ejecutar", asesor9, asesorRl, nil)

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	out := string(body)
	if !strings.Contains(out, `visitas_transitions_total{accion="PROGRAMAR",resultado="ok"} 1`) {
		t.Fatalf("missing PROGRAMAR counter: %s", out)
	}
	if !strings.Contains(out, `visitas_transitions_total{accion="EJECUTAR",resultado="Forbidden"} 1`) {
		t.Fatalf("missing EJECUTAR counter: %s", out)
	}
}

type capturingSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *capturingSender) SendCode(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codes == nil {
		s.codes = map[string]string{}
	}
	s.codes[email] = code
	return nil
}

func (s *capturingSender) code(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[email]
}

func TestHTTP_LoginWithCodeThenUseCookie(t *testing.T) {
	tokens := jwt.New("test-secret", "gestor-visitas", time.Hour)
	sender := &capturingSender{}
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Verifier: tokens,
		Tokens:   tokens,
		Sender:   sender,
	}))
	defer ts.Close()

	email := "carlos.munoz@comfacauca.com"

	st, body := doReq(t, ts.URL, "POST", "/api/auth/send-otp", "", "", map[string]any{"email": email})
	if st != http.StatusOK {
		t.Fatalf("expected 200 send-otp, got %d body=%s", st, string(body))
	}
	code := sender.code(email)
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	b, _ := json.Marshal(map[string]any{"email": email, "code": code})
	res, err := http.Post(ts.URL+"/api/auth/verify-otp", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("verify-otp: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 verify-otp, got %d", res.StatusCode)
	}
	var cookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "auth_token" {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("expected auth_token cookie")
	}

	// El código ya se consumió.
	st, _ = doReq(t, ts.URL, "POST", "/api/auth/verify-otp", "", "", map[string]any{"email": email, "code": code})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 reusing code, got %d", st)
	}

	req, _ := http.NewRequest("GET", ts.URL+"/api/auth/me", nil)
	req.AddCookie(cookie)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	meBody, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK || !strings.Contains(string(meBody), email) {
		t.Fatalf("expected 200 me, got %d body=%s", res.StatusCode, string(meBody))
	}

	// Sin DevAuth los headers de debug no autentican.
	st, _ = doReq(t, ts.URL, "GET", "/api/visitas", jefeID, jefeRol, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with debug headers and DevAuth off, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/api/auth/send-otp", "", "", map[string]any{"email": "nadie@comfacauca.com"})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", st)
	}
}

func createVisit(t *testing.T, baseURL string, asesorID int64) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/visitas", jefeID, jefeRol, map[string]any{
		"asesor_id":        asesorID,
		"objetivo":         "Afiliación empresa",
		"tipo":             "EMPRESARIAL",
		"fecha_programada": time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create visit, got %d body=%s", st, string(body))
	}

	var resp struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Data.ID == 0 {
		t.Fatalf("create visit: missing id body=%s", string(body))
	}
	return strconv.FormatInt(resp.Data.ID, 10)
}

func visitState(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Data struct {
			Estado string `json:"estado"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode visit: %v body=%s", err, string(body))
	}
	return resp.Data.Estado
}

func doReq(t *testing.T, baseURL, method, path, userID, role string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
		req.Header.Set("X-Debug-User-Role", role)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}

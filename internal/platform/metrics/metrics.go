package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores Prometheus del servicio.
type Metrics struct {
	Transitions      *prometheus.CounterVec
	OTPIssued        prometheus.Counter
	OTPVerifications *prometheus.CounterVec
	OTPSwept         prometheus.Counter
}

// New registra las métricas en reg. En tests conviene pasar prometheus.NewRegistry()
// para no chocar con el registry global.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visitas_transitions_total",
			Help: "Transiciones de ciclo de vida solicitadas, por acción y resultado",
		}, []string{"accion", "resultado"}),
		OTPIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "visitas_otp_issued_total",
			Help: "Códigos OTP emitidos",
		}),
		OTPVerifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "visitas_otp_verifications_total",
			Help: "Verificaciones de códigos OTP, por resultado",
		}, []string{"resultado"}),
		OTPSwept: f.NewCounter(prometheus.CounterOpts{
			Name: "visitas_otp_swept_total",
			Help: "Códigos OTP expirados eliminados por el barrido",
		}),
	}
}

// ObserveTransition implementa visits.TransitionObserver.
func (m *Metrics) ObserveTransition(action, result string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(action, result).Inc()
}

// ObserveIssue implementa otp.Observer.
func (m *Metrics) ObserveIssue() {
	if m == nil {
		return
	}
	m.OTPIssued.Inc()
}

// ObserveVerify implementa otp.Observer.
func (m *Metrics) ObserveVerify(result string) {
	if m == nil {
		return
	}
	m.OTPVerifications.WithLabelValues(result).Inc()
}

// ObserveSweep implementa otp.Observer.
func (m *Metrics) ObserveSweep(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.OTPSwept.Add(float64(n))
}

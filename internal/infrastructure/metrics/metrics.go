package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Moderation holds the Prometheus metrics for the moderation pipeline.
type Moderation struct {
	actions      *prometheus.CounterVec
	auditWrites  *prometheus.CounterVec
	dispatchErrs prometheus.Counter
}

func NewModeration() *Moderation {
	return &Moderation{
		actions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "toolmart_moderation_actions_total",
			Help: "Moderation actions by kind, action and outcome",
		}, []string{"kind", "action", "outcome"}),
		auditWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "toolmart_audit_writes_total",
			Help: "Audit ledger append attempts by result",
		}, []string{"result"}),
		dispatchErrs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "toolmart_notification_dispatch_errors_total",
			Help: "Notification dispatch failures (best-effort path)",
		}),
	}
}

func (m *Moderation) ObserveAction(kind, action, outcome string) {
	m.actions.WithLabelValues(kind, action, outcome).Inc()
}

func (m *Moderation) ObserveAuditWrite(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.auditWrites.WithLabelValues(result).Inc()
}

func (m *Moderation) ObserveDispatchError() {
	m.dispatchErrs.Inc()
}

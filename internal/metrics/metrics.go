// Package metrics defines the Prometheus collectors of the user service.
//
// Collectors are created per registry so tests and repeated server setup
// never collide on the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "parking_spot"

type Metrics struct {
	// UsersCreatedTotal counts successfully created users.
	UsersCreatedTotal prometheus.Counter

	// PasswordUpdatesTotal counts password update attempts.
	// Label:
	//   - result: "ok", "confirmation_mismatch", "wrong_password", "not_found" or "error"
	PasswordUpdatesTotal *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UsersCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Total number of users created.",
		}),
		PasswordUpdatesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_updates_total",
			Help:      "Total number of password update attempts, by result.",
		}, []string{"result"}),
	}
}

package observability

import (
	"net/http"
	"time"
)

// HealthStatus is the state of the service or one of its parts.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusDown     HealthStatus = "down"
)

func (s HealthStatus) severity() int {
	switch s {
	case HealthStatusDown:
		return 2
	case HealthStatusDegraded:
		return 1
	}
	return 0
}

// Health is the state of one part of the service, such as the filter
// registry or a chain catalog.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ComponentUp reports a healthy part. kv holds alternating detail keys and
// values; a trailing key without a value is ignored.
func ComponentUp(name string, kv ...string) Health {
	h := Health{Name: name, Status: HealthStatusUp}
	if len(kv) >= 2 {
		h.Details = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			h.Details[kv[i]] = kv[i+1]
		}
	}
	return h
}

// ComponentDown reports a failed part.
func ComponentDown(name string, err error) Health {
	h := Health{Name: name, Status: HealthStatusDown}
	if err != nil {
		h.Message = err.Error()
	}
	return h
}

// ServiceHealth is the /health document.
type ServiceHealth struct {
	Service    string       `json:"service"`
	Status     HealthStatus `json:"status"`
	Version    string       `json:"version,omitempty"`
	CheckedAt  time.Time    `json:"checked_at"`
	Components []Health     `json:"components,omitempty"`
}

// NewServiceHealth starts a report with status up.
func NewServiceHealth(service, version string) *ServiceHealth {
	return &ServiceHealth{
		Service:   service,
		Status:    HealthStatusUp,
		Version:   version,
		CheckedAt: time.Now().UTC(),
	}
}

// AddComponent appends h. The service takes the worst status of its parts.
func (sh *ServiceHealth) AddComponent(h Health) {
	sh.Components = append(sh.Components, h)
	if h.Status.severity() > sh.Status.severity() {
		sh.Status = h.Status
	}
}

// HTTPStatus is 503 while the service is down and 200 otherwise.
func (sh *ServiceHealth) HTTPStatus() int {
	if sh.Status == HealthStatusDown {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

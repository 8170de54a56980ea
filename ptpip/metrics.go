package ptpip

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts traffic on a connection. A nil *Metrics counts
// nothing.
type Metrics struct {
	PacketsRead    *prometheus.CounterVec
	PacketsWritten *prometheus.CounterVec
	DataBytes      *prometheus.CounterVec
	Transactions   *prometheus.CounterVec
	Events         *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		PacketsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptpip",
			Name:      "packets_read_total",
			Help:      "Packets read, by packet type.",
		}, []string{"type"}),
		PacketsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptpip",
			Name:      "packets_written_total",
			Help:      "Packets written, by packet type.",
		}, []string{"type"}),
		DataBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptpip",
			Name:      "data_bytes_total",
			Help:      "Bytes moved in data phases, by direction.",
		}, []string{"direction"}),
		Transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptpip",
			Name:      "transactions_total",
			Help:      "Transactions, by operation and response code.",
		}, []string{"operation", "response"}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ptpip",
			Name:      "events_total",
			Help:      "Events received, by event code.",
		}, []string{"event"}),
	}
}

// Register adds all collectors to r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.PacketsRead, m.PacketsWritten, m.DataBytes, m.Transactions, m.Events} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) packetRead(t PacketType) {
	if m != nil {
		m.PacketsRead.WithLabelValues(t.String()).Inc()
	}
}

func (m *Metrics) packetWritten(t PacketType) {
	if m != nil {
		m.PacketsWritten.WithLabelValues(t.String()).Inc()
	}
}

func (m *Metrics) data(direction string, n int) {
	if m != nil {
		m.DataBytes.WithLabelValues(direction).Add(float64(n))
	}
}

func (m *Metrics) transaction(op, rc string) {
	if m != nil {
		m.Transactions.WithLabelValues(op, rc).Inc()
	}
}

func (m *Metrics) event(code string) {
	if m != nil {
		m.Events.WithLabelValues(code).Inc()
	}
}

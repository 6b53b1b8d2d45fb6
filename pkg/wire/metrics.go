package wire

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	rejectTruncatedBlock = "truncated_block"
	rejectBadIndirect    = "bad_indirect"
)

// Metrics holds Prometheus counters for codec activity.
type Metrics struct {
	rowsEncoded        prometheus.Counter
	indirectBytesTotal prometheus.Counter
	blocksDecoded      prometheus.Counter
	decodeRejects      *prometheus.CounterVec
	unknownStatusCodes *prometheus.CounterVec
}

// NewMetrics creates and registers codec metrics on the default
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		rowsEncoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rowwire_rows_encoded_total",
			Help: "Total number of rows appended to row blocks",
		}),
		indirectBytesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rowwire_indirect_bytes_total",
			Help: "Total bytes of variable-length payloads copied into indirect data",
		}),
		blocksDecoded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "rowwire_blocks_decoded_total",
			Help: "Total number of row blocks successfully validated and decoded",
		}),
		decodeRejects: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowwire_decode_rejects_total",
				Help: "Total number of row blocks rejected as corrupt",
			},
			[]string{"reason"},
		),
		unknownStatusCodes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rowwire_unknown_status_codes_total",
				Help: "Total number of status codes outside the closed set seen by the status codec",
			},
			[]string{"direction"},
		),
	}
}

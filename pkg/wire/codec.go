package wire

import (
	"github.com/rs/zerolog"
)

// CodecConfig holds the optional collaborators of a Codec.
type CodecConfig struct {
	// Logger receives diagnostics for unknown status codes. Nil
	// discards them.
	Logger *zerolog.Logger
	// Metrics, when set, counts codec activity. Nil disables counting.
	Metrics *Metrics
}

// Codec implements the wire conversions for row blocks, schemas and
// statuses. A Codec holds no per-call state and is safe for concurrent
// use.
type Codec struct {
	log     zerolog.Logger
	metrics *Metrics
}

// NewCodec creates a codec with the given configuration. The zero
// config is valid: no logging, no metrics.
func NewCodec(config CodecConfig) *Codec {
	log := zerolog.Nop()
	if config.Logger != nil {
		log = *config.Logger
	}
	return &Codec{log: log, metrics: config.Metrics}
}

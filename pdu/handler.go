package pdu

import (
	"maps"

	"github.com/cwbudde/algo-burst/logging"
	"github.com/cwbudde/algo-burst/measure/cfest"
)

// Handler drives one estimator from inbound messages.
type Handler struct {
	est    *cfest.Estimator
	logger logging.Logger
}

// NewHandler wraps an estimator for message-boundary use. A nil logger
// silences drop diagnostics.
func NewHandler(est *cfest.Estimator, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Nop()
	}

	return &Handler{
		est:    est,
		logger: logger.WithFields(logging.Fields{"component": "pdu"}),
	}
}

// Handle processes one inbound message and returns the corrected-burst
// message and the debug-PSD message.
//
// Structurally malformed input (no metadata, no data, missing or ill-typed
// required keys) is dropped with a diagnostic: both returned messages are
// nil and the error carries the reason. The debug message is produced for
// every successfully processed burst, independent of the outcome fields.
func (h *Handler) Handle(msg Message) (out, debug *Message, err error) {
	if len(msg.Data) == 0 {
		h.logger.Warn("message has no sample data, dropping")
		return nil, nil, ErrNoData
	}

	meta, err := ParseMetadata(msg.Meta)
	if err != nil {
		h.logger.Warn("malformed metadata, dropping", logging.Fields{"reason": err.Error()})
		return nil, nil, err
	}

	res, err := h.est.Process(msg.Data, meta)
	if err != nil {
		h.logger.Error(err, "burst processing failed, dropping")
		return nil, nil, err
	}

	outMeta := make(map[string]any, len(msg.Meta)+4)
	maps.Copy(outMeta, msg.Meta)

	outMeta[KeyCenterFrequency] = res.Metadata.CenterFrequency
	if res.Metadata.RelativeFrequency != 0 {
		outMeta[KeyRelativeFrequency] = res.Metadata.RelativeFrequency
	}

	outMeta[KeyBandwidth] = res.Bandwidth

	if meta.HasNoiseDensity() {
		outMeta[KeyPowerDB] = res.PowerDB
		outMeta[KeySNRDB] = res.SNRDB
	}

	out = &Message{Meta: outMeta, Data: res.Samples}

	// The debug spectrum carries the original, unmodified metadata.
	debug = &Message{Meta: msg.Meta, Data: res.DebugPSD}

	return out, debug, nil
}

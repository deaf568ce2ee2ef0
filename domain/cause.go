package domain

// WriterID identifies the module responsible for an inference, so that
// an explanation request can be routed back to the component that made
// it (a theory, the STN propagator, and so on).
type WriterID uint8

// Cause records why a bound tightened: either a search decision, which
// terminates conflict analysis, or an inference made by some writer,
// which conflict analysis must ask that writer to justify.
type Cause struct {
	decision bool
	writer   WriterID
	payload  uint64
}

// Decision is the cause of a bound set directly by the search, not
// derived from any other fact.
var Decision = Cause{decision: true}

// Inference builds the cause for a bound tightened by propagation.
// payload carries writer-specific metadata (e.g. which edge fired) that
// is handed back to Explainer.Explain verbatim.
func Inference(writer WriterID, payload uint64) Cause {
	return Cause{writer: writer, payload: payload}
}

// IsDecision reports whether this cause terminates conflict analysis.
func (c Cause) IsDecision() bool {
	return c.decision
}

// Writer returns the writer that made the inference. Only meaningful
// when IsDecision is false.
func (c Cause) Writer() WriterID {
	return c.writer
}

// Payload returns the writer-specific metadata attached to the
// inference. Only meaningful when IsDecision is false.
func (c Cause) Payload() uint64 {
	return c.payload
}

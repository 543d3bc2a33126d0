// Package dispatch provides the ordered recognizer dispatcher that
// turns one whitespace-delimited token, under a report part, into a
// group.Group. It is the report-part-gated counterpart of the
// teacher's internal/registry label-keyed dispatch.
package dispatch

import "metartaf/internal/group"

// Recognizer is implemented by each group kind's entry point.
type Recognizer struct {
	// Name identifies the recognizer for tracing, e.g. "wind",
	// "visibility".
	Name string

	// Parse attempts to recognize token under part. Returns
	// (zero, false) to decline, letting the dispatcher try the next
	// recognizer in order.
	Parse func(token string, part group.ReportPart) (group.Group, bool)
}

// Dispatcher probes an ordered list of recognizers for each token,
// falling back to PlainText if none accept.
type Dispatcher struct {
	recognizers []Recognizer
	fallback    Recognizer
}

// New builds a Dispatcher from an ordered recognizer list plus the
// fallback recognizer tried last.
func New(recognizers []Recognizer, fallback Recognizer) *Dispatcher {
	return &Dispatcher{recognizers: recognizers, fallback: fallback}
}

// Dispatch tries each recognizer in declaration order and returns the
// first successful parse. If every recognizer declines, the fallback
// is tried and its result returned -- Dispatch only fails if even the
// fallback declines (e.g. on an empty token).
func (d *Dispatcher) Dispatch(token string, part group.ReportPart) (group.Group, bool) {
	for _, r := range d.recognizers {
		if g, ok := r.Parse(token, part); ok {
			return g, true
		}
	}
	return d.fallback.Parse(token, part)
}

// Recognizers returns the dispatcher's ordered recognizer list,
// excluding the fallback. Used by the review UI's trace view.
func (d *Dispatcher) Recognizers() []Recognizer {
	return d.recognizers
}

// Package extractor decodes one line of ingestion input -- which may
// be a NATS envelope, a flat JSON object, or a bare report string --
// into the raw report text and any station/time hints it carried.
// This package is storage-agnostic; it never touches the tracker or
// the database.
package extractor

import (
	"encoding/json"
	"strings"
	"time"
)

// Decoded is one candidate report pulled out of an input line, plus
// whatever metadata the source format carried alongside it.
type Decoded struct {
	RawText    string
	Station    string // hint only; the parser's own LocationGroup is authoritative.
	ReceivedAt time.Time
	Source     string
}

// DecodeLine autodetects the input line's format and extracts the raw
// report text from it. It tries, in order: a NATS envelope, a flat
// JSON message, then falls back to treating the whole line as a bare
// report string -- the common case for plain-text feeds (e.g. NOAA
// ADDS/AWC raw-text bulletins, one report per line).
func DecodeLine(line string) (Decoded, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Decoded{}, false
	}

	if !strings.HasPrefix(line, "{") {
		return Decoded{RawText: line}, true
	}

	b := []byte(line)

	var env Envelope
	if err := json.Unmarshal(b, &env); err == nil {
		if msg := env.ToMessage(); msg != nil && strings.TrimSpace(msg.RawText) != "" {
			return decodedFromMessage(msg), true
		}
	}

	var msg Message
	if err := json.Unmarshal(b, &msg); err == nil && strings.TrimSpace(msg.RawText) != "" {
		return decodedFromMessage(&msg), true
	}

	// Not recognizable JSON -- treat the raw line as the report text,
	// the same fallback a malformed-but-plausible feed line gets.
	return Decoded{RawText: line}, true
}

func decodedFromMessage(msg *Message) Decoded {
	d := Decoded{
		RawText: strings.TrimSpace(msg.RawText),
		Station: strings.ToUpper(strings.TrimSpace(msg.Station)),
		Source:  msg.Source,
	}
	if msg.Timestamp != "" {
		if t, err := time.Parse(time.RFC3339, msg.Timestamp); err == nil {
			d.ReceivedAt = t
		}
	}
	return d
}

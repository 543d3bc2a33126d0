package extractor

import (
	"encoding/json"
	"strconv"
)

// FlexID handles feed IDs that arrive as either a JSON string or
// number, a quirk of upstream weather feeds that don't agree on the
// wire representation of an opaque message ID.
type FlexID int64

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexID(i)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*f = 0
			return nil
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexID(i)
		return nil
	}

	*f = 0
	return nil
}

// Message is the inner payload of a feed envelope: one raw report plus
// the metadata needed to route and timestamp it.
type Message struct {
	ID         FlexID `json:"id"`
	Source     string `json:"source"`
	Timestamp  string `json:"timestamp"`
	Station    string `json:"station,omitempty"`
	RawText    string `json:"raw_text"`
	ReportType string `json:"report_type,omitempty"`
}

// Envelope is the NATS feed wrapper format: the report nested inside a
// "message" field with transport metadata alongside it.
type Envelope struct {
	Source  *EnvelopeSource `json:"source,omitempty"`
	Message *Message        `json:"message,omitempty"`
}

// EnvelopeSource identifies the upstream feed that produced an Envelope.
type EnvelopeSource struct {
	Name        string `json:"name,omitempty"`
	Application string `json:"application,omitempty"`
}

// ToMessage unwraps the envelope into its inner Message, or nil if the
// envelope carries no message.
func (e *Envelope) ToMessage() *Message {
	if e.Message == nil {
		return nil
	}
	msg := *e.Message
	if msg.Source == "" && e.Source != nil {
		msg.Source = e.Source.Name
	}
	return &msg
}

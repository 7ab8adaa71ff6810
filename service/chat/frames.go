package chat

import (
	"encoding/json"

	"ChatProject/tools/errs"
)

// Frame is the wire unit in both directions: {"event": "<name>", "data": {...}}.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outFrame struct {
	Event string `json:"event"`
	Data  Event  `json:"data"`
}

// EncodeEvent renders ev as a text frame payload.
func EncodeEvent(ev Event) ([]byte, error) {
	if ev == nil {
		return nil, errs.ErrArgs.WrapMsg("nil event")
	}
	b, err := json.Marshal(outFrame{Event: ev.EventName(), Data: ev})
	if err != nil {
		return nil, errs.WrapMsg(err, "marshal frame", "event", ev.EventName())
	}
	return b, nil
}

// ParseFrame decodes an inbound client frame.
func ParseFrame(raw []byte) (*Frame, error) {
	f := &Frame{}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, errs.ErrArgs.WrapMsg("malformed frame", "err", err)
	}
	if f.Event == "" {
		return nil, errs.ErrArgs.WrapMsg("frame has no event")
	}
	return f, nil
}

// Envelope is how collaborators outside the process ask the gateway to deliver
// an event: over NATS or Kafka, {"event": "...", "to": [ids], "data": {...}}.
type Envelope struct {
	Event string          `json:"event"`
	To    []UserID        `json:"to"`
	Data  json.RawMessage `json:"data"`
}

func ParseEnvelope(raw []byte) (*Envelope, Event, error) {
	env := &Envelope{}
	if err := json.Unmarshal(raw, env); err != nil {
		return nil, nil, errs.ErrArgs.WrapMsg("malformed envelope", "err", err)
	}
	ev, err := DecodeEvent(env.Event, env.Data)
	if err != nil {
		return nil, nil, err
	}
	return env, ev, nil
}

package chat

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"ChatProject/tools/errs"
)

// Publisher is the slice of a message bus the presence publisher needs.
type Publisher interface {
	Publish(ctx context.Context, biz string, data []byte, hdr map[string]string) error
}

// PresenceTransition is what other nodes and services receive for every
// online/offline change of a user on this node.
type PresenceTransition struct {
	Event  string `json:"event"`
	UserID UserID `json:"userId"`
	Node   int64  `json:"node"`
	At     int64  `json:"at"`
}

type presencePublisher struct {
	pub  Publisher
	biz  string
	node int64
}

// NewPresencePublisher reports transitions on the bus route biz.
func NewPresencePublisher(pub Publisher, biz string, node int64) PresenceObserver {
	return &presencePublisher{pub: pub, biz: biz, node: node}
}

func (p *presencePublisher) UserOnline(ctx context.Context, id UserID) error {
	return p.publish(ctx, EventUserOnline, id)
}

func (p *presencePublisher) UserOffline(ctx context.Context, id UserID) error {
	return p.publish(ctx, EventUserOffline, id)
}

func (p *presencePublisher) publish(ctx context.Context, event string, id UserID) error {
	data, err := json.Marshal(PresenceTransition{Event: event, UserID: id, Node: p.node, At: time.Now().UnixMilli()})
	if err != nil {
		return errs.Wrap(err)
	}
	hdr := map[string]string{"event": event, "node": strconv.FormatInt(p.node, 10)}
	if err := p.pub.Publish(ctx, p.biz, data, hdr); err != nil {
		return errs.WrapMsg(err, "publish presence", "event", event, "user", id)
	}
	return nil
}

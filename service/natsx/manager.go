package natsx

import (
	"context"

	"ChatProject/tools/errs"
)

// NatsManager is the facade the rest of the gateway uses.
type NatsManager struct {
	client   *NatsxClient
	producer *NatsxProducer
	consumer *NatsxConsumer
}

func NewNatsManager(cfg NatsxConfig, middlewares ...NatsxMiddleware) (*NatsManager, error) {
	c, err := NewNatsxClient(cfg)
	if err != nil {
		return nil, err
	}
	return newManager(c, middlewares...), nil
}

func newManager(c *NatsxClient, middlewares ...NatsxMiddleware) *NatsManager {
	return &NatsManager{
		client:   c,
		producer: NewNatsxProducer(c),
		consumer: NewNatsxConsumer(c, middlewares...),
	}
}

var errNotInitialized = errs.ErrInternal.WithDetail("nats manager not initialized")

func (m *NatsManager) Close() error {
	if m == nil || m.client == nil {
		return nil
	}
	return m.client.Close()
}

func (m *NatsManager) RegisterRoute(r NatsxRoute) error {
	if m == nil || m.client == nil {
		return errNotInitialized
	}
	return m.client.RegisterRoute(r)
}

func (m *NatsManager) Publish(ctx context.Context, biz string, data []byte, hdr map[string]string) error {
	if m == nil || m.producer == nil {
		return errNotInitialized
	}
	return m.producer.Publish(ctx, biz, data, hdr)
}

// Subscribe attaches h to a registered route.
func (m *NatsManager) Subscribe(biz string, h NatsxHandler) error {
	if m == nil || m.consumer == nil {
		return errNotInitialized
	}
	return m.consumer.Subscribe(biz, h)
}

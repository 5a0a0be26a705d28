package events

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Publisher pushes chat activity events onto the in-process bus.
type Publisher struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewPublisher(pubSub *gochannel.GoChannel, topic string) *Publisher {
	return &Publisher{
		pubSub: pubSub,
		topic:  topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, event BaseEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.pubSub.Publish(p.topic, msg)
}

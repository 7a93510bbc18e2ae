// Package pubsub contains a thin wrapper around Google Pub/Sub used to
// mirror processor activity outward. Publishing is asynchronous; the core
// processors never block on or fail because of the publish outcome.
package pubsub // import "github.com/openscholar/contribution-processor/pkg/pubsub"

import (
	"context"
	"errors"
	"sync"

	"cloud.google.com/go/pubsub"
	log "github.com/golang/glog"
)

const (
	publishChanBuffer = 100
)

// GooglePubSubMsg is a single message to publish to a topic
type GooglePubSubMsg struct {
	Topic   string
	Payload string
}

// NewGooglePubSub creates a new GooglePubSub for the given project id
func NewGooglePubSub(projectID string) (*GooglePubSub, error) {
	if projectID == "" {
		return nil, errors.New("Pubsub project id required")
	}
	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &GooglePubSub{
		client:      client,
		topics:      map[string]*pubsub.Topic{},
		PublishChan: make(chan *GooglePubSubMsg, publishChanBuffer),
	}, nil
}

// GooglePubSub wraps a Google Pub/Sub client with a background publisher
// goroutine fed by PublishChan.
type GooglePubSub struct {
	client *pubsub.Client

	topicsMu sync.Mutex
	topics   map[string]*pubsub.Topic

	publishersStarted bool
	publishersDone    chan struct{}

	// PublishChan takes messages to publish in the background
	PublishChan chan *GooglePubSubMsg
}

// StartPublishers starts the background goroutine that drains PublishChan
func (g *GooglePubSub) StartPublishers() error {
	if g.publishersStarted {
		return errors.New("Publishers already started")
	}
	g.publishersStarted = true
	g.publishersDone = make(chan struct{})
	go func() {
		defer close(g.publishersDone)
		for msg := range g.PublishChan {
			g.publishMsg(msg)
		}
	}()
	return nil
}

// StopPublishers closes the publish channel and waits for the background
// publisher to drain
func (g *GooglePubSub) StopPublishers() error {
	if !g.publishersStarted {
		return errors.New("Publishers not started")
	}
	close(g.PublishChan)
	<-g.publishersDone
	g.publishersStarted = false
	return nil
}

// Publish enqueues a message for background publishing. Returns an error if
// the publishers have not been started.
func (g *GooglePubSub) Publish(msg *GooglePubSubMsg) error {
	if !g.publishersStarted {
		return errors.New("Publishers not started")
	}
	g.PublishChan <- msg
	return nil
}

func (g *GooglePubSub) publishMsg(msg *GooglePubSubMsg) {
	topic := g.topic(msg.Topic)
	ctx := context.Background()
	result := topic.Publish(ctx, &pubsub.Message{Data: []byte(msg.Payload)})
	_, err := result.Get(ctx)
	if err != nil {
		log.Errorf("Error publishing to topic %v: err: %v", msg.Topic, err)
	}
}

func (g *GooglePubSub) topic(name string) *pubsub.Topic {
	g.topicsMu.Lock()
	defer g.topicsMu.Unlock()
	topic, ok := g.topics[name]
	if !ok {
		topic = g.client.Topic(name)
		g.topics[name] = topic
	}
	return topic
}

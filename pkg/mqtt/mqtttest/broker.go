// Package mqtttest provides an in-memory paho client for tests. Messages
// published on it are delivered synchronously to every matching
// subscription.
package mqtttest

import (
	"sync"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/mqtt"
	paho "github.com/eclipse/paho.mqtt.golang"
)

// Published is a message seen by the broker
type Published struct {
	Topic   string
	Payload []byte
}

// Client implements paho.Client against an in-process broker
type Client struct {
	mu        sync.Mutex
	connected bool
	subs      map[string]paho.MessageHandler
	published []Published
}

var _ paho.Client = (*Client)(nil)

// NewClient returns a connected in-memory client
func NewClient() *Client {
	return &Client{
		connected: true,
		subs:      make(map[string]paho.MessageHandler),
	}
}

// SetConnected toggles the connection state seen by callers
func (c *Client) SetConnected(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = v
}

// Published returns every message published so far
func (c *Client) Published() []Published {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Published(nil), c.published...)
}

// Subscriptions returns the active subscription filters
func (c *Client) Subscriptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.subs))
	for f := range c.subs {
		out = append(out, f)
	}
	return out
}

func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) IsConnectionOpen() bool { return c.IsConnected() }

func (c *Client) Connect() paho.Token {
	c.SetConnected(true)
	return done(nil)
}

func (c *Client) Disconnect(uint) { c.SetConnected(false) }

func (c *Client) Publish(topic string, _ byte, _ bool, payload any) paho.Token {
	var data []byte
	switch p := payload.(type) {
	case []byte:
		data = p
	case string:
		data = []byte(p)
	}

	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return done(paho.ErrNotConnected)
	}
	c.published = append(c.published, Published{Topic: topic, Payload: data})
	var handlers []paho.MessageHandler
	for filter, h := range c.subs {
		if mqtt.TopicMatch(filter, topic) {
			handlers = append(handlers, h)
		}
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(c, &message{topic: topic, payload: data})
	}
	return done(nil)
}

func (c *Client) Subscribe(topic string, _ byte, callback paho.MessageHandler) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[topic] = callback
	return done(nil)
}

func (c *Client) SubscribeMultiple(filters map[string]byte, callback paho.MessageHandler) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	for f := range filters {
		c.subs[f] = callback
	}
	return done(nil)
}

func (c *Client) Unsubscribe(topics ...string) paho.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range topics {
		delete(c.subs, t)
	}
	return done(nil)
}

func (c *Client) AddRoute(topic string, callback paho.MessageHandler) {
	c.Subscribe(topic, 0, callback)
}

func (c *Client) OptionsReader() paho.ClientOptionsReader {
	return paho.ClientOptionsReader{}
}

type token struct {
	err error
	ch  chan struct{}
}

func done(err error) *token {
	ch := make(chan struct{})
	close(ch)
	return &token{err: err, ch: ch}
}

func (t *token) Wait() bool                     { return true }
func (t *token) WaitTimeout(time.Duration) bool { return true }
func (t *token) Done() <-chan struct{}          { return t.ch }
func (t *token) Error() error                   { return t.err }

type message struct {
	topic   string
	payload []byte
}

func (m *message) Duplicate() bool   { return false }
func (m *message) Qos() byte         { return 0 }
func (m *message) Retained() bool    { return false }
func (m *message) Topic() string     { return m.topic }
func (m *message) MessageID() uint16 { return 0 }
func (m *message) Payload() []byte   { return m.payload }
func (m *message) Ack()              {}

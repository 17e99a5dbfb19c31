package mqtt_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/mqtt"
	"github.com/PancyStudios/ToothlessGo/pkg/mqtt/mqtttest"
)

func TestTopicMatch(t *testing.T) {
	tests := []struct {
		pattern, topic string
		want           bool
	}{
		{"toothless/request/guild.get", "toothless/request/guild.get", true},
		{"toothless/request/+", "toothless/request/guild.get", true},
		{"toothless/request/+", "toothless/request/a/b", false},
		{"toothless/events/#", "toothless/events/guild/1", true},
		{"toothless/events/#", "toothless/events", true},
		{"toothless/#", "other/events", false},
		{"toothless/events/guild", "toothless/events", false},
		{"a/+/c", "a/b/c", true},
		{"a/+/c", "a/b/d", false},
	}
	for _, tt := range tests {
		if got := mqtt.TopicMatch(tt.pattern, tt.topic); got != tt.want {
			t.Errorf("TopicMatch(%q, %q) = %v, want %v", tt.pattern, tt.topic, got, tt.want)
		}
	}
}

func TestTopics(t *testing.T) {
	mc := mqtt.NewWithClient(mqtttest.NewClient(), "bot", "")

	if got := mc.RequestTopic("guild.get"); got != "toothless/request/guild.get" {
		t.Errorf("RequestTopic() = %q", got)
	}
	if got := mc.ResponseTopic("guild.get", "abc"); got != "toothless/response/guild.get/abc" {
		t.Errorf("ResponseTopic() = %q", got)
	}
	if got := mc.EventTopic("guild/1"); got != "toothless/events/guild/1" {
		t.Errorf("EventTopic() = %q", got)
	}
}

func TestRequestResponseRoundTrip(t *testing.T) {
	client := mqtttest.NewClient()
	mc := mqtt.NewWithClient(client, "bot", "")

	err := mc.On("echo", func(payload map[string]any) (any, error) {
		return map[string]any{"topic": payload["_topic"], "value": payload["value"]}, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := mc.Request("echo", map[string]any{"value": "hola"}, time.Second)
	if err != nil {
		t.Fatalf("Request() error: %v", err)
	}

	m, ok := data.(map[string]any)
	if !ok {
		t.Fatalf("Request() = %T, want map", data)
	}
	if m["topic"] != "echo" || m["value"] != "hola" {
		t.Errorf("Request() = %v", m)
	}

	for _, sub := range client.Subscriptions() {
		if strings.Contains(sub, "/response/") {
			t.Errorf("response subscription %q not cleaned up", sub)
		}
	}
}

func TestRequestHandlerError(t *testing.T) {
	mc := mqtt.NewWithClient(mqtttest.NewClient(), "bot", "")
	mc.On("fail", func(map[string]any) (any, error) {
		return nil, errors.New("guild not found")
	})

	_, err := mc.Request("fail", nil, time.Second)
	if err == nil || err.Error() != "guild not found" {
		t.Errorf("Request() error = %v, want guild not found", err)
	}
}

func TestRequestTimeout(t *testing.T) {
	mc := mqtt.NewWithClient(mqtttest.NewClient(), "bot", "")

	_, err := mc.Request("nobody.listens", nil, 20*time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("Request() error = %v, want timeout", err)
	}
}

func TestRequestWithoutCorrelationIDIgnored(t *testing.T) {
	client := mqtttest.NewClient()
	mc := mqtt.NewWithClient(client, "bot", "")

	called := false
	mc.On("guild.get", func(map[string]any) (any, error) {
		called = true
		return nil, nil
	})

	if err := mc.Publish("toothless/request/guild.get", map[string]any{"payload": map[string]any{}}); err != nil {
		t.Fatal(err)
	}
	if called {
		t.Error("handler should not run for a request without correlationId")
	}
}

func TestPublishWhileDisconnected(t *testing.T) {
	client := mqtttest.NewClient()
	client.SetConnected(false)
	mc := mqtt.NewWithClient(client, "bot", "")

	if err := mc.Publish("toothless/events/guild/1", map[string]string{"a": "b"}); err == nil {
		t.Error("Publish() should fail while disconnected")
	}
	if mc.IsConnected() {
		t.Error("IsConnected() should be false")
	}
}

package mqtt

import "context"

// Client is the subset of MQTT used by agents; fakes implement it in tests
type Client interface {
	// Connect establishes a connection to the MQTT broker
	Connect(ctx context.Context) error

	// Disconnect closes the connection to the MQTT broker
	Disconnect()

	// Subscribe subscribes to a topic. The subscription is restored after reconnects.
	Subscribe(topic string, qos byte, handler MessageHandler) error

	// Publish publishes a message to a topic
	Publish(topic string, qos byte, retained bool, payload []byte) error

	// IsConnected returns whether the client is currently connected
	IsConnected() bool
}

// MessageHandler is a callback function for handling incoming MQTT messages
type MessageHandler func(Message)

// Message represents an MQTT message
type Message interface {
	Topic() string
	Payload() []byte

	// Ack acknowledges the message (for QoS > 0)
	Ack()
}

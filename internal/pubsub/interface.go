package pubsub

// Client publishes and decodes application events. Payloads are
// MessagePack-encoded.
type Client interface {
	SendMessage(topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close()
}

package events

// Sink receives events from a session worker. The research runner publishes
// through this interface so it stays independent of the transport that
// ultimately delivers events to a client.
type Sink interface {
	Publish(ev Event)
}

// NoopSink discards all events. Used for non-interactive runs where nobody
// consumes the stream.
type NoopSink struct{}

func (NoopSink) Publish(Event) {}

package queue

// MessageQueue abstracts the broker used to publish entity mutation events.
// Subjects follow "<entity>.<operation>", e.g. "station.created".
type MessageQueue interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte) error) error
	Close() error
}

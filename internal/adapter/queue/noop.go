package queue

// NoopQueue discards events. Used when no broker is configured.
type NoopQueue struct{}

func NewNoopQueue() MessageQueue { return NoopQueue{} }

func (NoopQueue) Publish(string, []byte) error { return nil }

func (NoopQueue) Subscribe(string, func(data []byte) error) error { return nil }

func (NoopQueue) Close() error { return nil }

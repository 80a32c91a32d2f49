package resource

// Kind tells a success toast from a destructive one.
type Kind string

const (
	KindSuccess     Kind = "success"
	KindDestructive Kind = "destructive"
)

type Message struct {
	Kind Kind
	Text string
}

// Collector is a Notifier that queues messages for the next render.
type Collector struct {
	Messages []Message
}

func (c *Collector) Success(message string) {
	c.Messages = append(c.Messages, Message{Kind: KindSuccess, Text: message})
}

func (c *Collector) Error(message string) {
	c.Messages = append(c.Messages, Message{Kind: KindDestructive, Text: message})
}

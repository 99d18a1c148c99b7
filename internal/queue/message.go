package queue

import (
	"encoding/json"

	uuid "github.com/satori/go.uuid"
)

// Message is a single unit of work travelling through a queue.
type Message struct {
	// ID uniquely identifies the message.
	ID string `json:"id"`
	// Body is the opaque payload.
	Body []byte `json:"body"`
}

// NewMessage returns a new Message with a freshly generated ID.
func NewMessage(body []byte) Message {
	return Message{
		ID:   uuid.NewV4().String(),
		Body: body,
	}
}

// NewMessageFromJSON returns a Message unmarshaled from the provided []byte.
func NewMessageFromJSON(jsonBytes []byte) (Message, error) {
	m := Message{}
	err := json.Unmarshal(jsonBytes, &m)
	return m, err
}

// ToJSON returns a JSON representation of the Message.
func (m Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

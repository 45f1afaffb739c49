package notify

import (
	"encoding/json"
	"time"
)

// IngestedMessage announces that a new batch of transactions replaced the
// current session. Consumers refresh from the session store; the message
// carries only the batch shape.
type IngestedMessage struct {
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

func NewIngestedMessage(source string, count int) *IngestedMessage {
	return &IngestedMessage{
		Source:    source,
		Count:     count,
		Timestamp: time.Now(),
	}
}

func (m *IngestedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func IngestedMessageFromJSON(data []byte) (*IngestedMessage, error) {
	var msg IngestedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

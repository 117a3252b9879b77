package ws

import "taskboard/internal/domain"

// Message is the envelope for every frame the server sends.
type Message struct {
	Type  string       `json:"type"`
	Event string       `json:"event,omitempty"`
	Task  *domain.Task `json:"task,omitempty"`
}

func taskMessage(ev domain.TaskEvent) Message {
	return Message{Type: MsgTask, Event: ev.Type, Task: ev.Task}
}

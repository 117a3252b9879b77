package ws

const (
	// server - client
	MsgReady = "ready"
	MsgTask  = "task"
)

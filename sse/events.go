package sse

// Event names sent on a run stream.
const (
	// EventStarted opens a stream and carries the run ID.
	EventStarted = "started"

	// EventPacket carries one output packet.
	EventPacket = "packet"

	// EventError carries an error envelope and ends the stream.
	EventError = "error"

	// EventDone ends a successful stream.
	EventDone = "done"
)

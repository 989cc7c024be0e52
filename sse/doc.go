// Package sse writes Server-Sent Events over HTTP responses.
//
// A Writer frames each event as
//
//	event: <name>
//	data: <json>
//
// and flushes it immediately, so clients see packets as a chain produces
// them.
//
//	sw, err := sse.NewWriter(w)
//	if err != nil { ... }
//	sw.Send(sse.EventPacket, payload)
package sse

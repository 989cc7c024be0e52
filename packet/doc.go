// Package packet defines the opaque unit of payload that moves through a
// filter chain.
//
// A Packet is move-only by convention: once pushed into a filter the caller
// must not read or modify it again, and once pulled out the producing filter
// keeps no reference to it.
package packet

// Package version reports pktchain build information, set at link time
// with -ldflags or read from the embedded VCS settings.
package version

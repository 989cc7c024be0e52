// Package httpapi exposes filter chains over HTTP with gin.
//
// Routes:
//
//	GET  /health                health and version
//	GET  /v1/filters            registered filter kinds and their options
//	GET  /v1/chains             chains of the configured catalog
//	POST /v1/run                run a descriptor over posted packets
//	POST /v1/run/stream         same, streaming output packets as SSE
//	POST /v1/chains/:name/run   run a catalog chain over posted packets
//
// Every request builds its own chain, so requests never share filter
// state. Routes under /v1 require an HS256 bearer token when a JWT secret
// is configured.
package httpapi

// Package pms implements the wire-protocol layer for a Plex Media Server:
// request URL construction, XML response parsing into a generic node tree,
// and the error taxonomy shared by the transport and facade layers.
package pms

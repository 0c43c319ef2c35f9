package auth

import (
	"os"
	"runtime"

	"github.com/google/uuid"
)

// Version is the client version advertised to the server.
const Version = "0.1.0"

// Identity describes this client to the server via the X-Plex-* base
// header set. Servers use the client identifier to tell sessions apart.
type Identity struct {
	Product          string
	Version          string
	Platform         string
	PlatformVersion  string
	Provides         string
	Device           string
	ClientIdentifier string
}

// DefaultIdentity returns an Identity describing this library and host.
// The client identifier is freshly generated; reuse one Identity per
// process if the server should see a stable client.
func DefaultIdentity() Identity {
	host, _ := os.Hostname()
	return Identity{
		Product:          "go-plex",
		Version:          Version,
		Platform:         runtime.GOOS,
		PlatformVersion:  runtime.Version(),
		Provides:         "controller",
		Device:           host,
		ClientIdentifier: uuid.NewString(),
	}
}

// Headers returns the identity as the header map sent with every request.
// Empty fields are omitted.
func (id Identity) Headers() map[string]string {
	h := map[string]string{
		"X-Plex-Product":           id.Product,
		"X-Plex-Version":           id.Version,
		"X-Plex-Platform":          id.Platform,
		"X-Plex-Platform-Version":  id.PlatformVersion,
		"X-Plex-Provides":          id.Provides,
		"X-Plex-Device":            id.Device,
		"X-Plex-Client-Identifier": id.ClientIdentifier,
	}
	for k, v := range h {
		if v == "" {
			delete(h, k)
		}
	}
	return h
}

package plex

import (
	"context"
	"fmt"
	"strings"

	"github.com/smnsjas/go-plex/pms"
)

// Client describes a player client connected to the server. Its BaseURL is
// derived from the host and port the server reports for the client, not
// from the server's own address.
type Client struct {
	srv *Server

	Name                 string
	Host                 string
	Port                 string
	Product              string
	Version              string
	Protocol             string
	ProtocolVersion      string
	ProtocolCapabilities string
	DeviceClass          string
	MachineIdentifier    string

	// BaseURL is the address the client itself is reachable at.
	BaseURL string
}

func newClient(srv *Server, n *pms.Node) *Client {
	c := &Client{
		srv:                  srv,
		Name:                 n.Attr("name"),
		Host:                 n.Attr("host"),
		Port:                 n.Attr("port"),
		Product:              n.Attr("product"),
		Version:              n.Attr("version"),
		Protocol:             n.Attr("protocol"),
		ProtocolVersion:      n.Attr("protocolVersion"),
		ProtocolCapabilities: n.Attr("protocolCapabilities"),
		DeviceClass:          n.Attr("deviceClass"),
		MachineIdentifier:    n.Attr("machineIdentifier"),
	}
	c.BaseURL = fmt.Sprintf("http://%s:%s", c.Host, c.Port)
	return c
}

// Server returns the connection the client was discovered through. The
// association is non-owning; a Client does not keep the connection alive.
func (c *Client) Server() *Server {
	return c.srv
}

// Clients lists the player clients currently connected to the server.
// Every call issues a fresh request; nothing is cached.
func (s *Server) Clients(ctx context.Context) ([]*Client, error) {
	node, err := s.Query(ctx, "/clients")
	if err != nil {
		return nil, err
	}
	var clients []*Client
	if node != nil {
		for _, child := range node.Children {
			clients = append(clients, newClient(s, child))
		}
	}
	return clients, nil
}

// Client returns the connected client with the given name. Matching is a
// case-insensitive exact match over a fresh listing; no match returns a
// *pms.NotFoundError carrying the name.
func (s *Server) Client(ctx context.Context, name string) (*Client, error) {
	clients, err := s.Clients(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, &pms.NotFoundError{Kind: "client name", Key: name}
}

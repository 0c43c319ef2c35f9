package plex

import (
	"context"
	"errors"
)

// Account is the server's locally cached account information, available
// without talking to the remote account service.
type Account struct {
	AuthToken            string
	Username             string
	MappingState         string
	MappingError         string
	MappingErrorMessage  string
	SignInState          string
	PublicAddress        string
	PublicPort           string
	PrivateAddress       string
	PrivatePort          string
	SubscriptionFeatures string
	SubscriptionActive   bool
	SubscriptionState    string
}

// Account fetches the server's cached account information.
func (s *Server) Account(ctx context.Context) (*Account, error) {
	node, err := s.Query(ctx, "/myplex/account")
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.New("empty account response")
	}
	return &Account{
		AuthToken:            node.Attr("authToken"),
		Username:             node.Attr("username"),
		MappingState:         node.Attr("mappingState"),
		MappingError:         node.Attr("mappingError"),
		MappingErrorMessage:  node.Attr("mappingErrorMessage"),
		SignInState:          node.Attr("signInState"),
		PublicAddress:        node.Attr("publicAddress"),
		PublicPort:           node.Attr("publicPort"),
		PrivateAddress:       node.Attr("privateAddress"),
		PrivatePort:          node.Attr("privatePort"),
		SubscriptionFeatures: node.Attr("subscriptionFeatures"),
		SubscriptionActive:   node.BoolAttr("subscriptionActive"),
		SubscriptionState:    node.Attr("subscriptionState"),
	}, nil
}

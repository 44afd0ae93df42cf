package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCred fetches and caches client credential tokens.
type ClientCred struct {
	conf clientcredentials.Config
	src  oauth2.TokenSource
}

// NewClientCred builds a token source for conf. Tokens are refreshed when
// they expire.
func NewClientCred(ctx context.Context, conf Conf) *ClientCred {
	cc := conf.toOauth2Config()
	return &ClientCred{conf: cc, src: cc.TokenSource(ctx)}
}

// GetToken returns a valid access token.
func (c *ClientCred) GetToken() (string, error) {
	tok, err := c.src.Token()
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return tok.AccessToken, nil
}

// HTTPClient returns a client that sets the bearer token on every request
// before handing it to base. A nil base uses http.DefaultClient.
func (c *ClientCred) HTTPClient(base *http.Client) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	rt := base.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   base.Timeout,
		Transport: &oauth2.Transport{Source: c.src, Base: rt},
	}
}

package network

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
)

// ClientFactory creates HTTP clients that honour the configured egress proxy.
type ClientFactory struct {
	egressProxy    string
	testHTTPClient *http.Client // For testing only
}

// NewClientFactory creates a client factory. egressProxy may be empty, an
// http(s) proxy URL or a socks5 URL.
func NewClientFactory(egressProxy string) *ClientFactory {
	return &ClientFactory{egressProxy: strings.TrimSpace(egressProxy)}
}

// NewClientFactoryForTest creates a client factory that always returns client.
func NewClientFactoryForTest(client *http.Client) *ClientFactory {
	return &ClientFactory{testHTTPClient: client}
}

// NewHTTPClient creates an http.Client. A zero timeout means the request is
// bounded only by its context.
func (f *ClientFactory) NewHTTPClient(timeout time.Duration) *http.Client {
	if f.testHTTPClient != nil {
		return f.testHTTPClient
	}

	client := &http.Client{Timeout: timeout}
	if f.egressProxy != "" {
		client.Transport = newTransportWithProxy(f.egressProxy)
	}
	return client
}

// newTransportWithProxy uses golang.org/x/net/proxy for socks URLs and
// http.ProxyURL for everything else.
func newTransportWithProxy(proxyURL string) *http.Transport {
	parsed, err := url.Parse(proxyURL)
	if err != nil {
		return &http.Transport{}
	}

	if strings.HasPrefix(parsed.Scheme, "socks") {
		var auth *proxy.Auth
		if parsed.User != nil {
			auth = &proxy.Auth{User: parsed.User.Username()}
			if password, ok := parsed.User.Password(); ok {
				auth.Password = password
			}
		}

		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return &http.Transport{}
		}
		if ctxDialer, ok := dialer.(proxy.ContextDialer); ok {
			return &http.Transport{DialContext: ctxDialer.DialContext}
		}
		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			},
		}
	}

	return &http.Transport{Proxy: http.ProxyURL(parsed)}
}

package netutil

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

func NewProxyDialer(proxyUrl string) (proxy.Dialer, error) {
	url, err := url.Parse(proxyUrl)
	if err != nil {
		return nil, err
	}
	return proxy.FromURL(url, proxy.Direct)
}

// NewHTTPClient returns an HTTP/1.1 client with the given connect timeout.
// proxyURL may be empty, an http(s) proxy or a socks5(h) proxy.
func NewHTTPClient(connectTimeout time.Duration, proxyURL string) (*http.Client, error) {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 3 * connectTimeout,
	}
	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: connectTimeout,
		ForceAttemptHTTP2:   false,
		TLSNextProto:        map[string]func(string, *tls.Conn) http.RoundTripper{},
	}
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url %q: %w", proxyURL, err)
		}
		switch u.Scheme {
		case "http", "https":
			transport.Proxy = http.ProxyURL(u)
		default:
			pd, err := NewProxyDialer(proxyURL)
			if err != nil {
				return nil, fmt.Errorf("failed to create proxy dialer: %w", err)
			}
			cd, ok := pd.(proxy.ContextDialer)
			if !ok {
				return nil, fmt.Errorf("proxy scheme %q does not support context dialing", u.Scheme)
			}
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return cd.DialContext(ctx, network, addr)
			}
		}
	}
	return &http.Client{Transport: transport}, nil
}

// Package materializer converts node configurations into live transports.
// Only plain-proxy protocols are materialized in-process; anything needing
// an external client core is unusable here and skipped by the engine.
package materializer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/proxy"

	"github.com/eleven-am/probegate/internal/domain"
	"github.com/eleven-am/probegate/internal/ports"
)

type handle struct {
	transport *http.Transport
}

func (h *handle) RoundTripper() http.RoundTripper {
	return h.transport
}

func (h *handle) Close() error {
	h.transport.CloseIdleConnections()
	return nil
}

// Proxy materializes http, https and socks5 nodes as http.Transports.
type Proxy struct {
	logger *slog.Logger
}

func NewProxy(logger *slog.Logger) *Proxy {
	if logger == nil {
		logger = slog.Default()
	}

	return &Proxy{
		logger: logger.With("component", "materializer"),
	}
}

func (p *Proxy) Materialize(ctx context.Context, node domain.Node, platformHint string) (ports.ConnHandle, error) {
	switch node.Protocol {
	case "http", "https":
		return p.httpHandle(node)
	case "socks5", "socks":
		return p.socksHandle(node)
	default:
		p.logger.Debug("protocol not materializable in-process", "protocol", node.Protocol, "platform", platformHint)
		return nil, domain.NewProbeError(node.Fingerprint(), "materialize", domain.ErrUnusable)
	}
}

func (p *Proxy) httpHandle(node domain.Node) (ports.ConnHandle, error) {
	proxyURL := &url.URL{
		Scheme: node.Protocol,
		Host:   net.JoinHostPort(node.Server, fmt.Sprintf("%d", node.Port)),
	}
	if node.UserID != "" {
		if pass, ok := node.Params["password"]; ok {
			proxyURL.User = url.UserPassword(node.UserID, pass)
		} else {
			proxyURL.User = url.User(node.UserID)
		}
	}

	return &handle{
		transport: &http.Transport{
			Proxy:                 http.ProxyURL(proxyURL),
			DisableKeepAlives:     true,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 30 * time.Second,
		},
	}, nil
}

func (p *Proxy) socksHandle(node domain.Node) (ports.ConnHandle, error) {
	addr := net.JoinHostPort(node.Server, fmt.Sprintf("%d", node.Port))

	var auth *proxy.Auth
	if node.UserID != "" {
		auth = &proxy.Auth{User: node.UserID}
		if pass, ok := node.Params["password"]; ok {
			auth.Password = pass
		}
	}

	dialer, err := proxy.SOCKS5("tcp", addr, auth, proxy.Direct)
	if err != nil {
		return nil, domain.NewProbeError(node.Fingerprint(), "materialize", domain.ErrUnusable)
	}

	transport := &http.Transport{
		DisableKeepAlives:     true,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		transport.DialContext = cd.DialContext
	} else {
		transport.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
			return dialer.Dial(network, address)
		}
	}

	return &handle{transport: transport}, nil
}

package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/eleven-am/probegate/internal/domain"
)

// ConnHandle is a materialized node: a live egress path requests can be sent
// through.
type ConnHandle interface {
	RoundTripper() http.RoundTripper
	Close() error
}

// Materializer turns a node configuration into a usable connection handle.
// domain.ErrUnusable means the node must be skipped for this round without
// consuming a retry attempt.
type Materializer interface {
	Materialize(ctx context.Context, node domain.Node, platformHint string) (ConnHandle, error)
}

type HTTPResponse struct {
	Status  int
	Body    string
	Headers http.Header
}

// HTTPClient performs one outbound request through a connection handle.
// Transport-level failures surface as errors wrapping domain.ErrTransport.
type HTTPClient interface {
	Get(ctx context.Context, url string, headers map[string]string, conn ConnHandle, timeout time.Duration) (*HTTPResponse, error)
}

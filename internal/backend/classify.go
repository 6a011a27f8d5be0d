package backend

import (
	"context"
	"net"
	"net/url"

	"github.com/shenavaapp/shenava-client/internal/errors"
)

// classifyTransportError maps a transport failure to the client error
// taxonomy. Connectivity problems are detected through typed errors from
// the net package rather than message sniffing, and map to the distinct
// "check your connection" state.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.CodeNetwork, "request timed out")
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return errors.Wrap(err, errors.CodeNetwork, "request timed out")
		}
		err = urlErr.Err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Wrap(err, errors.CodeNetwork, "network unavailable")
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Wrap(err, errors.CodeNetwork, "network unavailable")
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return errors.Wrap(err, errors.CodeNetwork, "host unreachable")
	}

	return errors.Wrap(err, errors.CodeBackend, "request failed")
}

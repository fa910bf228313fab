package adapter

import (
	"context"
	"net"
	"net/url"
	"time"
)

// netProbe is the default [ConnectivityProbe]: it attempts a TCP dial to the
// remote host with a short timeout. The result is a point-in-time hint, not
// a guarantee — the sync engine only uses it to decide between running a
// cycle and reporting offline.
type netProbe struct {
	address string
	timeout time.Duration
}

// NewNetProbe builds a probe targeting the host of baseURL. An unparseable
// URL yields a probe that always reports offline.
func NewNetProbe(baseURL string, timeout time.Duration) ConnectivityProbe {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	address := ""
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host := u.Host
		if u.Port() == "" {
			switch u.Scheme {
			case "https":
				host = net.JoinHostPort(u.Hostname(), "443")
			default:
				host = net.JoinHostPort(u.Hostname(), "80")
			}
		}
		address = host
	}

	return &netProbe{address: address, timeout: timeout}
}

// OfflineProbe always reports offline. It stands in for the real probe when
// replication is unconfigured, so the engine never holds nil collaborators.
type OfflineProbe struct{}

func (OfflineProbe) Online(context.Context) bool { return false }

// NoCredentials is a [CredentialSource] that never produces a credential.
type NoCredentials struct{}

func (NoCredentials) Credential(context.Context) (string, bool) { return "", false }

func (p *netProbe) Online(ctx context.Context) bool {
	if p.address == "" {
		return false
	}

	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

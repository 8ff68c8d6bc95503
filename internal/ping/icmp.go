package ping

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	goping "github.com/digineo/go-ping"

	"ping-monitor/internal/models"
)

// ICMPProber sends echo requests over a raw ICMP socket and reads the RTT
// directly from the reply, without parsing any text.
type ICMPProber struct {
	pinger   *goping.Pinger
	resolver *net.Resolver
}

// NewICMP opens the ICMP sockets. It needs CAP_NET_RAW (or root) on most
// systems; the IPv6 socket is optional.
func NewICMP() (*ICMPProber, error) {
	pinger, err := goping.New("0.0.0.0", "::")
	if err != nil {
		var v4err error
		pinger, v4err = goping.New("0.0.0.0", "")
		if v4err != nil {
			return nil, fmt.Errorf("open icmp socket: %w", errors.Join(err, v4err))
		}
	}
	return &ICMPProber{pinger: pinger, resolver: net.DefaultResolver}, nil
}

// Probe resolves target and waits at most timeout for a single echo reply.
func (p *ICMPProber) Probe(ctx context.Context, target string, timeout time.Duration) models.ProbeResult {
	now := time.Now()
	deadline := now.Add(timeout)

	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	addr, err := p.resolve(ctx, target)
	if err != nil {
		return models.Unreachable(target, now)
	}

	remaining := time.Until(deadline)
	if remaining <= 0 {
		return models.Unreachable(target, now)
	}

	rtt, err := p.pinger.Ping(addr, remaining)
	if err != nil {
		return models.Unreachable(target, now)
	}
	return models.Reached(target, now, rtt)
}

func (p *ICMPProber) resolve(ctx context.Context, target string) (*net.IPAddr, error) {
	if ip := net.ParseIP(target); ip != nil {
		return &net.IPAddr{IP: ip}, nil
	}
	addrs, err := p.resolver.LookupIPAddr(ctx, target)
	if err != nil {
		return nil, err
	}
	// Prefer IPv4, the socket that is always open.
	for _, a := range addrs {
		if a.IP.To4() != nil {
			return &net.IPAddr{IP: a.IP, Zone: a.Zone}, nil
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("no addresses for %s", target)
	}
	return &net.IPAddr{IP: addrs[0].IP, Zone: addrs[0].Zone}, nil
}

// Close releases the ICMP sockets
func (p *ICMPProber) Close() error {
	p.pinger.Close()
	return nil
}

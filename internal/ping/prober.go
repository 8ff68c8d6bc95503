package ping

import (
	"fmt"
	"io"
	"log"

	"ping-monitor/internal/config"
	"ping-monitor/internal/models"
)

// Prober is a models.Prober that may hold OS resources.
type Prober interface {
	models.Prober
	io.Closer
}

type execCloser struct {
	*ExecProber
}

func (execCloser) Close() error { return nil }

// New picks a prober for mode. In auto mode a raw ICMP socket is preferred and
// the ping binary is used when the socket cannot be opened.
func New(mode string, logger *log.Logger) (Prober, error) {
	switch mode {
	case config.ProberExec:
		return execCloser{NewExec()}, nil
	case config.ProberICMP:
		p, err := NewICMP()
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProberAuto, "":
		p, err := NewICMP()
		if err != nil {
			logger.Printf("ICMP socket unavailable (%v), falling back to ping binary", err)
			return execCloser{NewExec()}, nil
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown prober %q", mode)
	}
}

package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"
)

// Printer sends a finished document to a thermal printer.
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// Available reports whether output actually reaches hardware.
	Available() bool
}

// Config selects the printer transport.
type Config struct {
	Type    string // usb, network or none
	USBPath string
	Address string
	Width   int
}

// New builds the printer described by cfg.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: usb path is required")
		}
		return &devicePrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required")
		}
		return &networkPrinter{address: cfg.Address, dialTimeout: 5 * time.Second}, nil
	case "", "none":
		return Discard{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown type %q", cfg.Type)
	}
}

// devicePrinter writes to a character device such as /dev/usb/lp0.
type devicePrinter struct {
	path string
}

func (p *devicePrinter) Print(_ context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *devicePrinter) Available() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter speaks raw TCP, usually on port 9100.
type networkPrinter struct {
	address     string
	dialTimeout time.Duration
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: dial %s: %w", p.address, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(10 * time.Second)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetWriteDeadline(deadline)

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Available() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Discard drops every job. Used when no printer is configured.
type Discard struct{}

func (Discard) Print(context.Context, []byte) error { return nil }

func (Discard) Available() bool { return false }

package printer

import (
	"bytes"
	"context"
	"net"
	"testing"
)

func TestDocumentPair(t *testing.T) {
	d := NewDocument(20)
	d.Pair("Paid", "4000.00")

	want := append([]byte{esc, '@'}, []byte("Paid         4000.00\n")...)
	if !bytes.Equal(d.Bytes(), want) {
		t.Fatalf("unexpected bytes %q", d.Bytes())
	}
}

func TestDocumentPairOverflowKeepsOneSpace(t *testing.T) {
	d := NewDocument(8)
	d.Pair("Remaining", "100")
	if !bytes.HasSuffix(d.Bytes(), []byte("Remaining 100\n")) {
		t.Fatalf("unexpected bytes %q", d.Bytes())
	}
}

func TestNewSelectsTransport(t *testing.T) {
	p, err := New(Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := p.(Discard); !ok {
		t.Fatalf("expected Discard for empty type, got %T", p)
	}
	if _, err := New(Config{Type: "usb"}); err == nil {
		t.Fatalf("expected error for usb without path")
	}
	if _, err := New(Config{Type: "serial"}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestNetworkPrinterWritesJob(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	got := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		got <- buf.Bytes()
	}()

	p, err := New(Config{Type: "network", Address: ln.Addr().String()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	doc := NewDocument(32).Line("hello").Cut()
	if err := p.Print(context.Background(), doc.Bytes()); err != nil {
		t.Fatalf("print: %v", err)
	}
	if data := <-got; !bytes.Equal(data, doc.Bytes()) {
		t.Fatalf("printer received %q", data)
	}
}

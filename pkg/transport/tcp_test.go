package transport

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/divelink/divelink-go/pkg/status"
)

func startEchoBridge(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				_, _ = io.Copy(conn, conn)
			}()
		}
	}()
	return ln.Addr().String()
}

func TestTCPEcho(t *testing.T) {
	addr := startEchoBridge(t)

	tr, err := DialTCP(context.Background(), addr)
	if err != nil {
		t.Fatalf("DialTCP failed: %v", err)
	}
	defer tr.Close()

	if tr.Name() != addr {
		t.Errorf("Name: got %q, want %q", tr.Name(), addr)
	}
	if err := tr.SetTimeout(2 * time.Second); err != nil {
		t.Fatalf("SetTimeout failed: %v", err)
	}
	if err := WriteAll(tr, []byte("ping")); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	p := make([]byte, 4)
	if _, err := ReadFull(tr, p); err != nil {
		t.Fatalf("ReadFull failed: %v", err)
	}
	if string(p) != "ping" {
		t.Errorf("echo: got %q, want %q", p, "ping")
	}
}

func TestTCPReadTimeout(t *testing.T) {
	addr := startEchoBridge(t)

	tr, err := DialTCP(context.Background(), addr)
	if err != nil {
		t.Fatalf("DialTCP failed: %v", err)
	}
	defer tr.Close()

	tr.SetTimeout(20 * time.Millisecond)
	_, err = tr.Read(make([]byte, 1))
	if status.Of(err) != status.Timeout {
		t.Errorf("status: got %v, want TIMEOUT (err=%v)", status.Of(err), err)
	}
}

func TestTCPClosed(t *testing.T) {
	addr := startEchoBridge(t)

	tr, err := DialTCP(context.Background(), addr)
	if err != nil {
		t.Fatalf("DialTCP failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("second Close: got %v, want nil", err)
	}
	if _, err := tr.Write([]byte{1}); status.Of(err) != status.IO {
		t.Errorf("Write after Close: got %v, want IO", err)
	}
}

func TestDialTCPRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	_, err = DialTCP(context.Background(), addr)
	if status.Of(err) != status.IO {
		t.Errorf("status: got %v, want IO", status.Of(err))
	}
}

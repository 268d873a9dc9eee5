// Package test holds helpers shared by tests.
package test

import (
	"net"
	"sync"
	"testing"
)

var (
	mu    sync.Mutex
	taken = map[string]struct{}{}
)

// ListenAddr returns a free localhost address for a test server. An address
// is never handed out twice within a test binary.
func ListenAddr(tb testing.TB) string {
	tb.Helper()
	for {
		l, err := net.Listen("tcp", "localhost:0")
		if err != nil {
			tb.Fatalf("listen: %v", err)
		}
		addr := l.Addr().String()
		l.Close() // nolint: errcheck

		mu.Lock()
		_, dup := taken[addr]
		taken[addr] = struct{}{}
		mu.Unlock()
		if !dup {
			return addr
		}
	}
}

package server

import (
	"context"
	"net/http"
	"testing"
)

func TestListenAddr(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"8000":           ":8000",
		" 8000 ":         ":8000",
		":9090":          ":9090",
		"127.0.0.1:8000": "127.0.0.1:8000",
	}
	for in, want := range cases {
		if got := listenAddr(in); got != want {
			t.Fatalf("listenAddr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewHTTPServer_Limits(t *testing.T) {
	srv := newHTTPServer(":1", http.NotFoundHandler())
	if srv.ReadHeaderTimeout != headerReadLimit || srv.ReadTimeout != requestReadLimit ||
		srv.WriteTimeout != responseLimit || srv.IdleTimeout != keepAliveLimit {
		t.Fatalf("timeouts not applied: %+v", srv)
	}
	if srv.MaxHeaderBytes != headerBytesLimit {
		t.Fatalf("max header bytes: %d", srv.MaxHeaderBytes)
	}
}

func TestShutdown_BeforeRunIsNoop(t *testing.T) {
	var s Server
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

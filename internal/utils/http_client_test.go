package utils

import (
	"testing"
	"time"
)

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient(5 * time.Second)

	if client == nil || client.Client == nil {
		t.Fatal("expected non-nil client with embedded *resty.Client")
	}
	if client.GetClient().Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", client.GetClient().Timeout)
	}
	if got := client.Header.Get("Accept"); got != "application/json" {
		t.Errorf("expected Accept application/json, got %q", got)
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	client1 := NewHTTPClient(0)
	client2 := NewHTTPClient(0)

	if client1.Client == client2.Client {
		t.Fatal("expected NewHTTPClient to return HTTPClients with different *resty.Client instances")
	}
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.Generate(), g.Generate()

	if !IsUUID(a) || !IsUUID(b) {
		t.Fatalf("expected UUIDs, got %q and %q", a, b)
	}
	if a == b {
		t.Fatal("expected distinct identifiers")
	}
	if IsUUID("not-a-uuid") {
		t.Fatal("expected IsUUID to reject garbage")
	}
}

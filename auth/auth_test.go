package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func tokenServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token123","token_type":"bearer","expires_in":3600}`))
	}))
}

func TestGetTokenCached(t *testing.T) {
	var hits int32
	server := tokenServer(t, &hits)
	defer server.Close()

	client := NewClientCred(context.Background(), Conf{ClientID: "id", ClientSecret: "secret", TokenURL: server.URL})
	for i := 0; i < 3; i++ {
		token, err := client.GetToken()
		if err != nil {
			t.Fatalf("GetToken returned error: %v", err)
		}
		if token != "token123" {
			t.Fatalf("unexpected token %s", token)
		}
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected a single token request, got %d", hits)
	}
}

func TestHTTPClientSetsBearer(t *testing.T) {
	var hits int32
	tokens := tokenServer(t, &hits)
	defer tokens.Close()

	var got string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer api.Close()

	cc := NewClientCred(context.Background(), Conf{ClientID: "id", ClientSecret: "secret", TokenURL: tokens.URL})
	resp, err := cc.HTTPClient(nil).Get(api.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if got != "Bearer token123" {
		t.Fatalf("authorization header not set: %q", got)
	}
}

func TestConfEnabled(t *testing.T) {
	if (Conf{}).Enabled() {
		t.Fatal("empty conf should be disabled")
	}
	if !(Conf{TokenURL: "http://x"}).Enabled() {
		t.Fatal("token url should enable auth")
	}
}

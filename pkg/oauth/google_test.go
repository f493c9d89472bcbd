package oauth

import (
	"context"
	"errors"
	"net/url"
	"testing"
)

func TestAuthURLCarriesStateAndClient(t *testing.T) {
	g := NewGoogle(GoogleConfig{ClientID: "client-1", ClientSecret: "s", RedirectURL: "http://localhost/cb"})

	u, err := url.Parse(g.AuthURL("state-xyz"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	q := u.Query()
	if q.Get("state") != "state-xyz" || q.Get("client_id") != "client-1" {
		t.Fatalf("unexpected query %v", q)
	}
	if q.Get("redirect_uri") != "http://localhost/cb" {
		t.Fatalf("unexpected redirect %q", q.Get("redirect_uri"))
	}
}

func TestIdentifyRequiresConfiguration(t *testing.T) {
	g := NewGoogle(GoogleConfig{})
	if g.Configured() {
		t.Fatalf("empty config must not be configured")
	}
	if _, err := g.Identify(context.Background(), "code"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

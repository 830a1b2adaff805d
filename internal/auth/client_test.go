package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zkamal/recipebox/internal/credentials"
	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *credentials.MemStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	creds := credentials.NewMemStore()
	return NewClient(server.URL, creds, logger.New(logger.LevelOff, nil)), creds
}

func TestLoginSuccessMarkers(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantToken string
	}{
		{"boolean true", `{"data":{"token":"t"},"success":true}`, false, "t"},
		{"integer one", `{"data":{"token":"t"},"success":1}`, false, "t"},
		{"boolean false", `{"data":{"token":"t"},"success":false}`, true, ""},
		{"integer zero", `{"data":{"token":"t"},"success":0}`, true, ""},
		{"missing marker", `{"data":{"token":"t"}}`, true, ""},
		{"empty token", `{"data":{"token":""},"success":true}`, true, ""},
		{"garbage body", `<html>oops</html>`, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.Write([]byte(tt.body))
			})

			err := client.Login(context.Background(), "zul", "secret")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected login failure, got nil")
				}
				if !IsLoginFailure(err) {
					t.Fatalf("expected ErrLoginFailed, got %v", err)
				}
				if _, err := creds.Get(TokenKey); !errors.Is(err, domain.ErrNotFound) {
					t.Fatal("token must not be stored on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			token, err := creds.Get(TokenKey)
			if err != nil {
				t.Fatalf("reading stored token: %v", err)
			}
			if token != tt.wantToken {
				t.Fatalf("expected token %q, got %q", tt.wantToken, token)
			}
		})
	}
}

func TestLoginFailureMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"wrong password"}`))
	})

	err := client.Login(context.Background(), "zul", "nope")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "wrong password") {
		t.Fatalf("expected backend message in error, got %q", err)
	}
}

func TestLoginGenericMessageForUnknownShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	err := client.Login(context.Background(), "zul", "secret")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid response") {
		t.Fatalf("expected generic message, got %q", err)
	}
}

func TestLogoutClearsTokenBeforeRequest(t *testing.T) {
	var tokenAtRequest string
	var client *Client
	var creds *credentials.MemStore
	client, creds = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/logout" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		tokenAtRequest, _ = creds.Get(TokenKey)
		w.WriteHeader(http.StatusOK)
	})
	creds.Set(TokenKey, "t")

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if tokenAtRequest != "" {
		t.Fatal("token still stored when the logout request went out")
	}
}

func TestLogoutNetworkFailureStillClearsToken(t *testing.T) {
	creds := credentials.NewMemStore()
	creds.Set(TokenKey, "t")
	// Port 0 is never listening; the request must fail.
	client := NewClient("http://127.0.0.1:0", creds, logger.New(logger.LevelOff, nil))

	err := client.Logout(context.Background())
	if err == nil {
		t.Fatal("expected network error to be reported")
	}
	if _, err := creds.Get(TokenKey); !errors.Is(err, domain.ErrNotFound) {
		t.Fatal("token must be cleared even when the request fails")
	}
}

func TestIsLoggedIn(t *testing.T) {
	creds := credentials.NewMemStore()
	client := NewClient("http://unused", creds, logger.New(logger.LevelOff, nil))

	if client.IsLoggedIn() {
		t.Fatal("fresh store should not be logged in")
	}
	creds.Set(TokenKey, "t")
	if !client.IsLoggedIn() {
		t.Fatal("expected logged in after storing token")
	}
	creds.Delete(TokenKey)
	if client.IsLoggedIn() {
		t.Fatal("expected logged out after deleting token")
	}
}

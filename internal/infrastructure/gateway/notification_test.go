package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestNotificationClient_Paths(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"msg": "Отправлено"})
	}))
	defer srv.Close()

	client := NewNotificationClient(srv.URL, srv.Client(), zerolog.Nop())

	cases := []struct {
		name string
		call func() (string, error)
		path string
	}{
		{"email", func() (string, error) { return client.NotifyCertificateEmail(context.Background(), "tok", 5) }, "/notify/certificate/5"},
		{"sms", func() (string, error) { return client.NotifyCertificateSMS(context.Background(), "tok", 5) }, "/notify/sms/5"},
		{"user", func() (string, error) { return client.NotifyUser(context.Background(), "tok", 7) }, "/notify/user/7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := tc.call()
			if err != nil {
				t.Fatalf("call returned error: %v", err)
			}
			if msg != "Отправлено" {
				t.Fatalf("expected upstream message verbatim, got %q", msg)
			}
			if gotPath != tc.path {
				t.Fatalf("expected path %s, got %s", tc.path, gotPath)
			}
		})
	}
}

package mw

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"ownerconsole/internal/model"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Owner", Identity(r.Context()).ID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestPasscode(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash passcode: %v", err)
	}
	h := Passcode(string(hash))(okHandler())

	tests := []struct {
		name string
		pass string
		auth bool
		want int
	}{
		{"missing", "", false, http.StatusUnauthorized},
		{"wrong", "guess", true, http.StatusUnauthorized},
		{"right", "open-sesame", true, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.auth {
				req.SetBasicAuth("owner", tt.pass)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, rec.Code)
			}
		})
	}

	rec := httptest.NewRecorder()
	Passcode("")(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected disabled passcode to pass, got %d", rec.Code)
	}
}

type fakeSessions struct {
	authed bool
	owner  *model.Identity
	admin  *model.Identity
}

func (f fakeSessions) IsAuthenticated(ctx context.Context) bool { return f.authed }

func (f fakeSessions) CurrentUser() (model.Identity, bool) {
	if f.owner == nil {
		return model.Identity{}, false
	}
	return *f.owner, true
}

func (f fakeSessions) CurrentAdmin() (model.Identity, bool) {
	if f.admin == nil {
		return model.Identity{}, false
	}
	return *f.admin, true
}

func TestRequireOwner(t *testing.T) {
	owner := &model.Identity{ID: "owner-1"}

	tests := []struct {
		name     string
		sessions fakeSessions
		path     string
		want     int
		location string
	}{
		{"page redirects", fakeSessions{}, "/orders", http.StatusSeeOther, "/login"},
		{"api gets 401", fakeSessions{}, "/api/orders", http.StatusUnauthorized, ""},
		{"admin is not owner", fakeSessions{authed: true, admin: &model.Identity{ID: "admin-1"}}, "/orders", http.StatusSeeOther, "/login"},
		{"owner passes", fakeSessions{authed: true, owner: owner}, "/orders", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireOwner(tt.sessions)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Fatalf("Expected %d, got %d", tt.want, rec.Code)
			}
			if tt.location != "" && rec.Header().Get("Location") != tt.location {
				t.Errorf("Expected redirect to %s, got %s", tt.location, rec.Header().Get("Location"))
			}
			if tt.want == http.StatusOK && rec.Header().Get("X-Owner") != "owner-1" {
				t.Error("Expected identity in request context")
			}
		})
	}
}

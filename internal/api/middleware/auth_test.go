package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuth(t *testing.T) {
	var gotAdminID int64
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdminID, gotOK = GetAdminID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid id", "7", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not a number", "admin", http.StatusUnauthorized},
		{"non-positive", "0", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAdminID, gotOK = 0, false

			req := httptest.NewRequest(http.MethodGet, "/admin/properties/10/visits", nil)
			if tt.header != "" {
				req.Header.Set(HeaderAdminID, tt.header)
			}

			rec := httptest.NewRecorder()
			AdminAuth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.True(t, gotOK)
				assert.Equal(t, int64(7), gotAdminID)
			} else {
				assert.False(t, gotOK)
			}
		})
	}
}

func TestVisitorPhone(t *testing.T) {
	var gotPhone string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPhone, gotOK = GetVisitorPhone(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantPhone  string
	}{
		{"canonical phone", "+34666666666", http.StatusOK, "+34666666666"},
		{"phone with separators", "+34 (666) 666-666", http.StatusOK, "+34666666666"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"no international prefix", "34666666666", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPhone, gotOK = "", false

			req := httptest.NewRequest(http.MethodGet, "/api/v1/visits", nil)
			if tt.header != "" {
				req.Header.Set(HeaderVisitorPhone, tt.header)
			}

			rec := httptest.NewRecorder()
			VisitorPhone(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.True(t, gotOK)
				assert.Equal(t, tt.wantPhone, gotPhone)
			} else {
				assert.False(t, gotOK)
			}
		})
	}
}

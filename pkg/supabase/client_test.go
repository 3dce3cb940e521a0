package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/auth/v1/user":
			_, _ = w.Write([]byte(`{"id":"u1","email":"a@b.c","role":"authenticated"}`))
		case "/rest/v1/profiles":
			assert.Equal(t, "eq.u1", r.URL.Query().Get("id"))
			assert.Equal(t, "id,subscription_tier", r.URL.Query().Get("select"))
			_, _ = w.Write([]byte(`[{"id":"u1","subscription_tier":"premium"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "anon")
	ctx := context.Background()

	user, err := c.GetUser(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "a@b.c", user.Email)

	profile, err := c.GetProfile(ctx, "good", "u1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "premium", profile.SubscriptionTier)

	_, err = c.GetUser(ctx, "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetProfileMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	profile, err := NewClient(srv.URL, "anon").GetProfile(context.Background(), "t", "u1")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "anon").GetUser(context.Background(), "t")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "503")
}

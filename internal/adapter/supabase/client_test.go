package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizationURL(t *testing.T) {
	client, err := New("https://x.test", "anon", nil)
	require.NoError(t, err)

	raw, err := client.AuthorizationURL("google", "http://localhost:8080/")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "x.test", parsed.Host)
	require.Equal(t, "/auth/v1/authorize", parsed.Path)
	require.Equal(t, "google", parsed.Query().Get("provider"))
	require.Equal(t, "http://localhost:8080/", parsed.Query().Get("redirect_to"))
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("not-a-url", "anon", nil)
	require.Error(t, err)
}

func TestExchangeCode(t *testing.T) {
	var gotAuthCode string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "pkce", r.URL.Query().Get("grant_type"))
		require.Equal(t, "anon", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotAuthCode = body["auth_code"]

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"access_token": "at-1",
			"refresh_token": "rt-1",
			"expires_in": 3600,
			"token_type": "bearer",
			"user": {
				"id": "u-1",
				"email": "user@x.com",
				"user_metadata": {"email_verified": true, "name": "User"}
			}
		}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, "anon", nil)
	require.NoError(t, err)

	session, err := client.ExchangeCode(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", gotAuthCode)
	require.Equal(t, "at-1", session.AccessToken)
	require.Equal(t, "user@x.com", session.User.Email)
	require.True(t, session.User.EmailVerified())
}

func TestExchangeCode_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description": "invalid flow state"}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, "anon", nil)
	require.NoError(t, err)

	_, err = client.ExchangeCode(context.Background(), "abc")
	require.ErrorContains(t, err, "invalid flow state")
}

func TestAuthorizedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/v1/authorized_users", r.URL.Path)
		require.Equal(t, "eq.user@x.com", r.URL.Query().Get("email"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"email": "user@x.com", "role": "admin"}]`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, "anon", nil)
	require.NoError(t, err)

	record, err := client.AuthorizedUser(context.Background(), "user@x.com")
	require.NoError(t, err)
	require.NotNil(t, record)
	require.Equal(t, "admin", record.Role)
}

func TestAuthorizedUser_NoRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, "anon", nil)
	require.NoError(t, err)

	record, err := client.AuthorizedUser(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	require.Nil(t, record)
}

func TestSignOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/logout", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := New(srv.URL, "anon", nil)
	require.NoError(t, err)

	require.NoError(t, client.SignOut(context.Background(), "at-1"))
	require.Equal(t, "Bearer at-1", gotAuth)
}

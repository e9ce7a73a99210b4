package server_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/go-contacts-server/auth"
	"github.com/jrsteele09/go-contacts-server/contacts"
	fakecontactrepo "github.com/jrsteele09/go-contacts-server/contacts/repofake"
	"github.com/jrsteele09/go-contacts-server/internal/config"
	"github.com/jrsteele09/go-contacts-server/oauth2"
	"github.com/jrsteele09/go-contacts-server/server"
	"github.com/jrsteele09/go-contacts-server/token"
	"github.com/jrsteele09/go-contacts-server/users"
	fakeuserrepo "github.com/jrsteele09/go-contacts-server/users/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testOrigin   = "http://localhost:5173"
	testPassword = "password123"
)

type testFixture struct {
	now      time.Time
	users    *fakeuserrepo.FakeUserRepo
	contacts *fakecontactrepo.FakeContactRepo
	tokens   *token.Manager
	server   *server.Server
}

func (f *testFixture) Now() time.Time {
	return f.now
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	cfg, err := config.Load(map[string]string{
		"ENV":                  "TEST",
		"JWT_SECRET_KEY":       "test-secret",
		"CORS_ALLOWED_ORIGINS": testOrigin,
	})
	require.NoError(t, err)

	f := &testFixture{
		now:      time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC),
		users:    fakeuserrepo.NewFakeUserRepo(),
		contacts: fakecontactrepo.NewFakeContactRepo(),
	}

	signer, err := token.NewHMACSigner(cfg.GetJWTSecret())
	require.NoError(t, err)
	f.tokens, err = token.New(signer, token.WithTokenExpiry(cfg.GetAccessTokenExpiry()), token.WithNowFunc(f.Now))
	require.NoError(t, err)

	credentials, err := auth.NewCredentials(f.tokens, bcrypt.MinCost)
	require.NoError(t, err)
	authService, err := auth.NewAuthService(f.users, credentials, auth.WithNowTime(f.Now))
	require.NoError(t, err)

	tick := 0
	contactService, err := contacts.NewService(f.contacts, contacts.WithNowTime(func() time.Time {
		tick++
		return f.now.Add(time.Duration(tick) * time.Second)
	}))
	require.NoError(t, err)

	f.server, err = server.New(cfg, authService, contactService)
	require.NoError(t, err)
	return f
}

// do sends a request through the full server handler. body may be nil, a
// string of raw JSON, or any value to be encoded.
func (f *testFixture) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

// login registers email and returns an access token for it
func (f *testFixture) login(t *testing.T, email string) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, server.RouteAuthRegister, "", map[string]any{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.do(t, http.MethodPost, server.RouteAuthLogin, "", map[string]any{"email": email, "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp oauth2.TokenResponse
	decode(t, rec, &resp)
	return resp.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body server.ErrorResponse
	decode(t, rec, &body)
	return body.Detail
}

func jo() map[string]any {
	return map[string]any{"name": "Jo", "phone": "1234567", "email": "jo@x.com"}
}

func TestNew_RequiredDependencies(t *testing.T) {
	_, err := server.New(nil, nil, nil)
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodGet, server.RouteHealth, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthEndpoints(t *testing.T) {
	f := setupTestFixture(t)

	rec := f.do(t, http.MethodPost, server.RouteAuthRegister, "", map[string]any{
		"email":    "A@X.com",
		"name":     "Alice",
		"password": testPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"id":"a@x.com","email":"a@x.com","name":"Alice","createdAt":"2026-04-01T08:00:00Z"}`, rec.Body.String())

	t.Run("duplicate email is a 400", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, server.RouteAuthRegister, "", map[string]any{"email": "a@x.com", "password": testPassword})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "user with this email already exists", detail(t, rec))
	})

	t.Run("short password is a 422", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, server.RouteAuthRegister, "", map[string]any{"email": "b@x.com", "password": "123"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("password over the bcrypt limit is a 422", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, server.RouteAuthRegister, "", map[string]any{"email": "long@x.com", "password": strings.Repeat("a", 80)})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, detail(t, rec), "at most 72 bytes")
	})

	t.Run("malformed body is a 422", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, server.RouteAuthRegister, "", `{"email":`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = f.do(t, http.MethodPost, server.RouteAuthRegister, "", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	var accessToken string
	t.Run("login", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, server.RouteAuthLogin, "", map[string]any{"email": "a@X.COM", "password": testPassword})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		var resp oauth2.TokenResponse
		decode(t, rec, &resp)
		require.Equal(t, "bearer", resp.TokenType)
		require.NotEmpty(t, resp.AccessToken)
		accessToken = resp.AccessToken
	})

	t.Run("bad login is a 401 that does not say which check failed", func(t *testing.T) {
		wrongPassword := f.do(t, http.MethodPost, server.RouteAuthLogin, "", map[string]any{"email": "a@x.com", "password": "wrong-password"})
		unknownEmail := f.do(t, http.MethodPost, server.RouteAuthLogin, "", map[string]any{"email": "z@x.com", "password": testPassword})

		require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
		require.Equal(t, "Bearer", wrongPassword.Header().Get("WWW-Authenticate"))
	})

	t.Run("me", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, server.RouteAuthMe, accessToken, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var me users.PublicUser
		decode(t, rec, &me)
		require.Equal(t, "a@x.com", me.ID)
		require.NotContains(t, rec.Body.String(), "passwordHash")
	})

	t.Run("me without a usable token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, server.RouteAuthMe, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

		rec = f.do(t, http.MethodGet, server.RouteAuthMe, "garbage", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		req := httptest.NewRequest(http.MethodGet, server.RouteAuthMe, nil)
		req.Header.Set("Authorization", "Basic "+accessToken)
		basic := httptest.NewRecorder()
		f.server.ServeHTTP(basic, req)
		require.Equal(t, http.StatusUnauthorized, basic.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		f.now = f.now.Add(f.tokens.AccessTokenExpiry())
		defer func() { f.now = f.now.Add(-f.tokens.AccessTokenExpiry()) }()

		rec := f.do(t, http.MethodGet, server.RouteAuthMe, accessToken, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "could not validate credentials", detail(t, rec))
	})
}

func TestContactEndpoints(t *testing.T) {
	f := setupTestFixture(t)
	alice := f.login(t, "alice@x.com")
	bob := f.login(t, "bob@x.com")

	rec := f.do(t, http.MethodPost, server.RouteContacts+"/", alice, jo())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created contacts.Contact
	decode(t, rec, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice@x.com", created.UserID)
	require.False(t, created.IsFavorite)
	require.Contains(t, rec.Body.String(), `"tags":[]`)
	require.Contains(t, rec.Body.String(), `"notes":null`)

	contactPath := server.RouteContacts + "/" + created.ID

	t.Run("get", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, contactPath, alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var got contacts.Contact
		decode(t, rec, &got)
		require.Equal(t, created.ID, got.ID)
		require.True(t, created.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("list with and without trailing slash", func(t *testing.T) {
		for _, path := range []string{server.RouteContacts, server.RouteContacts + "/"} {
			rec := f.do(t, http.MethodGet, path, alice, nil)
			require.Equal(t, http.StatusOK, rec.Code, path)

			var list []contacts.Contact
			decode(t, rec, &list)
			require.Len(t, list, 1, path)
		}
	})

	t.Run("list filters", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, server.RouteContacts, alice, map[string]any{
			"name": "Sam", "phone": "7654321", "email": "sam@y.com", "tags": []string{"gym"}, "isFavorite": true,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = f.do(t, http.MethodGet, server.RouteContacts+"?favorite=true", alice, nil)
		var favorites []contacts.Contact
		decode(t, rec, &favorites)
		require.Len(t, favorites, 1)
		require.Equal(t, "Sam", favorites[0].Name)

		rec = f.do(t, http.MethodGet, server.RouteContacts+"?search=JO&tag=", alice, nil)
		var found []contacts.Contact
		decode(t, rec, &found)
		require.Len(t, found, 1)
		require.Equal(t, created.ID, found[0].ID)

		rec = f.do(t, http.MethodGet, server.RouteContacts+"/?tag=gym", alice, nil)
		var tagged []contacts.Contact
		decode(t, rec, &tagged)
		require.Len(t, tagged, 1)

		rec = f.do(t, http.MethodGet, server.RouteContacts+"?favorite=maybe", alice, nil)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = f.do(t, http.MethodGet, server.RouteContacts, bob, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("create validation", func(t *testing.T) {
		rec := f.do(t, http.MethodPost, server.RouteContacts, alice, map[string]any{"name": "Jo", "phone": "12", "email": "jo@x.com"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("update", func(t *testing.T) {
		rec := f.do(t, http.MethodPut, contactPath, alice, `{}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var unchanged contacts.Contact
		decode(t, rec, &unchanged)
		require.True(t, created.UpdatedAt.Equal(unchanged.UpdatedAt))

		rec = f.do(t, http.MethodPut, contactPath, alice, `{"notes":"call back","tags":["work","work"]}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated contacts.Contact
		decode(t, rec, &updated)
		require.Equal(t, "Jo", updated.Name)
		require.Equal(t, []string{"work", "work"}, updated.Tags)
		require.True(t, updated.UpdatedAt.After(created.UpdatedAt))

		rec = f.do(t, http.MethodPut, contactPath, alice, `{"notes":null}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"notes":null`)

		rec = f.do(t, http.MethodPut, contactPath, alice, `{"name":null}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("toggle favorite", func(t *testing.T) {
		rec := f.do(t, http.MethodPatch, contactPath+"/favorite", alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var toggled contacts.Contact
		decode(t, rec, &toggled)
		require.True(t, toggled.IsFavorite)

		rec = f.do(t, http.MethodPatch, contactPath+"/favorite", alice, nil)
		decode(t, rec, &toggled)
		require.False(t, toggled.IsFavorite)
	})

	t.Run("other users get 404", func(t *testing.T) {
		for _, req := range []struct{ method, path string }{
			{http.MethodGet, contactPath},
			{http.MethodPut, contactPath},
			{http.MethodDelete, contactPath},
			{http.MethodPatch, contactPath + "/favorite"},
		} {
			rec := f.do(t, req.method, req.path, bob, `{"name":"Mallory"}`)
			require.Equal(t, http.StatusNotFound, rec.Code, req.method)
			require.Equal(t, "contact not found", detail(t, rec))
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, server.RouteContacts, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = f.do(t, http.MethodPost, server.RouteContacts, "", jo())
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("delete twice", func(t *testing.T) {
		rec := f.do(t, http.MethodDelete, contactPath, alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"deleted"}`, rec.Body.String())

		rec = f.do(t, http.MethodDelete, contactPath, alice, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure is a 500", func(t *testing.T) {
		f.contacts.Err = errors.New("connection refused")
		defer func() { f.contacts.Err = nil }()

		rec := f.do(t, http.MethodGet, server.RouteContacts, alice, nil)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "database error", detail(t, rec))
	})
}

func TestCors(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("preflight from an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, server.RouteContacts+"/some-id/favorite", nil)
		req.Header.Set("Origin", testOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
		rec := httptest.NewRecorder()
		f.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("preflight from another origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, server.RouteAuthLogin, nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		f.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, server.RouteHealth, nil)
		req.Header.Set("Origin", testOrigin)
		rec := httptest.NewRecorder()
		f.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRoutes(t *testing.T) {
	f := setupTestFixture(t)
	require.Contains(t, f.server.Routes(), "PATCH "+server.RouteContactFavourite)
	require.Contains(t, f.server.Routes(), "GET "+server.RouteContactsSlash)
}

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/linkboard/linkboard/internal/api"
	"github.com/linkboard/linkboard/internal/auth"
	"github.com/linkboard/linkboard/internal/store"
	"github.com/linkboard/linkboard/internal/testutil"
)

// testEnv wires the full API router over an in-memory database.
type testEnv struct {
	Router http.Handler
	Links  *store.LinkStore
	Users  *store.UserStore
	Codec  *auth.TokenCodec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	codec, err := auth.NewTokenCodec("test-secret")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}

	users := store.NewUserStore(db)
	links := store.NewLinkStore(db)
	votes := store.NewVoteStore(db)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := api.NewRouter(api.Deps{
		Credentials: auth.NewCredentialManager(users, codec),
		Identity:    auth.NewMiddleware(codec),
		Users:       users,
		Links:       links,
		Votes:       votes,
		FeedCache:   nil,
		Log:         logger,
	})

	return &testEnv{Router: router, Links: links, Users: users, Codec: codec}
}

// doJSON performs a request against the router with an optional bearer token
// and JSON body, and returns the recorded response.
func doJSON(t *testing.T, env *testEnv, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the recorded response body into dest.
func decode(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// signupUser registers a user through the API and returns the token and user.
func signupUser(t *testing.T, env *testEnv, email, password, name string) (string, api.UserResponse) {
	t.Helper()

	rec := doJSON(t, env, http.MethodPost, "/signup", "", api.SignupRequest{
		Email: email, Password: password, Name: name,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp api.AuthResponse
	decode(t, rec, &resp)
	return resp.Token, resp.User
}

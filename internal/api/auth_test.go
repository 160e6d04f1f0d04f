package api_test

import (
	"net/http"
	"testing"

	"github.com/linkboard/linkboard/internal/api"
)

func TestSignupLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	_, created := signupUser(t, env, "alice@example.com", "hunter2", "Alice")

	rec := doJSON(t, env, http.MethodPost, "/login", "", api.LoginRequest{
		Email: "alice@example.com", Password: "hunter2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp api.AuthResponse
	decode(t, rec, &resp)

	if resp.User.ID != created.ID {
		t.Errorf("login user = %q, want %q", resp.User.ID, created.ID)
	}
	userID, err := env.Codec.Verify(resp.Token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != created.ID {
		t.Errorf("token identity = %q, want %q", userID, created.ID)
	}
}

func TestSignup_Conflict(t *testing.T) {
	env := newTestEnv(t)
	signupUser(t, env, "alice@example.com", "hunter2", "Alice")

	rec := doJSON(t, env, http.MethodPost, "/signup", "", api.SignupRequest{
		Email: "alice@example.com", Password: "other", Name: "Alice Again",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestSignup_MissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodPost, "/signup", "", api.SignupRequest{Email: "a@b.c"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestLogin_FailuresPresentUniformly(t *testing.T) {
	env := newTestEnv(t)
	signupUser(t, env, "alice@example.com", "hunter2", "Alice")

	wrongPass := doJSON(t, env, http.MethodPost, "/login", "", api.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	unknown := doJSON(t, env, http.MethodPost, "/login", "", api.LoginRequest{
		Email: "nobody@example.com", Password: "hunter2",
	})

	if wrongPass.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d, %d, want both 401", wrongPass.Code, unknown.Code)
	}
	if wrongPass.Body.String() != unknown.Body.String() {
		t.Errorf("login failure bodies differ:\n%s\n%s", wrongPass.Body.String(), unknown.Body.String())
	}
}

func TestUser_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodGet, "/user", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestUser_WithToken(t *testing.T) {
	env := newTestEnv(t)
	token, created := signupUser(t, env, "alice@example.com", "hunter2", "Alice")

	rec := doJSON(t, env, http.MethodGet, "/user", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp api.UserResponse
	decode(t, rec, &resp)
	if resp.ID != created.ID || resp.Email != "alice@example.com" {
		t.Errorf("user = %+v, want alice", resp)
	}
}

// A token with one character altered is treated as anonymous, so an
// identity-requiring operation fails with 401 instead of crashing.
func TestUser_TamperedTokenIsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	token, _ := signupUser(t, env, "alice@example.com", "hunter2", "Alice")

	rec := doJSON(t, env, http.MethodGet, "/user", token+"x", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body struct {
		Code string `json:"code"`
	}
	decode(t, rec, &body)
	if body.Code != "UNAUTHENTICATED" {
		t.Errorf("code = %q, want UNAUTHENTICATED", body.Code)
	}
}

func TestUser_EmptyBearerIsMalformed(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodGet, "/user", " ", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body struct {
		Code string `json:"code"`
	}
	decode(t, rec, &body)
	if body.Code != "MALFORMED_TOKEN" {
		t.Errorf("code = %q, want MALFORMED_TOKEN", body.Code)
	}
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/linkboard/linkboard/internal/auth"
	"github.com/linkboard/linkboard/internal/cache"
	"github.com/linkboard/linkboard/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Credentials *auth.CredentialManager
	Identity    *auth.Middleware
	Users       *store.UserStore
	Links       *store.LinkStore
	Votes       *store.VoteStore
	FeedCache   *cache.FeedCache // nil disables caching
	Log         *logrus.Logger
}

// NewRouter creates the chi router for the /api operations. Identity
// extraction runs once per request before any handler; handlers that need an
// identity check the request context.
func NewRouter(deps Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(jsonContentType)
	r.Use(deps.Identity.Authenticate)

	a := &authHandler{creds: deps.Credentials, users: deps.Users, log: deps.Log}
	r.Post("/signup", a.Signup)
	r.Post("/login", a.Login)
	r.Get("/user", a.User)

	l := &linkHandler{links: deps.Links, users: deps.Users, votes: deps.Votes, cache: deps.FeedCache, log: deps.Log}
	r.Get("/feed", l.Feed)
	r.Get("/link/{id}", l.Link)
	r.Post("/post", l.Post)
	r.Post("/updateLink", l.UpdateLink)
	r.Post("/deleteLink", l.DeleteLink)
	r.Post("/vote", l.Vote)

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

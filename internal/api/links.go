package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/linkboard/linkboard/internal/auth"
	"github.com/linkboard/linkboard/internal/cache"
	"github.com/linkboard/linkboard/internal/metrics"
	"github.com/linkboard/linkboard/internal/store"
)

// linkHandler serves the feed, link, post, updateLink, deleteLink, and vote
// operations.
type linkHandler struct {
	links *store.LinkStore
	users *store.UserStore
	votes *store.VoteStore
	cache *cache.FeedCache
	log   *logrus.Logger
}

// parseFeedQuery builds a store.FeedQuery from the request's query string.
// orderBy is a repeatable "field:direction" parameter applied in sequence.
func parseFeedQuery(r *http.Request) (store.FeedQuery, error) {
	q := store.FeedQuery{Filter: r.URL.Query().Get("filter")}

	if raw := r.URL.Query().Get("take"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("take must be an integer")
		}
		q.Take = &n
	}
	if raw := r.URL.Query().Get("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, errors.New("skip must be an integer")
		}
		q.Skip = &n
	}
	for _, raw := range r.URL.Query()["orderBy"] {
		field, dir, ok := strings.Cut(raw, ":")
		if !ok {
			return q, errors.New("orderBy must be field:direction")
		}
		q.OrderBy = append(q.OrderBy, store.OrderBy{Field: field, Direction: dir})
	}

	return q, q.Validate()
}

// Feed returns the filtered, sorted, paginated link feed with a total count
// and a deterministic result identifier. Identical parameters hit the cache
// under the same key.
// GET /api/feed
func (h *linkHandler) Feed(w http.ResponseWriter, r *http.Request) {
	q, err := parseFeedQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
		return
	}

	metrics.FeedRequestsTotal.Inc()
	key := q.CacheKey()

	var resp FeedResponse
	if h.cache.Get(r.Context(), key, &resp) {
		metrics.FeedCacheHitsTotal.WithLabelValues("hit").Inc()
		writeJSON(w, http.StatusOK, resp)
		return
	}
	metrics.FeedCacheHitsTotal.WithLabelValues("miss").Inc()

	links, count, err := h.links.Feed(r.Context(), q)
	if err != nil {
		h.log.WithError(err).Error("feed query failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp = FeedResponse{Links: make([]LinkResponse, 0, len(links)), Count: count, ID: key}
	for _, l := range links {
		resp.Links = append(resp.Links, toLinkResponse(l))
	}

	h.cache.Set(r.Context(), key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// Link returns a single link by ID with its voters resolved.
// GET /api/link/{id}
func (h *linkHandler) Link(w http.ResponseWriter, r *http.Request) {
	link, err := h.links.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
			return
		}
		h.log.WithError(err).Error("load link failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	voters, err := h.votes.Voters(r.Context(), link.ID)
	if err != nil {
		h.log.WithError(err).Error("load voters failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	resp := toLinkResponse(link)
	resp.Voters = make([]UserResponse, 0, len(voters))
	for _, v := range voters {
		resp.Voters = append(resp.Voters, toUserResponse(v))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Post creates a new link owned by the authenticated caller.
// POST /api/post
func (h *linkHandler) Post(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", "UNAUTHENTICATED")
		return
	}

	var req PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.Description == "" || req.URL == "" {
		writeError(w, http.StatusBadRequest, "description and url are required", "BAD_REQUEST")
		return
	}

	link, err := h.links.Create(r.Context(), userID, req.Description, req.URL)
	if err != nil {
		h.log.WithError(err).Error("create link failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	metrics.LinksCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, toLinkResponse(link))
}

// UpdateLink modifies a link's description and url. The store applies the
// ownership check in the write itself; a missing link and someone else's
// link are the same 404.
// POST /api/updateLink
func (h *linkHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", "UNAUTHENTICATED")
		return
	}

	var req UpdateLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.ID == "" || req.Description == "" || req.URL == "" {
		writeError(w, http.StatusBadRequest, "id, description, and url are required", "BAD_REQUEST")
		return
	}

	link, err := h.links.UpdateOwned(r.Context(), userID, req.ID, req.Description, req.URL)
	if err != nil {
		if errors.Is(err, store.ErrNotFoundOrForbidden) {
			writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
			return
		}
		h.log.WithError(err).Error("update link failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, toLinkResponse(link))
}

// DeleteLink removes a link, with the same ownership scoping as UpdateLink.
// POST /api/deleteLink
func (h *linkHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", "UNAUTHENTICATED")
		return
	}

	var req DeleteLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required", "BAD_REQUEST")
		return
	}

	if err := h.links.DeleteOwned(r.Context(), userID, req.ID); err != nil {
		if errors.Is(err, store.ErrNotFoundOrForbidden) {
			writeError(w, http.StatusNotFound, "not found", "NOT_FOUND")
			return
		}
		h.log.WithError(err).Error("delete link failed")
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}

	writeJSON(w, http.StatusOK, DeleteLinkResponse{ID: req.ID})
}

// Vote records the caller's vote on a link.
// POST /api/vote
func (h *linkHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required", "UNAUTHENTICATED")
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}
	if req.LinkID == "" {
		writeError(w, http.StatusBadRequest, "link_id is required", "BAD_REQUEST")
		return
	}

	if err := h.votes.Add(r.Context(), req.LinkID, userID); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyVoted):
			writeError(w, http.StatusConflict, "already voted", "ALREADY_VOTED")
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "link not found", "NOT_FOUND")
		default:
			h.log.WithError(err).Error("record vote failed")
			writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		}
		return
	}

	metrics.VotesTotal.Inc()
	writeJSON(w, http.StatusCreated, VoteResponse{LinkID: req.LinkID, UserID: userID})
}

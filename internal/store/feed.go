package store

import (
	"encoding/json"
	"fmt"
)

// Feed ordering fields accepted from callers, mapped to their columns.
var orderColumns = map[string]string{
	"createdAt":   "created_at",
	"description": "description",
	"url":         "url",
}

// OrderBy is one (field, direction) pair of a multi-key feed sort.
type OrderBy struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// FeedQuery is an immutable description of one feed request: optional
// substring filter, optional pagination window, and an optional ordered
// sequence of sort keys. The zero value means "everything, in store order".
type FeedQuery struct {
	Filter  string    `json:"filter"`
	Take    *int      `json:"take"`
	Skip    *int      `json:"skip"`
	OrderBy []OrderBy `json:"orderBy"`
}

// Validate rejects negative pagination bounds and sort keys outside the
// whitelist before any SQL is assembled from the query.
func (q FeedQuery) Validate() error {
	if q.Take != nil && *q.Take < 0 {
		return fmt.Errorf("take must be non-negative, got %d", *q.Take)
	}
	if q.Skip != nil && *q.Skip < 0 {
		return fmt.Errorf("skip must be non-negative, got %d", *q.Skip)
	}
	for _, o := range q.OrderBy {
		if _, ok := orderColumns[o.Field]; !ok {
			return fmt.Errorf("unknown orderBy field %q", o.Field)
		}
		if o.Direction != "asc" && o.Direction != "desc" {
			return fmt.Errorf("orderBy direction must be asc or desc, got %q", o.Direction)
		}
	}
	return nil
}

// CacheKey returns a deterministic identifier for this exact parameter
// combination. json.Marshal of a struct emits fields in declaration order,
// so the serialization is canonical: equal queries produce equal keys and
// any differing parameter produces a differing key.
func (q FeedQuery) CacheKey() string {
	b, err := json.Marshal(q)
	if err != nil {
		// Only unmarshalable types can fail here; FeedQuery has none.
		panic(fmt.Sprintf("marshal feed query: %v", err))
	}
	return "feed:" + string(b)
}

// whereClause returns the filter clause (including the leading WHERE) and its
// arguments, or an empty string when no filter applies. Matching is a
// substring match on description or url; case sensitivity is whatever the
// database's default collation does with LIKE.
func (q FeedQuery) whereClause() (string, []interface{}) {
	if q.Filter == "" {
		return "", nil
	}
	pattern := "%" + q.Filter + "%"
	return ` WHERE (description LIKE ? OR url LIKE ?)`, []interface{}{pattern, pattern}
}

// orderClause returns the ORDER BY clause, preserving the sequence of sort
// keys as a stable multi-key sort. Validate must have accepted the query.
func (q FeedQuery) orderClause() string {
	if len(q.OrderBy) == 0 {
		return ""
	}
	clause := ` ORDER BY `
	for i, o := range q.OrderBy {
		if i > 0 {
			clause += ", "
		}
		dir := "ASC"
		if o.Direction == "desc" {
			dir = "DESC"
		}
		clause += orderColumns[o.Field] + " " + dir
	}
	return clause
}

// limitClause returns the LIMIT/OFFSET clause and its arguments. An absent
// take with a present skip still needs a LIMIT in SQLite and MySQL, so a
// large sentinel bound stands in for "unbounded".
func (q FeedQuery) limitClause() (string, []interface{}) {
	if q.Take == nil && q.Skip == nil {
		return "", nil
	}
	limit := int(^uint32(0) >> 1)
	if q.Take != nil {
		limit = *q.Take
	}
	offset := 0
	if q.Skip != nil {
		offset = *q.Skip
	}
	return ` LIMIT ? OFFSET ?`, []interface{}{limit, offset}
}

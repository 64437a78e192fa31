package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dan9191/fintrack/internal/service"
)

// pathID parses the mux variable name as an ObjectID. Malformed ids cannot exist, so they are a 404.
func pathID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		return primitive.NilObjectID, service.ErrNotFound
	}
	return id, nil
}

func queryID(r *http.Request, name string) (*primitive.ObjectID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, badRequest(name + " must be a valid id")
	}
	return &id, nil
}

// queryDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates
func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, badRequest(name + " must be a date (YYYY-MM-DD)")
}

// endOfDay widens a plain date used as an upper bound to cover the whole day
func endOfDay(r *http.Request, name string, t *time.Time) *time.Time {
	if t == nil || len(r.URL.Query().Get(name)) != len(time.DateOnly) {
		return t
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, badRequest(name + " must be a positive integer")
	}
	return n, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, badRequest(name + " is required")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, badRequest(name + " must be a number")
	}
	return f, nil
}

// dateRange reads the from/to query pair
func dateRange(r *http.Request) (*time.Time, *time.Time, error) {
	from, err := queryDate(r, "from")
	if err != nil {
		return nil, nil, err
	}
	to, err := queryDate(r, "to")
	if err != nil {
		return nil, nil, err
	}
	return from, endOfDay(r, "to", to), nil
}

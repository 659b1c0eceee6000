package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewRouter exposes the catalog as a read-only REST API.
func NewRouter(c *Catalog, log *zap.Logger) *mux.Router {
	if log == nil {
		log = zap.NewNop()
	}
	h := &handlers{catalog: c}

	r := mux.NewRouter()
	r.Use(requestLogger(log))
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/plants", h.listPlants).Methods(http.MethodGet)
	r.HandleFunc("/plants/{id:[0-9]+}", h.getPlant).Methods(http.MethodGet)
	r.HandleFunc("/plants_environments", h.listEnvironments).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	return r
}

func requestLogger(log *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			log.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

type handlers struct {
	catalog *Catalog
}

func (h *handlers) listPlants(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	plants, err := h.catalog.ListPlants(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(len(h.catalog.Plants)))
	writeJSON(w, http.StatusOK, plants)
}

func (h *handlers) getPlant(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plant id")
		return
	}
	plant, ok := h.catalog.Plant(id)
	if !ok {
		writeError(w, http.StatusNotFound, "plant not found")
		return
	}
	writeJSON(w, http.StatusOK, plant)
}

func (h *handlers) listEnvironments(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	envs, err := h.catalog.ListEnvironments(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, envs)
}

func parseQuery(r *http.Request) (Query, error) {
	values := r.URL.Query()
	q := Query{
		Sort: values.Get("_sort"),
		Desc: values.Get("_order") == "desc",
	}

	var err error
	if raw := values.Get("_page"); raw != "" {
		if q.Page, err = strconv.Atoi(raw); err != nil || q.Page < 1 {
			return q, errInvalidParam("_page", raw)
		}
	}
	if raw := values.Get("_limit"); raw != "" {
		if q.Limit, err = strconv.Atoi(raw); err != nil || q.Limit < 0 {
			return q, errInvalidParam("_limit", raw)
		}
	}
	return q, nil
}

type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return "invalid " + e.name + ": " + strconv.Quote(e.value)
}

func errInvalidParam(name, value string) error {
	return &paramError{name: name, value: value}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

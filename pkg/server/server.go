// Package server exposes the conversation engine to the hosting UI layer
// over HTTP. The API mirrors the in-process contract: /api/chat returns
// either a function_call or a narrative message, /api/execute runs a
// classified function, and /api/records lets the UI poll the durable
// store's lists for its history views.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kisanmitra/kisanmitra/pkg/function"
	"github.com/kisanmitra/kisanmitra/pkg/intent"
	"github.com/kisanmitra/kisanmitra/pkg/model"
	"github.com/kisanmitra/kisanmitra/pkg/repository"
	"github.com/kisanmitra/kisanmitra/pkg/usecase/chat"
	"github.com/kisanmitra/kisanmitra/pkg/utils/logging"
)

const maxBodySize = 1 << 20 // 1MB

// Deps are the engine components the HTTP layer dispatches into
type Deps struct {
	Repo       repository.Repository
	Classifier *intent.Classifier
	Env        *function.Env
}

// ChatRequest is one conversation turn from the UI. The UI owns the user
// profile and supplies the prior history; the engine stays stateless
// between requests.
type ChatRequest struct {
	Message string             `json:"message"`
	User    *model.UserProfile `json:"user"`
	History []model.Message    `json:"history,omitempty"`
}

// ExecuteRequest asks for a previously classified function call to be run
type ExecuteRequest struct {
	Function model.FunctionName    `json:"function"`
	Params   *model.FunctionParams `json:"params"`
	User     *model.UserProfile    `json:"user"`
}

// New builds the HTTP handler for the engine API
func New(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", handleChat(deps))
		r.Post("/execute", handleExecute(deps))
		r.Get("/records/{kind}", handleListRecords(deps))
	})

	return r
}

func newSession(deps Deps, user *model.UserProfile, history []model.Message) (*chat.Session, error) {
	return chat.New(chat.NewInput{
		User:       user,
		Repo:       deps.Repo,
		Classifier: deps.Classifier,
		Env:        deps.Env,
		History:    history,
	})
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Message == "" {
			httpError(w, http.StatusBadRequest, "message is required")
			return
		}
		if req.User == nil {
			httpError(w, http.StatusBadRequest, "user is required")
			return
		}

		session, err := newSession(deps, req.User, req.History)
		if err != nil {
			logging.From(r.Context()).Error("failed to create session", "error", err)
			httpError(w, http.StatusInternalServerError, "failed to start conversation")
			return
		}

		writeJSON(w, http.StatusOK, session.Respond(r.Context(), req.Message))
	}
}

func handleExecute(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExecuteRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Function == "" {
			httpError(w, http.StatusBadRequest, "function is required")
			return
		}
		if req.User == nil {
			httpError(w, http.StatusBadRequest, "user is required")
			return
		}

		session, err := newSession(deps, req.User, nil)
		if err != nil {
			logging.From(r.Context()).Error("failed to create session", "error", err)
			httpError(w, http.StatusInternalServerError, "failed to start conversation")
			return
		}

		// Execute never fails at this boundary; business failures come
		// back as success=false results with status 200.
		writeJSON(w, http.StatusOK, session.Execute(r.Context(), req.Function, req.Params))
	}
}

func handleListRecords(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := model.RecordKind(chi.URLParam(r, "kind"))
		if err := kind.Validate(); err != nil {
			httpError(w, http.StatusNotFound, "unknown record kind %q", kind)
			return
		}

		var (
			records []*model.Record
			err     error
		)
		if actor := r.URL.Query().Get("actor"); actor != "" {
			records, err = deps.Repo.ListByActor(r.Context(), kind, actor)
		} else {
			records, err = deps.Repo.List(r.Context(), kind)
		}
		if err != nil {
			logging.From(r.Context()).Error("failed to list records", "kind", kind, "error", err)
			httpError(w, http.StatusInternalServerError, "failed to list records")
			return
		}

		if records == nil {
			records = []*model.Record{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"records": records})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

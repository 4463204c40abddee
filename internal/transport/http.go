package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler dispatches one named action with raw JSON params.
type Handler interface {
	Handle(ctx context.Context, action string, params json.RawMessage) (any, error)
}

// CodedError lets handlers map domain errors to JSON-RPC error codes.
type CodedError interface {
	error
	RPCCode() int
}

// Server wires HTTP handlers.
type Server struct {
	handler Handler
}

// NewServer creates the HTTP router. The daemon listens on loopback only, so
// there is no auth layer; anything that can reach the socket owns the data.
func NewServer(handler Handler) *chi.Mux {
	r := chi.NewRouter()

	srv := &Server{handler: handler}

	r.Post("/rpc", srv.handleRPC)
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	result, err := s.handler.Handle(r.Context(), req.Method, req.Params)
	if err != nil {
		var coded CodedError
		if errors.As(err, &coded) {
			WriteError(w, req.ID, coded.RPCCode(), coded.Error(), nil)
			return
		}
		WriteError(w, req.ID, ErrInternal, err.Error(), nil)
		return
	}

	WriteResult(w, req.ID, result)
}

// Package rest provides the REST API to render profiles remotely.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/pgrigo01/nfs-profile/pkg/common"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	router *mux.Router
}

// Error is the type that is returned in case of an error.
type Error struct {
	Code       string                   `json:"code"`
	Message    string                   `json:"message"`
	Violations []common.ValidationError `json:"violations,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf takes a StatusCode, a ResponseWriter and a format string.
// It sets up the REST response and writes it to the ResponseWriter
// It also sets the according error code.
func Errorf(code int, w http.ResponseWriter, format string, a ...interface{}) error {
	return writeError(code, w, &Error{
		Code:    http.StatusText(code),
		Message: fmt.Sprintf(format, a...),
	})
}

// MustError is Errorf for handlers that have nothing left to do if writing
// the error fails.
func MustError(code int, w http.ResponseWriter, format string, a ...interface{}) {
	if err := Errorf(code, w, format, a...); err != nil {
		log.WithError(err).Warn("failed to write error response")
	}
}

// ValidationFailed reports every violation contained in err with status 400.
func ValidationFailed(w http.ResponseWriter, err error) {
	e := &Error{
		Code:       http.StatusText(http.StatusBadRequest),
		Message:    "invalid parameters",
		Violations: common.ValidationErrors(err),
	}
	if werr := writeError(http.StatusBadRequest, w, e); werr != nil {
		log.WithError(werr).Warn("failed to write error response")
	}
}

func writeError(code int, w http.ResponseWriter, e *Error) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(e)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

// NewHandler returns the API with CORS handling for the given origins.
func NewHandler(corsOrigins []string) http.Handler {
	s := &server{
		router: mux.NewRouter(),
	}

	s.routes()

	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(s.router)
}

// ListenAndServe is the entry point for the REST API. It returns once ctx
// is cancelled and all pending requests are done.
func ListenAndServe(ctx context.Context, addr string, corsOrigins []string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           NewHandler(corsOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.WithField("addr", l.Addr().String()).Info("serving REST API")

	sent, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.WithError(err).Warn("failed to notify systemd")
	} else if sent {
		log.Debug("notified systemd")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package rest

import (
	"net/http"

	"github.com/pgrigo01/nfs-profile/pkg/version"
)

// Status is returned by the status endpoint.
type Status struct {
	Status  string       `json:"status"`
	Version version.Info `json:"version"`
}

// APIStatus is used for checking whether the HTTP API is available
func (s *server) APIStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, Status{Status: "ok", Version: version.Current()})
	}
}

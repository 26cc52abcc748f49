package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/pgrigo01/nfs-profile/pkg/common"
	"github.com/pgrigo01/nfs-profile/pkg/params"
	"github.com/pgrigo01/nfs-profile/pkg/profile"
)

const maxBodySize = 1 << 20

// ProfileRender renders the request RSpec for the parameters in the
// request body. Parameters missing from the body keep their defaults.
func (s *server) ProfileRender() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := lookupProfile(w, r)
		if !ok {
			return
		}

		values := map[string]interface{}{}
		decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
		err := decoder.Decode(&values)
		if err != nil && !errors.Is(err, io.EOF) {
			MustError(http.StatusBadRequest, w, "failed to parse request body: %v", err)
			return
		}

		v := profile.Bind(p)
		if err := v.MergeConfigMap(values); err != nil {
			MustError(http.StatusBadRequest, w, "failed to apply parameters: %v", err)
			return
		}

		doc, err := profile.Render(p, v)
		switch {
		case err == nil:
		case common.IsValidationError(err):
			ValidationFailed(w, err)
			return
		case errors.Is(err, params.ErrDecode):
			MustError(http.StatusBadRequest, w, "%v", err)
			return
		default:
			log.WithError(err).WithField("profile", p.Name()).Error("failed to render request")
			MustError(http.StatusInternalServerError, w, "failed to render request: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(doc); err != nil {
			log.WithError(err).Warn("failed to write response")
		}
	}
}

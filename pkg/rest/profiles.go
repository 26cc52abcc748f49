package rest

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pgrigo01/nfs-profile/pkg/params"
	"github.com/pgrigo01/nfs-profile/pkg/profile"
)

// ProfileInfo describes a profile in the profile list.
type ProfileInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *server) ProfileList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := []ProfileInfo{}
		for _, p := range profile.All() {
			result = append(result, ProfileInfo{Name: p.Name(), Description: p.Description()})
		}

		writeJSON(w, result)
	}
}

func (s *server) ProfileParameters() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := lookupProfile(w, r)
		if !ok {
			return
		}

		defs := p.Parameters()
		if defs == nil {
			defs = []params.Definition{}
		}
		writeJSON(w, defs)
	}
}

// lookupProfile does the shared parsing for methods on .../profiles/{profile}
func lookupProfile(w http.ResponseWriter, r *http.Request) (profile.Profile, bool) {
	name := mux.Vars(r)["profile"]

	p, err := profile.Lookup(name)
	if errors.Is(err, profile.ErrUnknownProfile) {
		MustError(http.StatusNotFound, w, "no profile named '%s'", name)
		return nil, false
	}
	if err != nil {
		MustError(http.StatusInternalServerError, w, "failed to look up profile: %v", err)
		return nil, false
	}

	return p, true
}

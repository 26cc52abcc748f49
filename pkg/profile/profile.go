// Package profile keeps the list of profiles the tool can render.
package profile

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/pgrigo01/nfs-profile/pkg/cluster"
	"github.com/pgrigo01/nfs-profile/pkg/nfs"
	"github.com/pgrigo01/nfs-profile/pkg/params"
	"github.com/pgrigo01/nfs-profile/pkg/rspec"
)

// ErrUnknownProfile is returned by Lookup for names no profile has.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile turns a parameter set into a request.
type Profile interface {
	Name() string
	Description() string
	Parameters() []params.Definition
	// Build decodes the parameters bound in v, validates them and
	// constructs the request.
	Build(v *viper.Viper) (*rspec.Request, error)
}

var profiles = []Profile{
	nfs.Profile{},
	cluster.Profile{},
}

// All returns every known profile in a stable order.
func All() []Profile {
	return append([]Profile(nil), profiles...)
}

func Lookup(name string) (Profile, error) {
	for _, p := range profiles {
		if strings.EqualFold(p.Name(), name) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w '%s'", ErrUnknownProfile, name)
}

// Bind returns a fresh viper instance holding the defaults of p.
func Bind(p Profile) *viper.Viper {
	v := viper.New()
	params.Bind(v, p.Parameters())
	return v
}

// Render builds the request for the values bound in v and encodes it.
// Keys that p does not declare are logged and otherwise ignored.
func Render(p Profile, v *viper.Viper) ([]byte, error) {
	for _, k := range params.Unknown(v, p.Parameters()) {
		log.WithFields(log.Fields{"profile": p.Name(), "parameter": k}).Warn("ignoring unknown parameter")
	}

	req, err := p.Build(v)
	if err != nil {
		return nil, err
	}

	return req.Bytes()
}

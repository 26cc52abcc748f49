package client

import (
	"context"
	"net/url"

	"github.com/pgrigo01/nfs-profile/pkg/params"
	"github.com/pgrigo01/nfs-profile/pkg/rest"
)

type ProfileService struct {
	client *Client
}

func profilePath(name string, parts ...string) string {
	p := "/api/v1/profiles/" + url.PathEscape(name)
	for _, r := range parts {
		p += "/" + r
	}
	return p
}

func (s *ProfileService) List(ctx context.Context) ([]rest.ProfileInfo, error) {
	var infos []rest.ProfileInfo
	_, err := s.client.doGET(ctx, "/api/v1/profiles", &infos)
	return infos, err
}

func (s *ProfileService) Parameters(ctx context.Context, name string) ([]params.Definition, error) {
	var defs []params.Definition
	_, err := s.client.doGET(ctx, profilePath(name, "parameters"), &defs)
	return defs, err
}

// Render asks the server to render the request for the given parameter
// values. Parameters not in values keep their defaults. Validation errors
// are returned as *rest.Error carrying the violations.
func (s *ProfileService) Render(ctx context.Context, name string, values map[string]interface{}) ([]byte, error) {
	if values == nil {
		values = map[string]interface{}{}
	}

	var doc []byte
	_, err := s.client.doPOST(ctx, profilePath(name, "rspec"), values, &doc)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

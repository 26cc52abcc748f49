package client

import (
	"context"

	"github.com/pgrigo01/nfs-profile/pkg/rest"
)

type StatusService struct {
	client *Client
}

func (s *StatusService) Get(ctx context.Context) (*rest.Status, error) {
	var status rest.Status
	_, err := s.client.doGET(ctx, "/api/v1/status", &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

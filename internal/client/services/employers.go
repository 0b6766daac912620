package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
)

const employersPath = "/advertisers/admins"

type EmployerService interface {
	List(ctx context.Context, p listing.Params) (listing.Page[models.Employer], error)
	Get(ctx context.Context, id string) (models.Employer, error)
	ToggleStatus(ctx context.Context, id string) (bool, error)
}

type employerService struct {
	client *api.Client
	list   listing.FetchFunc[models.Employer]
}

func NewEmployerService(c *api.Client) EmployerService {
	return &employerService{client: c, list: pageFetch[models.Employer](c, employersPath)}
}

func (s *employerService) List(ctx context.Context, p listing.Params) (listing.Page[models.Employer], error) {
	return s.list(ctx, p)
}

func (s *employerService) Get(ctx context.Context, id string) (models.Employer, error) {
	if err := ValidateID("employer", id); err != nil {
		return models.Employer{}, err
	}
	return api.GetEnvelope[models.Employer](ctx, s.client, idPath("/advertisers/", id, ""), nil)
}

func (s *employerService) ToggleStatus(ctx context.Context, id string) (bool, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get employer: %w", err)
	}
	next := !e.Status
	if err := s.client.Patch(ctx, idPath("/advertisers/", id, ""), map[string]bool{"status": next}, nil); err != nil {
		return e.Status, fmt.Errorf("update employer status: %w", err)
	}
	return next, nil
}

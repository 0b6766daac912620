package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
)

const workersPath = "/users/admins"

// WorkerService manages worker accounts.
type WorkerService interface {
	List(ctx context.Context, p listing.Params) (listing.Page[models.Worker], error)
	Get(ctx context.Context, id string) (models.Worker, error)
	// ToggleStatus suspends an active worker or activates a suspended one
	// and returns the new status.
	ToggleStatus(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (models.WorkerStats, error)
}

type workerService struct {
	client *api.Client
	list   listing.FetchFunc[models.Worker]
}

func NewWorkerService(c *api.Client) WorkerService {
	return &workerService{client: c, list: pageFetch[models.Worker](c, workersPath)}
}

func (s *workerService) List(ctx context.Context, p listing.Params) (listing.Page[models.Worker], error) {
	return s.list(ctx, p)
}

func (s *workerService) Get(ctx context.Context, id string) (models.Worker, error) {
	if err := ValidateID("worker", id); err != nil {
		return models.Worker{}, err
	}
	return api.GetEnvelope[models.Worker](ctx, s.client, idPath("/users/", id, ""), nil)
}

func (s *workerService) ToggleStatus(ctx context.Context, id string) (bool, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get worker: %w", err)
	}
	next := !w.Status
	if err := s.client.Patch(ctx, idPath("/users/", id, ""), map[string]bool{"status": next}, nil); err != nil {
		return w.Status, fmt.Errorf("update worker status: %w", err)
	}
	return next, nil
}

func (s *workerService) Stats(ctx context.Context) (models.WorkerStats, error) {
	return api.GetEnvelope[models.WorkerStats](ctx, s.client, "/users/stats/admins", nil)
}

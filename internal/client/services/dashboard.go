package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	// Load fetches the stats and the activity feed concurrently; it fails
	// if either request fails.
	Load(ctx context.Context) (models.Dashboard, error)
}

type dashboardService struct {
	client *api.Client
}

func NewDashboardService(c *api.Client) DashboardService {
	return &dashboardService{client: c}
}

func (s *dashboardService) Load(ctx context.Context) (models.Dashboard, error) {
	var d models.Dashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := api.GetEnvelope[models.DashboardStats](gctx, s.client, "/dashboard/stats", nil)
		if err != nil {
			return fmt.Errorf("dashboard stats: %w", err)
		}
		d.Stats = stats
		return nil
	})
	g.Go(func() error {
		activity, err := api.GetEnvelope[[]models.Activity](gctx, s.client, "/dashboard/activity", nil)
		if err != nil {
			return fmt.Errorf("dashboard activity: %w", err)
		}
		d.Activity = activity
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.Dashboard{}, err
	}
	if d.Activity == nil {
		d.Activity = []models.Activity{}
	}
	return d, nil
}

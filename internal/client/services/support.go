package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
)

const ticketsPath = "/support/tickets/admins"

type TicketService interface {
	List(ctx context.Context, p listing.Params) (listing.Page[models.Ticket], error)
	Get(ctx context.Context, id string) (models.Ticket, error)
	Reply(ctx context.Context, id, message string) error
	SetStatus(ctx context.Context, id, status string) error
}

type ticketService struct {
	client *api.Client
	list   listing.FetchFunc[models.Ticket]
}

func NewTicketService(c *api.Client) TicketService {
	return &ticketService{client: c, list: pageFetch[models.Ticket](c, ticketsPath)}
}

func (s *ticketService) List(ctx context.Context, p listing.Params) (listing.Page[models.Ticket], error) {
	return s.list(ctx, p)
}

func (s *ticketService) Get(ctx context.Context, id string) (models.Ticket, error) {
	if err := ValidateID("ticket", id); err != nil {
		return models.Ticket{}, err
	}
	return api.GetEnvelope[models.Ticket](ctx, s.client, idPath("/support/tickets/", id, ""), nil)
}

func (s *ticketService) Reply(ctx context.Context, id, message string) error {
	if err := ValidateID("ticket", id); err != nil {
		return err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("%w: message is empty", common.ErrorValidation)
	}
	return s.client.Post(ctx, idPath("/support/tickets/", id, "/messages"), map[string]string{"message": message}, nil)
}

func (s *ticketService) SetStatus(ctx context.Context, id, status string) error {
	if err := ValidateID("ticket", id); err != nil {
		return err
	}
	if !slices.Contains(models.TicketStatuses, status) {
		return fmt.Errorf("%w: %w: ticket status %q", common.ErrorValidation, ErrInvalidStatus, status)
	}
	return s.client.Patch(ctx, idPath("/support/tickets/", id, ""), map[string]string{"status": status}, nil)
}

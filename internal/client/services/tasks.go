package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
)

const (
	tasksPath = "/tasks/admins"

	// TaskIDKey is the listing dependency carrying the parent task of a
	// submissions list.
	TaskIDKey = "taskId"
)

var (
	ErrInvalidStatus  = errors.New("invalid status")
	ErrReasonRequired = errors.New("a reason is required")
)

type TaskService interface {
	List(ctx context.Context, p listing.Params) (listing.Page[models.Task], error)
	Get(ctx context.Context, id string) (models.Task, error)
	SetStatus(ctx context.Context, id, status string) error
}

type taskService struct {
	client *api.Client
	list   listing.FetchFunc[models.Task]
}

func NewTaskService(c *api.Client) TaskService {
	return &taskService{client: c, list: pageFetch[models.Task](c, tasksPath)}
}

func (s *taskService) List(ctx context.Context, p listing.Params) (listing.Page[models.Task], error) {
	return s.list(ctx, p)
}

func (s *taskService) Get(ctx context.Context, id string) (models.Task, error) {
	if err := ValidateID("task", id); err != nil {
		return models.Task{}, err
	}
	return api.GetEnvelope[models.Task](ctx, s.client, idPath("/tasks/", id, ""), nil)
}

func (s *taskService) SetStatus(ctx context.Context, id, status string) error {
	if err := ValidateID("task", id); err != nil {
		return err
	}
	switch status {
	case models.TaskActive, models.TaskPaused, models.TaskCompleted:
	default:
		return fmt.Errorf("%w: %w: task status %q", common.ErrorValidation, ErrInvalidStatus, status)
	}
	return s.client.Patch(ctx, idPath("/tasks/", id, ""), map[string]string{"status": status}, nil)
}

// SubmissionService reviews the proofs workers submit for a task.
type SubmissionService interface {
	// List reads the task id from the TaskIDKey dependency.
	List(ctx context.Context, p listing.Params) (listing.Page[models.Submission], error)
	Get(ctx context.Context, id string) (models.Submission, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id, reason string) error
}

type submissionService struct {
	client *api.Client
}

func NewSubmissionService(c *api.Client) SubmissionService {
	return &submissionService{client: c}
}

// SubmissionsPath is the list endpoint of the submissions of one task.
func SubmissionsPath(taskID string) string {
	return idPath("/tasks/", taskID, "/submissions/admins")
}

func (s *submissionService) List(ctx context.Context, p listing.Params) (listing.Page[models.Submission], error) {
	taskID := p.Deps[TaskIDKey]
	if err := ValidateID("task", taskID); err != nil {
		return listing.Page[models.Submission]{}, err
	}
	return pageFetch[models.Submission](s.client, SubmissionsPath(taskID))(ctx, p)
}

func (s *submissionService) Get(ctx context.Context, id string) (models.Submission, error) {
	if err := ValidateID("submission", id); err != nil {
		return models.Submission{}, err
	}
	return api.GetEnvelope[models.Submission](ctx, s.client, idPath("/submissions/", id, ""), nil)
}

func (s *submissionService) Approve(ctx context.Context, id string) error {
	if err := ValidateID("submission", id); err != nil {
		return err
	}
	return s.client.Post(ctx, idPath("/submissions/", id, "/approve"), nil, nil)
}

func (s *submissionService) Reject(ctx context.Context, id, reason string) error {
	if err := ValidateID("submission", id); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: %w", common.ErrorValidation, ErrReasonRequired)
	}
	return s.client.Post(ctx, idPath("/submissions/", id, "/reject"), map[string]string{"reason": reason}, nil)
}

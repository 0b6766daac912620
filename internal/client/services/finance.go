package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hustleadmin/internal/client/api"
	"github.com/dmitrijs2005/hustleadmin/internal/client/listing"
	"github.com/dmitrijs2005/hustleadmin/internal/client/models"
	"github.com/dmitrijs2005/hustleadmin/internal/common"
)

const (
	withdrawalsPath = "/withdrawals/admins"
	kycPath         = "/users/kyc/submissions/admins"
)

// WithdrawalService approves or rejects payout requests.
type WithdrawalService interface {
	List(ctx context.Context, p listing.Params) (listing.Page[models.Withdrawal], error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id, reason string) error
}

type withdrawalService struct {
	client *api.Client
	list   listing.FetchFunc[models.Withdrawal]
}

func NewWithdrawalService(c *api.Client) WithdrawalService {
	return &withdrawalService{client: c, list: pageFetch[models.Withdrawal](c, withdrawalsPath)}
}

type withdrawalDecision struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (s *withdrawalService) List(ctx context.Context, p listing.Params) (listing.Page[models.Withdrawal], error) {
	return s.list(ctx, p)
}

func (s *withdrawalService) Approve(ctx context.Context, id string) error {
	return s.decide(ctx, id, withdrawalDecision{Status: models.WithdrawalApproved})
}

func (s *withdrawalService) Reject(ctx context.Context, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: %w", common.ErrorValidation, ErrReasonRequired)
	}
	return s.decide(ctx, id, withdrawalDecision{Status: models.WithdrawalRejected, Reason: reason})
}

func (s *withdrawalService) decide(ctx context.Context, id string, d withdrawalDecision) error {
	if err := ValidateID("withdrawal", id); err != nil {
		return err
	}
	return s.client.Patch(ctx, idPath("/withdrawals/", id, "/status"), d, nil)
}

// KYCService reviews identity verification submissions.
type KYCService interface {
	List(ctx context.Context, p listing.Params) (listing.Page[models.KYCSubmission], error)
	Approve(ctx context.Context, userID string) error
	// Reject requires a non-blank reason; it is checked before any request.
	Reject(ctx context.Context, userID, reason string) error
}

type kycService struct {
	client *api.Client
	list   listing.FetchFunc[models.KYCSubmission]
}

func NewKYCService(c *api.Client) KYCService {
	return &kycService{client: c, list: pageFetch[models.KYCSubmission](c, kycPath)}
}

type kycDecision struct {
	IsApproved      bool   `json:"is_approved"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

func (s *kycService) List(ctx context.Context, p listing.Params) (listing.Page[models.KYCSubmission], error) {
	return s.list(ctx, p)
}

func (s *kycService) Approve(ctx context.Context, userID string) error {
	return s.decide(ctx, userID, kycDecision{IsApproved: true})
}

func (s *kycService) Reject(ctx context.Context, userID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("%w: %w", common.ErrorValidation, ErrReasonRequired)
	}
	return s.decide(ctx, userID, kycDecision{RejectionReason: reason})
}

func (s *kycService) decide(ctx context.Context, userID string, d kycDecision) error {
	if err := ValidateID("user", userID); err != nil {
		return err
	}
	return s.client.Patch(ctx, idPath("/users/", userID, "/kyc/status/admins"), d, nil)
}

package models

import "fmt"

// Worker is a user who completes tasks. Status true means active.
type Worker struct {
	ID                 string  `json:"_id"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Username           string  `json:"username"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone,omitempty"`
	Country            string  `json:"country,omitempty"`
	Status             bool    `json:"status"`
	ApprovedTasksCount int     `json:"approved_tasks_count"`
	TotalEarnings      float64 `json:"total_earnings"`
	ReferralCode       string  `json:"my_referral_code,omitempty"`
	Date               string  `json:"date,omitempty"`
}

func (w Worker) FullName() string { return joinName(w.FirstName, w.LastName) }

func (Worker) TableHeader() []string {
	return []string{"ID", "Name", "Username", "Email", "Status", "Approved tasks", "Earnings", "Joined"}
}

func (w Worker) TableRow() []string {
	return []string{w.ID, w.FullName(), w.Username, w.Email, ActiveLabel(w.Status),
		fmt.Sprint(w.ApprovedTasksCount), Money(w.TotalEarnings), w.Date}
}

// WorkerStats are the counters shown above the worker list.
type WorkerStats struct {
	ActiveUsers    int `json:"active_users"`
	SuspendedUsers int `json:"suspended_users"`
}

// Employer is an advertiser publishing tasks. Status true means active.
type Employer struct {
	ID         string  `json:"_id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Name       string  `json:"name,omitempty"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Country    string  `json:"country,omitempty"`
	Status     bool    `json:"status"`
	Campaigns  int     `json:"campaigns"`
	TotalSpent float64 `json:"totalSpent"`
	Date       string  `json:"date,omitempty"`
}

// DisplayName prefers the company name over the contact person.
func (e Employer) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return joinName(e.FirstName, e.LastName)
}

func (Employer) TableHeader() []string {
	return []string{"ID", "Name", "Email", "Status", "Campaigns", "Spent", "Joined"}
}

func (e Employer) TableRow() []string {
	return []string{e.ID, e.DisplayName(), e.Email, ActiveLabel(e.Status),
		fmt.Sprint(e.Campaigns), Money(e.TotalSpent), e.Date}
}

// KYC states reported by the backend.
const (
	KYCSubmitted = "submitted"
	KYCApproved  = "approved"
	KYCRejected  = "rejected"
)

// KYC is the identity verification a user submitted.
type KYC struct {
	Status          string `json:"status"`
	DOB             string `json:"DOB,omitempty"`
	IDSource        string `json:"id_src,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// KYCSubmission is a user together with their KYC record. ID is the user id.
type KYCSubmission struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	KYC       KYC    `json:"kyc"`
}

// Pending reports whether the submission still awaits a decision.
func (k KYCSubmission) Pending() bool { return k.KYC.Status == KYCSubmitted }

func (KYCSubmission) TableHeader() []string {
	return []string{"User ID", "Name", "Email", "Date of birth", "Status"}
}

func (k KYCSubmission) TableRow() []string {
	status := k.KYC.Status
	if status == "" {
		status = "pending"
	}
	return []string{k.ID, joinName(k.FirstName, k.LastName), k.Email, orNA(k.KYC.DOB), status}
}

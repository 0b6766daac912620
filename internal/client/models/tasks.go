package models

import "fmt"

// Task states.
const (
	TaskActive    = "active"
	TaskPaused    = "paused"
	TaskCompleted = "completed"
)

type Task struct {
	ID           string  `json:"_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Advertiser   string  `json:"advertiser,omitempty"`
	Requirements string  `json:"requirements,omitempty"`
	Status       string  `json:"status"`
	Reward       float64 `json:"reward"`
	Submissions  int     `json:"submissions"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

func (Task) TableHeader() []string {
	return []string{"ID", "Title", "Employer", "Status", "Reward", "Submissions", "Created"}
}

func (t Task) TableRow() []string {
	return []string{t.ID, t.Title, t.Advertiser, t.Status, Money(t.Reward), fmt.Sprint(t.Submissions), t.CreatedAt}
}

// Submission states.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Submission is a worker's proof of a completed task.
type Submission struct {
	ID              string `json:"_id"`
	TaskID          string `json:"taskId,omitempty"`
	TaskTitle       string `json:"taskTitle,omitempty"`
	User            string `json:"user,omitempty"`
	Email           string `json:"email,omitempty"`
	Status          string `json:"status"`
	ProofText       string `json:"proofText,omitempty"`
	ProofImage      string `json:"proofImage,omitempty"`
	RejectionReason string `json:"reason,omitempty"`
	SubmittedAt     string `json:"submittedAt,omitempty"`
}

func (Submission) TableHeader() []string {
	return []string{"ID", "Worker", "Status", "Proof", "Submitted"}
}

func (s Submission) TableRow() []string {
	return []string{s.ID, s.User, s.Status, Truncate(s.ProofText, 40), s.SubmittedAt}
}

package models

// Withdrawal states.
const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// Withdrawal is a payout request of a worker.
type Withdrawal struct {
	ID            string  `json:"_id"`
	User          string  `json:"user"`
	Amount        float64 `json:"amount"`
	BankName      string  `json:"bankName"`
	AccountNumber string  `json:"accountNumber"`
	Status        string  `json:"status"`
	RequestDate   string  `json:"requestDate,omitempty"`
	ProcessedDate string  `json:"processedDate,omitempty"`
}

func (Withdrawal) TableHeader() []string {
	return []string{"ID", "Worker", "Amount", "Bank", "Account", "Status", "Requested", "Processed"}
}

func (w Withdrawal) TableRow() []string {
	return []string{w.ID, w.User, Money(w.Amount), w.BankName, w.AccountNumber, w.Status,
		w.RequestDate, orNA(w.ProcessedDate)}
}

// Ticket states.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// TicketStatuses lists the states a ticket can be moved to.
var TicketStatuses = []string{TicketOpen, TicketInProgress, TicketResolved, TicketClosed}

type TicketMessage struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Ticket is a support conversation opened by a user.
type Ticket struct {
	ID        string          `json:"_id"`
	Subject   string          `json:"subject"`
	User      string          `json:"user"`
	Priority  string          `json:"priority,omitempty"`
	Status    string          `json:"status"`
	Messages  []TicketMessage `json:"messages,omitempty"`
	CreatedAt string          `json:"createdAt,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

func (Ticket) TableHeader() []string {
	return []string{"ID", "Subject", "User", "Priority", "Status", "Updated"}
}

func (t Ticket) TableRow() []string {
	return []string{t.ID, Truncate(t.Subject, 40), t.User, orNA(t.Priority), t.Status, t.UpdatedAt}
}

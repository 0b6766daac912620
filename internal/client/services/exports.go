package services

// ExportSpec describes the CSV export of one list.
type ExportSpec struct {
	Endpoint string
	Columns  []string
	Filename string
}

var (
	WorkersExport = ExportSpec{
		Endpoint: workersPath,
		Columns:  []string{"first_name", "last_name", "username", "email", "status", "approved_tasks_count", "total_earnings", "date"},
		Filename: "workers.csv",
	}
	EmployersExport = ExportSpec{
		Endpoint: employersPath,
		Columns:  []string{"first_name", "last_name", "username", "email", "status", "campaigns", "totalSpent", "date"},
		Filename: "employers.csv",
	}
	TasksExport = ExportSpec{
		Endpoint: tasksPath,
		Columns:  []string{"title", "advertiser", "status", "reward", "submissions", "createdAt"},
		Filename: "tasks.csv",
	}
	WithdrawalsExport = ExportSpec{
		Endpoint: withdrawalsPath,
		Columns:  []string{"user", "amount", "bankName", "accountNumber", "status", "requestDate", "processedDate"},
		Filename: "withdrawals.csv",
	}
	KYCExport = ExportSpec{
		Endpoint: kycPath,
		Columns:  []string{"first_name", "last_name", "email", "kyc_status", "date"},
		Filename: "kyc.csv",
	}
	TicketsExport = ExportSpec{
		Endpoint: ticketsPath,
		Columns:  []string{"subject", "user", "priority", "status", "createdAt", "updatedAt"},
		Filename: "tickets.csv",
	}
)

// SubmissionsExport is the export of the submissions of one task.
func SubmissionsExport(taskID string) ExportSpec {
	return ExportSpec{
		Endpoint: SubmissionsPath(taskID),
		Columns:  []string{"user", "email", "status", "proofText", "submittedAt"},
		Filename: "submissions-" + taskID + ".csv",
	}
}

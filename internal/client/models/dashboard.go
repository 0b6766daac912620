package models

// DashboardStats are the headline counters of the dashboard.
type DashboardStats struct {
	TotalUsers       int     `json:"totalUsers"`
	TotalTasks       int     `json:"totalTasks"`
	PendingApprovals int     `json:"pendingApprovals"`
	TotalEarnings    float64 `json:"totalEarnings"`
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

type Dashboard struct {
	Stats    DashboardStats
	Activity []Activity
}

func (Activity) TableHeader() []string { return []string{"When", "Type", "Activity"} }

func (a Activity) TableRow() []string { return []string{a.CreatedAt, a.Type, a.Message} }

package dashboard

// EmployeeStats is the employee dashboard summary. TotalRemaining is the sum
// of per-category remaining days floored at zero; the per-category balance
// endpoint reports the unfloored values.
type EmployeeStats struct {
	Pending        int `json:"pending"`
	Approved       int `json:"approved"`
	Rejected       int `json:"rejected"`
	TotalLeaves    int `json:"total_leaves"`
	TotalRemaining int `json:"total_remaining"`
}

type ManagerStats struct {
	PendingCount      int64 `json:"pending_count"`
	TeamCount         int64 `json:"team_count"`
	ApprovedThisMonth int64 `json:"approved_this_month"`
}

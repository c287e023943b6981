package leave

import "time"

type LeaveType string

const (
	LeaveTypeCasual LeaveType = "casual"
	LeaveTypeSick   LeaveType = "sick"
	LeaveTypeEarned LeaveType = "earned"
	LeaveTypeWFH    LeaveType = "wfh" // not quota-bound
)

// QuotaBoundTypes lists the categories that draw down a yearly allowance, in
// the fixed order balance rows are reported.
var QuotaBoundTypes = []LeaveType{LeaveTypeCasual, LeaveTypeSick, LeaveTypeEarned}

// IsQuotaBound reports whether the leave type deducts from a yearly quota.
// WFH never does.
func (t LeaveType) IsQuotaBound() bool {
	return t == LeaveTypeCasual || t == LeaveTypeSick || t == LeaveTypeEarned
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest entity. Manager is captured once at creation from the
// employee's manager_email lookup and never re-resolved, so reassigning an
// employee's manager does not move their existing requests.
type LeaveRequest struct {
	ID          string
	RequestedBy string
	Manager     string

	LeaveType LeaveType
	StartDate time.Time
	EndDate   time.Time
	Reason    *string

	Status          LeaveRequestStatus
	ApprovedBy      *string
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relationships (for responses)
	EmployeeName  *string
	EmployeeEmail *string
}

// Days returns the inclusive calendar day count of the request.
func (r *LeaveRequest) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// BalanceRow is one derived balance line for a quota-bound category.
// Remaining is quota - used and deliberately not floored at zero here; only
// the dashboard's totalRemaining aggregate floors.
type BalanceRow struct {
	LeaveType   LeaveType `json:"leave_type"`
	YearlyQuota int       `json:"yearly_quota"`
	UsedDays    int       `json:"used_days"`
	Remaining   int       `json:"remaining"`
}

// EmployeeBalanceRow is a BalanceRow labelled with the employee it belongs
// to, for the manager's team-wide balance listing.
type EmployeeBalanceRow struct {
	EmployeeName string    `json:"employee_name"`
	LeaveType    LeaveType `json:"leave_type"`
	YearlyQuota  int       `json:"yearly_quota"`
	UsedDays     int       `json:"used_days"`
	Remaining    int       `json:"remaining"`
}

// Quotas carries a user's yearly allowance per quota-bound category.
type Quotas struct {
	Casual int
	Sick   int
	Earned int
}

// ForType returns the quota for a quota-bound category, zero otherwise.
func (q Quotas) ForType(t LeaveType) int {
	switch t {
	case LeaveTypeCasual:
		return q.Casual
	case LeaveTypeSick:
		return q.Sick
	case LeaveTypeEarned:
		return q.Earned
	}
	return 0
}

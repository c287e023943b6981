package leave

import (
	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
)

// BalanceCalculator derives per-category balances from approved requests.
// Balances are never stored; every read recomputes from scratch.
type BalanceCalculator struct {
}

func NewBalanceCalculator() *BalanceCalculator {
	return &BalanceCalculator{}
}

// Compute returns one row per quota-bound category (casual, sick, earned, in
// that order). Used days are inclusive calendar-day counts over the approved
// requests; WFH requests contribute nothing. Remaining = quota - used and may
// go negative: flooring is the stats aggregate's business, not this layer's.
func (c *BalanceCalculator) Compute(quotas leave.Quotas, approved []leave.LeaveRequest) []leave.BalanceRow {
	used := c.UsedDays(approved)

	rows := make([]leave.BalanceRow, 0, len(leave.QuotaBoundTypes))
	for _, t := range leave.QuotaBoundTypes {
		quota := quotas.ForType(t)
		rows = append(rows, leave.BalanceRow{
			LeaveType:   t,
			YearlyQuota: quota,
			UsedDays:    used[t],
			Remaining:   quota - used[t],
		})
	}

	return rows
}

// UsedDays accumulates inclusive day counts per quota-bound category.
func (c *BalanceCalculator) UsedDays(approved []leave.LeaveRequest) map[leave.LeaveType]int {
	used := make(map[leave.LeaveType]int, len(leave.QuotaBoundTypes))
	for _, req := range approved {
		if !req.LeaveType.IsQuotaBound() {
			continue
		}
		used[req.LeaveType] += req.Days()
	}
	return used
}

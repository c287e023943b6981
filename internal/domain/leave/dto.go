package leave

import (
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	// EmployeeID is taken from the verified token, never from the body.
	EmployeeID string  `json:"-"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Reason     *string `json:"reason,omitempty"`
}

var leaveTypeValues = []string{
	string(LeaveTypeCasual),
	string(LeaveTypeSick),
	string(LeaveTypeEarned),
	string(LeaveTypeWFH),
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !validator.IsInSlice(r.LeaveType, leaveTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of casual, sick, earned, wfh",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be on or after start_date",
		})
	}

	if startOK && start.Before(validator.Today()) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "cannot apply for past dates",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequestRequest struct {
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

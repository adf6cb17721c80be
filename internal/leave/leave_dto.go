package leave

import (
	"time"

	"hris-core/internal/shared/apperror"
)

type CreateLeaveRequest struct {
	// EmployeeID defaults to the caller when empty.
	EmployeeID string `json:"employee_id" binding:"omitempty,uuid"`
	LeaveType  string `json:"leave_type" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	Reason     string `json:"reason" binding:"max=500"`
}

type UpdateLeaveRequest struct {
	LeaveType string `json:"leave_type" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=500"`
}

type ListLeaveQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
	LeaveType  string `form:"leave_type"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	LeaveType       string  `json:"leave_type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	AppliedOn       string  `json:"applied_on"`
	CreatedBy       string  `json:"created_by"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type BalanceResponse struct {
	EmployeeID string    `json:"employee_id"`
	Year       int       `json:"year"`
	Balances   []Balance `json:"balances"`
}

// TransitionResult carries the request after a decision. Changed is false
// when the request already had the target status. Balances holds one entry
// per year the request touches and Balance points at the lowest of them.
// Violation is set when the resulting balance breaks an accounting invariant.
type TransitionResult struct {
	Leave     LeaveResponse                `json:"leave"`
	Changed   bool                         `json:"changed"`
	Balance   *Balance                     `json:"balance,omitempty"`
	Balances  []Balance                    `json:"balances,omitempty"`
	Violation *apperror.InvariantViolation `json:"invariant_violation,omitempty"`
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		EmployeeID:      l.EmployeeID.String(),
		LeaveType:       l.LeaveType,
		StartDate:       l.Start().String(),
		EndDate:         l.End().String(),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          string(l.Status),
		AppliedOn:       l.CreatedAt.UTC().Format(time.RFC3339),
		CreatedBy:       l.CreatedBy.String(),
		RejectionReason: l.RejectionReason,
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.FullName
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.UTC().Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	out := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		out[i] = mapToResponse(l)
	}
	return out
}

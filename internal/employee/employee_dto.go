package employee

type ListFilter struct {
	Department string
	Status     string
	Query      string
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Department  string `json:"department,omitempty"`
	JoiningDate string `json:"joining_date"`
	Status      string `json:"status"`
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID.String(),
		FullName:    e.FullName,
		Email:       e.Email,
		Department:  e.DepartmentName(),
		JoiningDate: e.JoiningDate.Format("2006-01-02"),
		Status:      string(e.Status),
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, 0, len(emps))
	for _, e := range emps {
		resp = append(resp, mapToResponse(e))
	}
	return resp
}

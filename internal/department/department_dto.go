package department

type DepartmentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Headcount int64  `json:"headcount"`
}

func mapToResponse(s Summary) DepartmentResponse {
	return DepartmentResponse{
		ID:        s.ID.String(),
		Name:      s.Name,
		Headcount: s.Headcount,
	}
}

func mapToListResponse(rows []Summary) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, mapToResponse(r))
	}
	return out
}

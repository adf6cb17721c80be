package domain

// EnforceRequest asks whether a role may perform action on resource.
// It lives outside the rbac package so middleware can depend on it without
// importing the rbac handlers.
type EnforceRequest struct {
	Role     string `json:"role"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
	ReadAll bool `json:"read_all"`
}

type PolicyResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

package rbac

import "hris-core/internal/domain"

type EnforceRequest = domain.EnforceRequest

type EnforceResponse = domain.EnforceResponse

type PolicyResponse = domain.PolicyResponse

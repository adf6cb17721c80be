package rbac

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy(ctx context.Context) error
	Enforce(req EnforceRequest) (bool, error)
	Policies() []PolicyResponse
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	rules    []RolePermission
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

// LoadPolicy replaces the enforcer's policy with the rows in role_permissions,
// or DefaultPolicies when the table is empty.
func (s *service) LoadPolicy(ctx context.Context) error {
	rows, err := s.repo.ListRolePermissions(ctx)
	if err != nil {
		return fmt.Errorf("load role permissions: %w", err)
	}
	if len(rows) == 0 {
		s.logger.Warn("role_permissions is empty, using built-in policy")
		rows = DefaultPolicies()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, rp := range rows {
		if _, err := s.enforcer.AddPolicy(normalizeRole(rp.Role), rp.Resource, rp.Action); err != nil {
			return fmt.Errorf("add policy %s %s:%s: %w", rp.Role, rp.Resource, rp.Action, err)
		}
	}
	s.rules = rows

	s.logger.Info("rbac policy loaded", zap.Int("rules", len(rows)))
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	role := normalizeRole(req.Role)
	if role == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) Policies() []PolicyResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PolicyResponse, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, PolicyResponse{Role: normalizeRole(r.Role), Resource: r.Resource, Action: r.Action})
	}
	return out
}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}

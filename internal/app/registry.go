package app

import (
	"context"

	"hris-core/internal/analytics"
	"hris-core/internal/attendance"
	"hris-core/internal/department"
	"hris-core/internal/employee"
	"hris-core/internal/holiday"
	"hris-core/internal/leave"
	"hris-core/internal/messaging/kafka"
	"hris-core/internal/rbac"
	"hris-core/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// services is the domain graph shared by every process. The attendance
// loader reads approved leave through the leave service, and analytics reads
// through the same loader and resolver the attendance endpoints use.
type services struct {
	outbox     kafka.OutboxRepository
	employee   employee.Service
	department department.Service
	holiday    holiday.Service
	leave      leave.Service
	attendance attendance.Service
	analytics  analytics.Service
}

func buildServices(i *Infra) (*services, error) {
	cfg := i.Config
	logger := i.Logger

	catalog, err := leave.CatalogFromConfig(cfg.Leave)
	if err != nil {
		return nil, err
	}

	outboxRepo := kafka.NewOutboxRepository(i.DB)
	employeeRepo := employee.NewRepository(i.GormDB)
	holidayRepo := holiday.NewRepository(i.GormDB)
	leaveRepo := leave.NewRepository(i.GormDB)
	attendanceRepo := attendance.NewRepository(i.GormDB)

	leaveService := leave.NewServiceWithOutbox(i.DB, leaveRepo, catalog, i.Calendar, outboxRepo, cfg.Kafka.LeaveTopic, i.Audit, logger)

	resolver := attendance.NewResolver(i.Calendar, decimal.NewFromFloat(cfg.Calendar.FullDayHours), logger)
	loader := attendance.NewLoader(attendanceRepo, holidayRepo, leaveService)

	return &services{
		outbox:     outboxRepo,
		employee:   employee.NewService(employeeRepo, i.Redis, cfg.Redis.CacheTTL, logger),
		department: department.NewService(department.NewRepository(i.GormDB), i.Redis, cfg.Redis.CacheTTL, logger),
		holiday:    holiday.NewService(holidayRepo, logger),
		leave:      leaveService,
		attendance: attendance.NewServiceWithOutbox(i.DB, attendanceRepo, loader, resolver, employeeRepo, outboxRepo, cfg.Kafka.AttendanceTopic, logger),
		analytics:  analytics.NewService(loader, resolver, employeeRepo, i.Redis, cfg.Redis.CacheTTL, logger),
	}, nil
}

func registerModules(router *gin.Engine, i *Infra) error {
	logger := i.Logger

	svc, err := buildServices(i)
	if err != nil {
		return err
	}

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewRepository(i.GormDB), enforcer, logger)
	if err := rbacService.LoadPolicy(context.Background()); err != nil {
		return err
	}

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(svc.attendance, i.Calendar, logger)
	employeeHandler := employee.NewHandler(svc.employee, logger)
	departmentHandler := department.NewHandler(svc.department, logger)
	holidayHandler := holiday.NewHandler(svc.holiday)
	leaveHandler := leave.NewHandler(svc.leave, logger)
	analyticsHandler := analytics.NewHandler(svc.analytics, i.Calendar, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, i.Redis, logger)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		department.RegisterRoutes(api, departmentHandler, rbacService, logger)
		holiday.RegisterRoutes(api, holidayHandler)
		leave.RegisterRoutes(api, leaveHandler, rbacService, i.Redis, logger)
		analytics.RegisterRoutes(api, analyticsHandler, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, logger)
	}

	return nil
}

package app

import (
	"go-ems/internal/assignment"
	"go-ems/internal/audit"
	"go-ems/internal/auth"
	"go-ems/internal/auth/token"
	"go-ems/internal/division"
	"go-ems/internal/employee"
	"go-ems/internal/jobtitle"
	"go-ems/internal/location"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/middleware"
	"go-ems/internal/payroll"
	"go-ems/internal/rbac"
	"go-ems/internal/report"
	"go-ems/internal/salary"
	"go-ems/internal/shared/config"
	"go-ems/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	rbac  rbac.Service
	audit audit.Service
}

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
) (*modules, error) {
	logger := zap.L()

	// --- RBAC Core ---
	rbacService, err := rbac.NewDefaultService()
	if err != nil {
		return nil, err
	}
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// --- Repositories ---
	assignmentRepo := assignment.NewRepository(db)
	auditRepo := audit.NewRepository(db)
	authRepo := auth.NewRepository(db)
	divisionRepo := division.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	jobTitleRepo := jobtitle.NewRepository(db)
	locationRepo := location.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(db)
	reportRepo := report.NewRepository(db)
	salaryRepo := salary.NewRepository(db)
	userRepo := user.NewRepository(db)

	// --- Services ---
	assignmentService := assignment.NewService(db, assignmentRepo, outboxRepo, rbacService, logger)
	auditService := audit.NewService(auditRepo, rbacService, logger)
	authService := auth.NewService(authRepo, issuer, logger)
	divisionService := division.NewService(db, divisionRepo, assignmentRepo, rbacService, rdb, logger)
	employeeService := employee.NewService(db, employeeRepo, assignmentRepo, outboxRepo, rbacService, logger)
	jobTitleService := jobtitle.NewService(db, jobTitleRepo, assignmentRepo, rbacService, rdb, logger)
	locationService := location.NewService(locationRepo, rbacService, logger)
	payrollService := payroll.NewService(db, payrollRepo, outboxRepo, rbacService, logger)
	reportService := report.NewService(reportRepo, rbacService, logger)
	salaryService := salary.NewService(db, salaryRepo, outboxRepo, rbacService,
		salary.Options{AllowNonPositive: cfg.SalaryAllowNonPositive}, logger)
	userService := user.NewService(db, userRepo, outboxRepo, rbacService, logger)

	// --- Handlers ---
	assignmentHandler := assignment.NewHandler(assignmentService, logger)
	auditHandler := audit.NewHandler(auditService, logger)
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), logger)
	divisionHandler := division.NewHandler(divisionService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	jobTitleHandler := jobtitle.NewHandler(jobTitleService, logger)
	locationHandler := location.NewHandler(locationService, logger)
	payrollHandler := payroll.NewHandler(payrollService, rdb, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	reportHandler := report.NewHandler(reportService, report.NewExporter(), logger)
	salaryHandler := salary.NewHandler(salaryService, rdb, logger)
	userHandler := user.NewHandler(userService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	public := api.Group("", middleware.ContextLogger(logger))
	protected := api.Group("",
		middleware.AuthMiddleware(issuer),
		middleware.ContextLogger(logger),
	)
	{
		auth.RegisterRoutes(public, protected, authHandler)
		assignment.RegisterRoutes(protected, assignmentHandler, rbacService)
		audit.RegisterRoutes(protected, auditHandler, rbacService)
		division.RegisterRoutes(protected, divisionHandler, rbacService)
		employee.RegisterRoutes(protected, employeeHandler, rbacService)
		jobtitle.RegisterRoutes(protected, jobTitleHandler, rbacService)
		location.RegisterRoutes(protected, locationHandler, rbacService)
		payroll.RegisterRoutes(protected, payrollHandler, rbacService)
		rbac.RegisterRoutes(protected, rbacHandler)
		report.RegisterRoutes(protected, reportHandler, rbacService)
		salary.RegisterRoutes(protected, salaryHandler, rbacService)
		user.RegisterRoutes(protected, userHandler, rbacService)
	}

	return &modules{rbac: rbacService, audit: auditService}, nil
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/worklock/worklock/internal/api/handler"
	"github.com/worklock/worklock/internal/api/middleware"
	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

// Dependencies carries everything the router needs; main wires the concrete
// implementations.
type Dependencies struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	Auth       ports.AuthService
	Challenges ports.ChallengeService
	Attendance ports.AttendanceService
	Escrow     ports.EscrowService
	Comments   ports.CommentService
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("worklock"))

	authMiddleware := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	employeeOnly := middleware.RBAC(domain.RoleEmployee)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleEmployee)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	challengeHandler := handler.NewChallengeHandler(deps.Challenges)
	attendanceHandler := handler.NewAttendanceHandler(deps.Attendance)
	escrowHandler := handler.NewEscrowHandler(deps.Escrow)
	commentHandler := handler.NewCommentHandler(deps.Comments)
	rosterHandler := handler.NewRosterHandler(deps.Auth, deps.Attendance)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Challenge routes (public: kiosk displays poll these unauthenticated) ---
	e.GET("/challenge", challengeHandler.Current)
	e.GET("/challenge/qr", challengeHandler.QR)

	// --- Attendance and escrow (authenticated) ---
	v1 := e.Group("/v1", authMiddleware)

	attendance := v1.Group("/attendance")
	attendance.POST("/check-in", attendanceHandler.CheckIn, employeeOnly)
	attendance.POST("/check-out", attendanceHandler.CheckOut, employeeOnly)
	attendance.GET("/history", attendanceHandler.History, employeeOnly)

	escrow := v1.Group("/escrow")
	escrow.GET("", escrowHandler.Status, anyRole)
	escrow.POST("", escrowHandler.Create, adminOnly)
	escrow.POST("/fund", escrowHandler.Fund, adminOnly)
	escrow.POST("/claim", escrowHandler.Claim, employeeOnly)
	escrow.POST("/hours", escrowHandler.AddHours, adminOnly)
	escrow.POST("/dispute", escrowHandler.Dispute, anyRole)
	escrow.POST("/resolve", escrowHandler.Resolve, anyRole)

	v1.POST("/comments", commentHandler.Post, employeeOnly)

	// --- Admin console ---
	admin := e.Group("/admin", authMiddleware, adminOnly)
	admin.GET("/comments", commentHandler.List)
	admin.GET("/employees", rosterHandler.Employees)
	admin.GET("/attendance", rosterHandler.Attendance)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?

	return e
}

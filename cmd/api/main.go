package main

import (
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"schoolrecords/internal/config"
	"schoolrecords/internal/database"
	"schoolrecords/internal/middleware"
	"schoolrecords/internal/modules/absences"
	"schoolrecords/internal/modules/auth"
	"schoolrecords/internal/modules/classes"
	"schoolrecords/internal/modules/events"
	"schoolrecords/internal/modules/grades"
	"schoolrecords/internal/modules/monitoring"
	"schoolrecords/internal/modules/reports"
	"schoolrecords/internal/modules/stats"
	"schoolrecords/internal/modules/subjects"
	"schoolrecords/internal/modules/users"
	"schoolrecords/internal/pkg/metrics"
	"schoolrecords/internal/repository"

	jwtsvc "schoolrecords/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	absenceRepo := repository.NewAbsenceRepository(db)
	eventRepo := repository.NewEventRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Services
	jwtService := jwtsvc.New(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	authService := auth.NewService(userRepo, tokenRepo, jwtService, cfg.RefreshTTL)
	userService := users.NewService(userRepo)
	classService := classes.NewService(classRepo, userRepo)
	subjectService := subjects.NewService(subjectRepo, classRepo)
	gradeService := grades.NewService(gradeRepo, userRepo, subjectRepo)
	absenceService := absences.NewService(absenceRepo, userRepo, subjectRepo, gradeRepo)
	eventService := events.NewService(eventRepo)
	statsService := stats.NewService(statsRepo, classRepo, subjectRepo, gradeRepo)
	reportService := reports.NewService(userRepo, gradeRepo, absenceRepo, statsRepo)

	metricsStore := metrics.NewStore()
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorLogger())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RequestMetrics(metricsStore))

	monitoring.NewHandler(db, metricsStore).RegisterRoutes(router)

	v1 := router.Group("/api/v1")

	authHandler := auth.NewHandler(authService)
	authHandler.RegisterPublicRoutes(v1, loginLimiter.Middleware())

	protected := v1.Group("/")
	protected.Use(middleware.Auth(jwtService))

	authHandler.RegisterProtectedRoutes(protected)
	users.NewHandler(userService).RegisterRoutes(protected)
	classes.NewHandler(classService).RegisterRoutes(protected)
	subjects.NewHandler(subjectService).RegisterRoutes(protected)
	grades.NewHandler(gradeService).RegisterRoutes(protected)
	absences.NewHandler(absenceService).RegisterRoutes(protected)
	events.NewHandler(eventService).RegisterRoutes(protected)
	stats.NewHandler(statsService).RegisterRoutes(protected)
	reports.NewHandler(reportService).RegisterRoutes(protected)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("server: %v", err)
	}
}

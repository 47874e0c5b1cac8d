package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/traincamp/bootcamp-directory/internal/api/handler"
	"github.com/traincamp/bootcamp-directory/internal/api/middleware"
	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
	"github.com/traincamp/bootcamp-directory/internal/core/service"
	mongodb "github.com/traincamp/bootcamp-directory/internal/infrastructure/db/mongo"
	redisdb "github.com/traincamp/bootcamp-directory/internal/infrastructure/db/redis"
	"github.com/traincamp/bootcamp-directory/internal/pkg/config"
)

// Deps bundles the external collaborators the router needs; repositories and
// services are constructed here.
type Deps struct {
	Mongo      *mongo.Database
	Redis      *goredis.Client
	Geocoder   ports.Geocoder
	MailQueue  ports.MailQueue
	PhotoStore ports.PhotoStore
	Config     *config.Config
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	bootcampRepo := mongodb.NewBootcampRepository(d.Mongo)
	courseRepo := mongodb.NewCourseRepository(d.Mongo)
	reviewRepo := mongodb.NewReviewRepository(d.Mongo)
	userRepo := mongodb.NewUserRepository(d.Mongo)
	denylist := redisdb.NewTokenDenylist(d.Redis)

	// --- Services ---
	bootcampService := service.NewBootcampService(
		bootcampRepo, courseRepo, reviewRepo,
		d.Geocoder, d.PhotoStore, d.Config.Upload.MaxFileBytes, d.Logger,
	)
	courseService := service.NewCourseService(courseRepo, bootcampRepo, d.Logger)
	reviewService := service.NewReviewService(reviewRepo, bootcampRepo, d.Logger)
	userService := service.NewUserService(userRepo, d.Logger)
	authService := service.NewAuthService(
		userRepo, denylist, d.MailQueue,
		d.Config.JWT.Secret, d.Config.JWT.TTL, d.Config.Mail.ResetURL, d.Logger,
	)

	// --- Handlers ---
	cookie := handler.CookieSettings{TTL: d.Config.JWT.TTL, Secure: d.Config.JWT.CookieSecure}
	bootcampHandler := handler.NewBootcampHandler(bootcampService)
	courseHandler := handler.NewCourseHandler(courseService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService, cookie)

	auth := middleware.Auth(d.Config.JWT.Secret, userRepo, denylist)
	publisherOnly := middleware.RBAC(domain.RolePublisher, domain.RoleAdmin)
	reviewerOnly := middleware.RBAC(domain.RoleUser, domain.RoleAdmin)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/api/v1")

	// --- Bootcamps ---
	bootcamps := v1.Group("/bootcamps")
	bootcamps.GET("", bootcampHandler.List)
	bootcamps.POST("", bootcampHandler.Create, auth, publisherOnly)
	bootcamps.GET("/radius/:zipcode/:distance", bootcampHandler.WithinRadius)
	bootcamps.GET("/:id", bootcampHandler.Get)
	bootcamps.PUT("/:id", bootcampHandler.Update, auth, publisherOnly)
	bootcamps.DELETE("/:id", bootcampHandler.Delete, auth, publisherOnly)
	bootcamps.PUT("/:id/photo", bootcampHandler.UploadPhoto, auth, publisherOnly)

	// Nested child collections.
	bootcamps.GET("/:bootcampId/courses", courseHandler.ListByBootcamp)
	bootcamps.POST("/:bootcampId/courses", courseHandler.Create, auth, publisherOnly)
	bootcamps.GET("/:bootcampId/reviews", reviewHandler.ListByBootcamp)
	bootcamps.POST("/:bootcampId/reviews", reviewHandler.Create, auth, reviewerOnly)

	// --- Courses ---
	courses := v1.Group("/courses")
	courses.GET("", courseHandler.List)
	courses.GET("/:id", courseHandler.Get)
	courses.PUT("/:id", courseHandler.Update, auth, publisherOnly)
	courses.DELETE("/:id", courseHandler.Delete, auth, publisherOnly)

	// --- Reviews ---
	reviews := v1.Group("/reviews")
	reviews.GET("", reviewHandler.List)
	reviews.GET("/:id", reviewHandler.Get)
	reviews.PUT("/:id", reviewHandler.Update, auth, reviewerOnly)
	reviews.DELETE("/:id", reviewHandler.Delete, auth, reviewerOnly)

	// --- Users (admin only) ---
	users := v1.Group("/users", auth, adminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Auth ---
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.Me, auth)
	authGroup.GET("/logout", authHandler.Logout, auth)
	authGroup.POST("/forgotpassword", authHandler.ForgotPassword)
	authGroup.PUT("/resetpassword/:resettoken", authHandler.ResetPassword)
	authGroup.PUT("/updatepassword", authHandler.UpdatePassword, auth)
	authGroup.PUT("/updatedetails", authHandler.UpdateDetails, auth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
	accHttp "github.com/dipika-maharjan/tripwise-backend/internal/accommodation/http"
	"github.com/dipika-maharjan/tripwise-backend/internal/auth"
	"github.com/dipika-maharjan/tripwise-backend/internal/booking"
	bookingHttp "github.com/dipika-maharjan/tripwise-backend/internal/booking/http"
	"github.com/dipika-maharjan/tripwise-backend/internal/extra"
	extraHttp "github.com/dipika-maharjan/tripwise-backend/internal/extra/http"
	"github.com/dipika-maharjan/tripwise-backend/internal/payment"
	paymentHttp "github.com/dipika-maharjan/tripwise-backend/internal/payment/http"
	"github.com/dipika-maharjan/tripwise-backend/internal/review"
	reviewHttp "github.com/dipika-maharjan/tripwise-backend/internal/review/http"
	"github.com/dipika-maharjan/tripwise-backend/internal/roomtype"
	rtHttp "github.com/dipika-maharjan/tripwise-backend/internal/roomtype/http"
	"github.com/dipika-maharjan/tripwise-backend/internal/user"
	userHttp "github.com/dipika-maharjan/tripwise-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	UserService    user.Service
	AccService     accommodation.Service
	RTService      roomtype.Service
	ExtraService   extra.Service
	BookingService booking.Service
	ReviewService  review.Service
	PaymentService payment.Service
	JWTManager     *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Request logging: gin's console logger in dev, structured zap logging in production.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	if cfg.IsProduction {
		r.Use(RequestLogger(), gin.Recovery())
	} else {
		r.Use(gin.Logger(), gin.Recovery())
	}

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// sysAdminMiddleware: Further checks if the token carries System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	accHandler := accHttp.NewHandler(cfg.AccService)
	rtHandler := rtHttp.NewHandler(cfg.RTService)
	extraHandler := extraHttp.NewHandler(cfg.ExtraService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		accHttp.RegisterRoutes(v1, accHandler, authMiddleware)
		rtHttp.RegisterRoutes(v1, rtHandler, authMiddleware)
		extraHttp.RegisterRoutes(v1, extraHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, sysAdminMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler, authMiddleware)
	}

	return r
}

package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dipika-maharjan/tripwise-backend/internal/accommodation"
	"github.com/dipika-maharjan/tripwise-backend/internal/api"
	"github.com/dipika-maharjan/tripwise-backend/internal/auth"
	"github.com/dipika-maharjan/tripwise-backend/internal/booking"
	"github.com/dipika-maharjan/tripwise-backend/internal/config"
	"github.com/dipika-maharjan/tripwise-backend/internal/extra"
	"github.com/dipika-maharjan/tripwise-backend/internal/payment"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/lock"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/storage"
	"github.com/dipika-maharjan/tripwise-backend/internal/review"
	"github.com/dipika-maharjan/tripwise-backend/internal/roomtype"
	"github.com/dipika-maharjan/tripwise-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	TaxPercent   float64
	ServiceFee   float64
	LockBackend  string
	RedisAddr    string
	LockTTL      time.Duration
	StoragePath  string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router      *gin.Engine
	JWTManager  *auth.JWTManager
	RedisClient *redis.Client
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage failed: %w", err)
	}

	// Admission lock provider: in-process by default, Redis when the
	// deployment runs more than one instance.
	var redisClient *redis.Client
	var locks lock.Provider
	switch cfg.LockBackend {
	case config.LockBackendRedis:
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		locks = lock.NewRedisProvider(redisClient, cfg.LockTTL)
	default:
		locks = lock.NewMemoryProvider()
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Accommodation Module
	accRepo := accommodation.NewPgxRepository(cfg.DBPool)
	accService := accommodation.NewService(accRepo, store)

	// RoomType Module
	rtRepo := roomtype.NewPgxRepository(cfg.DBPool)
	rtService := roomtype.NewService(rtRepo, accService)

	// Extra Module
	extraRepo := extra.NewPgxRepository(cfg.DBPool)
	extraService := extra.NewService(extraRepo, accService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, accService, rtService, extraService, locks, cfg.TaxPercent, cfg.ServiceFee)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, accService)

	// Payment Module
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)
	paymentService := payment.NewService(paymentRepo, bookingService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		AccService:     accService,
		RTService:      rtService,
		ExtraService:   extraService,
		BookingService: bookingService,
		ReviewService:  reviewService,
		PaymentService: paymentService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:      router,
		JWTManager:  jwtManager,
		RedisClient: redisClient,
	}, nil
}

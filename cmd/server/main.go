package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"gamehub/backend/internal/auth"
	"gamehub/backend/internal/catalog"
	"gamehub/backend/internal/config"
	"gamehub/backend/internal/database"
	"gamehub/backend/internal/discussion"
	"gamehub/backend/internal/handler"
	"gamehub/backend/internal/hub"
	"gamehub/backend/internal/requests"
	"gamehub/backend/internal/stats"
	"gamehub/backend/internal/store"
	"gamehub/backend/internal/upload"
	"gamehub/backend/internal/users"
	"gamehub/backend/pkg/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "gamehub/backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           GameHub API
// @version         1.0
// @description     Community game catalog: games, comments, ratings, favorites, requests and discussion threads.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.StorageDriver, err)
	}

	revoked, closeRevoked, err := openDenylist(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer closeRevoked()

	sessions := auth.NewSessions(jwt.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), revoked)
	events := hub.New()
	h := &handler.Handler{
		Sessions:    sessions,
		Users:       users.NewService(st, sessions),
		Catalog:     catalog.NewService(st),
		Requests:    requests.NewService(st),
		Discussion:  discussion.NewService(st, events),
		Stats:       stats.NewService(st),
		Images:      upload.NewImages(cfg.UploadDir, cfg.MaxUploadBytes),
		Events:      events,
		AuthLimiter: handler.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst),
	}

	created, err := h.Users.SeedAdmin(ctx, cfg.SeedAdminUsername, cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if created {
		log.Printf("Seeded admin user %q", cfg.SeedAdminUsername)
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.ExposeHeaders = []string{auth.SessionStatusHeader}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.Static(upload.URLPrefix, cfg.UploadDir)

	h.RegisterRoutes(router.Group("/api"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
	}()

	fmt.Printf("Server is running on :%s (storage: %s)\n", cfg.Port, cfg.StorageDriver)
	fmt.Printf("Swagger UI is available at http://localhost:%s/swagger/index.html\n", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	if cfg.StorageDriver == config.StoragePostgres {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return database.NewStore(db), nil
	}
	return store.NewFile(cfg.DataDir)
}

// openDenylist uses redis when REDIS_URL is set, so logouts survive restarts and
// are shared between instances. Otherwise revocations live in memory.
func openDenylist(ctx context.Context, cfg *config.Config) (auth.Denylist, func(), error) {
	if cfg.RedisURL == "" {
		return auth.NewMemoryDenylist(), func() {}, nil
	}
	d, err := auth.NewRedisDenylist(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Println("Token revocations stored in redis")
	return d, func() { d.Close() }, nil
}

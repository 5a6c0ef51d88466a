package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/busbooking/api"
	"github.com/Domenick1991/busbooking/config"
	"github.com/Domenick1991/busbooking/internal/service/booking"
	"github.com/Domenick1991/busbooking/internal/service/inventory"
	"github.com/Domenick1991/busbooking/internal/service/prediction"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const swaggerDocPath = "/docs/swagger.json"

// Services are the use cases the HTTP API exposes.
type Services struct {
	Seats       inventory.SeatUseCase
	Meals       api.MealLister
	Bookings    booking.BookingUseCase
	Predictions prediction.PredictionUseCase
	// Gatherer backs /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
	// Health backs /healthz; Run fills it from its own gRPC listener.
	Health healthpb.HealthClient
}

// Run starts the gRPC (health, reflection) and HTTP servers and blocks
// until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services, logger *zap.Logger) error {
	grpcSrv, healthSrv := NewGRPCServer()
	errCh := make(chan error, 2)

	// gRPC server
	if cfg.GRPC.Address != "" {
		lis, err := net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
		go func() {
			logger.Info("grpc server listening", zap.String("address", lis.Addr().String()))
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("serve gRPC: %w", err)
			}
		}()

		conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			grpcSrv.Stop()
			return fmt.Errorf("dial gRPC health: %w", err)
		}
		defer conn.Close()
		svc.Health = healthpb.NewHealthClient(conn)
	}

	// HTTP API + swagger + healthz gateway
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg.HTTP, svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen http %s: %w", cfg.HTTP.Address, err)
		}
	}()

	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	select {
	case err := <-errCh:
		healthSrv.Shutdown()
		grpcSrv.Stop()
		_ = srv.Close()
		return err
	case <-ctx.Done():
		healthSrv.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		grpcSrv.GracefulStop()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Info("servers stopped")
		return nil
	}
}

func NewRouter(cfg config.HTTPConfig, svc Services, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	root := router.Group("/")
	root.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Bus Booking API is running"})
	})

	api.NewSeatHandler(svc.Seats).Register(root)
	api.NewMealHandler(svc.Meals).Register(root)
	api.NewBookingHandler(svc.Bookings).Register(root)
	api.NewPredictionHandler(svc.Predictions).Register(root)

	if svc.Health != nil {
		root.GET("/healthz", gin.WrapH(NewHealthGateway(svc.Health)))
	}

	if svc.Gatherer != nil {
		root.GET("/metrics", gin.WrapH(promhttp.HandlerFor(svc.Gatherer, promhttp.HandlerOpts{})))
	}

	if cfg.SwaggerFile != "" {
		root.StaticFile(swaggerDocPath, cfg.SwaggerFile)
		root.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(swaggerDocPath))))
	}

	if cfg.StaticDir != "" {
		router.NoRoute(gin.WrapH(http.FileServer(http.Dir(cfg.StaticDir))))
	}

	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

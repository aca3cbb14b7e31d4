package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/club_membership/internal/adapter/handler"
	"github.com/srgjo27/club_membership/internal/adapter/repository/postgres"
	"github.com/srgjo27/club_membership/internal/core/domain"
	"github.com/srgjo27/club_membership/internal/core/ports"
	"github.com/srgjo27/club_membership/internal/core/services"
	"github.com/srgjo27/club_membership/internal/platform/config"
	"github.com/srgjo27/club_membership/internal/platform/database"
	"github.com/srgjo27/club_membership/internal/platform/mq"
	"github.com/srgjo27/club_membership/internal/platform/rooms"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
	})
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	log.Printf("Connecting to Redis at %s:%s...", cfg.RedisHost, cfg.RedisPort)

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	var pub ports.EventPublisher
	if cfg.AMQPURL != "" {
		p, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer p.Close()
		pub = p
	} else {
		log.Println("AMQP_URL not set, events disabled.")
	}

	inventory, err := rooms.Load(cfg.RoomsFile)
	if err != nil {
		log.Fatalf("Failed to load room inventory: %v", err)
	}

	membershipRepo := postgres.NewMembershipRepository(db)
	ledgerRepo := postgres.NewLedgerRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)

	if err := serviceRepo.EnsureDefaults(context.Background(), domain.DefaultServices); err != nil {
		log.Fatalf("Failed to seed service catalog: %v", err)
	}

	locks := services.NewMemberLocks()
	ledgerService := services.NewLedgerService(ledgerRepo, redisClient, pub, locks)
	membershipService := services.NewMembershipService(membershipRepo, ledgerService, redisClient)
	bookingService := services.NewBookingService(membershipRepo, bookingRepo, serviceRepo, inventory, redisClient, pub, locks)

	router := handler.NewRouter(
		handler.NewBookingHandler(bookingService),
		handler.NewMembershipHandler(membershipService),
		handler.NewTransactionHandler(ledgerService),
		handler.NewCatalogHandler(serviceRepo, inventory),
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/conectaext/conecta-backend/api"
	"github.com/conectaext/conecta-backend/auth"
	"github.com/conectaext/conecta-backend/config"
	"github.com/conectaext/conecta-backend/database"
	"github.com/conectaext/conecta-backend/models"
	"github.com/conectaext/conecta-backend/storage"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "postgres"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "conecta"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Project{},
		&models.Keyword{},
		&models.ImpactIndicator{},
	); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	files, err := storage.New(storage.Config{
		Endpoint:  config.GetString(c, "MINIO_ENDPOINT", "localhost"),
		Port:      config.GetInt(c, "MINIO_PORT", 9000),
		UseSSL:    config.GetBool(c, "MINIO_USE_SSL", false),
		AccessKey: config.GetString(c, "MINIO_ROOT_USER", "minioadmin"),
		SecretKey: config.GetString(c, "MINIO_ROOT_PASSWORD", ""),
	})
	if err != nil {
		fmt.Printf("Error initializing object storage: %v\n", err)
		os.Exit(1)
	}

	bucketCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := files.EnsureBuckets(bucketCtx); err != nil {
		fmt.Printf("Error provisioning storage buckets: %v\n", err)
		os.Exit(1)
	}

	jwtSecret := config.GetString(c, "JWT_SECRET", "")
	if jwtSecret == "" {
		fmt.Println("JWT_SECRET is not set. Exiting...")
		os.Exit(1)
	}
	tokenTTL := time.Duration(config.GetInt(c, "JWT_EXPIRES_IN_HOURS", 24)) * time.Hour
	tokens := auth.NewTokenIssuer(jwtSecret, tokenTTL)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, files, tokens)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

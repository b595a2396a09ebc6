// main.go
package main

import (
	"fmt"
	"log"

	"github.com/eppranavaudupa/smartBliendStick/config"
	"github.com/eppranavaudupa/smartBliendStick/endpoint"
	"github.com/eppranavaudupa/smartBliendStick/middleware"
	"github.com/eppranavaudupa/smartBliendStick/model"
	"github.com/eppranavaudupa/smartBliendStick/notify"
	"github.com/eppranavaudupa/smartBliendStick/util"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectSQLite(cfg)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	if err := db.AutoMigrate(&model.Event{}, &model.User{}, &model.AuditLog{}); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}
	util.SetAuditLoggerDB(db)

	// Optional Redis for auth-endpoint rate limiting.
	rdb, err := config.ConnectRedis(cfg)
	if err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
	}

	// Outbound SMS channel. A missing credential set degrades to logged
	// warnings instead of alerts.
	var sender notify.Sender
	if ts := notify.NewTwilioSender(cfg); ts != nil {
		sender = ts
		log.Println("Twilio configured")
	} else {
		log.Println("Twilio not configured - SMS won't be sent")
	}
	dispatcher := notify.NewDispatcher(sender)

	issuer := util.NewTokenIssuer(cfg.JWTSecret)

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.EndpointCallLogger())

	// Static front-end
	router.StaticFile("/", "./public/index.html")

	// Event ingestion and retrieval
	router.POST("/event", endpoint.SubmitEvent(cfg, db, dispatcher))
	router.GET("/events", middleware.BearerAuth(issuer), endpoint.ListEvents(db))

	// Auth gate
	authLimit := middleware.RateLimiter(rdb, middleware.RateLimitConfig{})
	router.POST("/signup", authLimit, endpoint.Signup(db))
	router.POST("/login", authLimit, endpoint.Login(db, issuer))
	router.GET("/token/validate", endpoint.ValidateToken(issuer))

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	log.Printf("%s listening on %s", cfg.AppName, address)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

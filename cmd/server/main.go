package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
	"github.com/rondo-club/rondo-api/internal/auth"
	"github.com/rondo-club/rondo-api/internal/booking"
	"github.com/rondo-club/rondo-api/internal/config"
	"github.com/rondo-club/rondo-api/internal/database"
	"github.com/rondo-club/rondo-api/internal/handlers"
	"github.com/rondo-club/rondo-api/internal/notifier"
	"github.com/rondo-club/rondo-api/internal/payments"
	"github.com/rondo-club/rondo-api/internal/tasks"
)

func main() {
	// Load Configuration
	cfg := config.LoadConfig()

	// Connect to Database
	db := database.Connect(cfg)

	// Notification sinks
	var sinks []notifier.Sink
	mailSink, err := notifier.NewMailSink(cfg)
	if err != nil {
		log.Printf("Mail sink not initialized: %v", err)
	} else {
		sinks = append(sinks, mailSink)
	}
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			log.Printf("Discord sink not initialized: %v", err)
		} else {
			sinks = append(sinks, notifier.NewDiscordSink(session, cfg.DiscordNotificationsChannelID))
		}
	}

	queue := notifier.NewQueue(cfg.NotificationQueueSize, sinks...)
	go queue.Start(context.Background())

	// Core collaborators
	authHandler := auth.NewAuthHandler(cfg, db)
	coordinator := booking.NewCoordinator(db, queue)
	paymentClient := payments.NewClient(cfg)

	// Background sweeper for unconfirmed court holds
	c := cron.New()
	sweeper := tasks.NewSweeper(db, time.Duration(cfg.ReservationHoldTTLMin)*time.Minute)
	if err := tasks.Schedule(c, cfg.SweeperSchedule, sweeper); err != nil {
		log.Fatalf("Failed to schedule sweeper: %v", err)
	}
	c.Start()

	// Initialize Handlers
	h := handlers.Handlers{
		Users:             handlers.NewUserHandler(db, authHandler, queue),
		Events:            handlers.NewEventHandler(db, coordinator, authHandler),
		Registrations:     handlers.NewRegistrationHandler(coordinator, authHandler),
		Waitlist:          handlers.NewWaitlistHandler(coordinator, authHandler),
		Courts:            handlers.NewCourtHandler(db, authHandler),
		CourtReservations: handlers.NewCourtReservationHandler(db, authHandler, paymentClient, queue, cfg),
		Coworking:         handlers.NewCoworkingHandler(db, authHandler),
		Tags:              handlers.NewTagHandler(db, authHandler),
		APIKeys:           handlers.NewAPIKeyHandler(db, authHandler),
	}

	// Initialize Router
	r := chi.NewRouter()

	// Register Routes
	handlers.RegisterRoutes(r, h)

	// Start Server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

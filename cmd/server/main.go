package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"campusclubs/internal/api"
	"campusclubs/internal/auth"
	"campusclubs/internal/repository"
	"campusclubs/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	userRepo := repository.NewUserRepository(database)
	clubRepo := repository.NewClubRepository(database)
	eventRepo := repository.NewEventRepository(database)
	commentRepo := repository.NewCommentRepository(database)
	courseRepo := repository.NewCourseRepository(database)

	notifySvc := service.NewNotifyService()
	authSvc := service.NewAuthService(userRepo, notifySvc)
	clubSvc := service.NewClubService(clubRepo)
	eventSvc := service.NewEventService(eventRepo, clubRepo, userRepo, commentRepo, notifySvc)
	calendarSvc := service.NewCalendarService(courseRepo)
	mediaSvc := service.NewMediaService()
	jobSvc := service.NewJobService(eventRepo, notifySvc)

	authHandler := api.NewAuthHandler(authSvc)
	clubHandler := api.NewClubHandler(clubSvc)
	eventHandler := api.NewEventHandler(eventSvc)
	calendarHandler := api.NewCalendarHandler(calendarSvc)
	mediaHandler := api.NewMediaHandler(mediaSvc)

	r := mux.NewRouter()

	protected := func(h http.HandlerFunc) http.Handler { return auth.JWTAuthMiddleware(h) }
	optional := func(h http.HandlerFunc) http.Handler { return auth.OptionalJWTMiddleware(h) }

	// Auth
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.Handle("/auth/me", protected(authHandler.Me)).Methods("GET")

	// Clubs
	r.Handle("/clubs", protected(clubHandler.CreateClub)).Methods("POST")
	r.Handle("/clubs/my-clubs", protected(clubHandler.MyClubs)).Methods("GET")
	r.HandleFunc("/clubs/{uid}", clubHandler.GetClub).Methods("GET")
	r.Handle("/clubs/{uid}", protected(clubHandler.UpdateClub)).Methods("PUT")
	r.Handle("/clubs/{uid}/join", protected(clubHandler.JoinClub)).Methods("POST")
	r.HandleFunc("/clubs/{uid}/members", clubHandler.ListMembers).Methods("GET")

	// Events
	r.Handle("/events", optional(eventHandler.ListEvents)).Methods("GET")
	r.Handle("/events", protected(eventHandler.CreateEvent)).Methods("POST")
	r.Handle("/events/club/{uid}", optional(eventHandler.ListClubEvents)).Methods("GET")
	r.Handle("/events/{uid}", optional(eventHandler.GetEvent)).Methods("GET")
	r.Handle("/events/{uid}", protected(eventHandler.UpdateEvent)).Methods("PUT")
	r.Handle("/events/{uid}", protected(eventHandler.DeleteEvent)).Methods("DELETE")
	r.Handle("/events/{uid}/join", protected(eventHandler.JoinEvent)).Methods("POST")
	r.Handle("/events/{uid}/leave", protected(eventHandler.LeaveEvent)).Methods("POST")
	r.HandleFunc("/events/{uid}/comments", eventHandler.ListComments).Methods("GET")
	r.Handle("/events/{uid}/comments", protected(eventHandler.AddComment)).Methods("POST")

	// Calendar heatmap
	r.HandleFunc("/calendar/heatmap", calendarHandler.Heatmap).Methods("GET")
	r.HandleFunc("/calendar/optimal-times", calendarHandler.OptimalTimes).Methods("GET")
	r.HandleFunc("/calendar/stats", calendarHandler.Stats).Methods("GET")

	// Media
	r.Handle("/media/upload", protected(mediaHandler.Upload)).Methods("POST")

	c := cron.New()
	if _, err := c.AddFunc("@every 10m", func() {
		if err := jobSvc.MarkEndedEventsCompleted(); err != nil {
			log.Printf("%v", err)
		}
		if err := jobSvc.SendUpcomingEventReminders(); err != nil {
			log.Printf("%v", err)
		}
	}); err != nil {
		log.Fatalf("Error scheduling background jobs: %v", err)
	}
	c.Start()
	defer c.Stop()

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://127.0.0.1:5173"
	}
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins(strings.Split(origins, ",")),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler(r)))
}

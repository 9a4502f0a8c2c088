package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnquest/internal/config"
	"learnquest/internal/handlers"
	"learnquest/internal/repository"
	"learnquest/internal/security"
	"learnquest/internal/service"
	"learnquest/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize the device store (supports sqlite, postgres, mysql)
	store, err := storage.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	log.Printf("Store connection established (type: %s)", cfg.DatabaseType)

	// Initialize repositories
	contentRepo := repository.NewContentRepository(store)
	progressRepo := repository.NewProgressRepository(store)
	userRepo := repository.NewUserRepository(store)

	// Initialize services
	tokens := security.NewTokenIssuer(cfg.TokenSecret, cfg.SessionDuration)
	authService := service.NewAuthService(userRepo, tokens)
	contentService := service.NewContentService(contentRepo)
	progressService := service.NewProgressService(progressRepo)
	quizService := service.NewQuizService(contentService, progressService)

	reportService, err := service.NewReportService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize report service: %v", err)
	}

	// Seed demo accounts on a fresh install
	if cfg.SeedDemoUsers {
		if err := authService.SeedDemoAccounts(context.Background()); err != nil {
			log.Printf("Warning: Failed to seed demo accounts: %v", err)
		}
	}

	// Recover the last signed-in identity, if the mirror is consistent
	if user, err := authService.RestoreIdentity(context.Background()); err != nil {
		log.Printf("Warning: Failed to restore identity: %v", err)
	} else if user != nil {
		log.Printf("Restored identity: %s (%s)", user.Name, user.Role)
	}

	// Initialize handlers
	middleware := handlers.NewMiddleware(authService, tokens)
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(authService, userRepo)
	kidHandler := handlers.NewKidHandler(contentService, progressService)
	quizHandler := handlers.NewQuizHandler(quizService)
	teacherHandler := handlers.NewTeacherHandler(contentService, progressService, reportService)

	// Setup routes
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/logout", middleware.RequireAuth(authHandler.Logout))

	// Profile routes (any role)
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profileHandler.Show))
	mux.HandleFunc("PUT /api/profile", middleware.RequireAuth(profileHandler.Update))

	// Kid routes
	mux.HandleFunc("GET /api/kid/dashboard", middleware.RequireKid(kidHandler.Dashboard))
	mux.HandleFunc("GET /api/kid/progress", middleware.RequireKid(kidHandler.Progress))
	mux.HandleFunc("POST /api/kid/lessons/{id}/complete", middleware.RequireKid(kidHandler.CompleteLesson))
	mux.HandleFunc("POST /api/kid/videos/{id}/complete", middleware.RequireKid(kidHandler.CompleteVideo))

	// Quiz session routes
	mux.HandleFunc("POST /api/kid/quizzes/{id}/session", middleware.RequireKid(quizHandler.Start))
	mux.HandleFunc("GET /api/kid/quiz-sessions/{id}", middleware.RequireKid(quizHandler.Show))
	mux.HandleFunc("POST /api/kid/quiz-sessions/{id}/answers", middleware.RequireKid(quizHandler.Answer))
	mux.HandleFunc("POST /api/kid/quiz-sessions/{id}/submit", middleware.RequireKid(quizHandler.Submit))
	mux.HandleFunc("DELETE /api/kid/quiz-sessions/{id}", middleware.RequireKid(quizHandler.Abandon))

	// Teacher content routes
	mux.HandleFunc("GET /api/teacher/lessons", middleware.RequireTeacher(teacherHandler.ListLessons))
	mux.HandleFunc("POST /api/teacher/lessons", middleware.RequireTeacher(teacherHandler.CreateLesson))
	mux.HandleFunc("PUT /api/teacher/lessons/{id}", middleware.RequireTeacher(teacherHandler.UpdateLesson))
	mux.HandleFunc("DELETE /api/teacher/lessons/{id}", middleware.RequireTeacher(teacherHandler.DeleteLesson))
	mux.HandleFunc("GET /api/teacher/videos", middleware.RequireTeacher(teacherHandler.ListVideos))
	mux.HandleFunc("POST /api/teacher/videos", middleware.RequireTeacher(teacherHandler.CreateVideo))
	mux.HandleFunc("PUT /api/teacher/videos/{id}", middleware.RequireTeacher(teacherHandler.UpdateVideo))
	mux.HandleFunc("DELETE /api/teacher/videos/{id}", middleware.RequireTeacher(teacherHandler.DeleteVideo))
	mux.HandleFunc("GET /api/teacher/quizzes", middleware.RequireTeacher(teacherHandler.ListQuizzes))
	mux.HandleFunc("POST /api/teacher/quizzes", middleware.RequireTeacher(teacherHandler.CreateQuiz))
	mux.HandleFunc("PUT /api/teacher/quizzes/{id}", middleware.RequireTeacher(teacherHandler.UpdateQuiz))
	mux.HandleFunc("DELETE /api/teacher/quizzes/{id}", middleware.RequireTeacher(teacherHandler.DeleteQuiz))
	mux.HandleFunc("GET /api/teacher/quizzes/{id}/results", middleware.RequireTeacher(teacherHandler.QuizResults))

	// Teacher progress routes
	mux.HandleFunc("GET /api/teacher/progress", middleware.RequireTeacher(teacherHandler.ClassProgress))
	mux.HandleFunc("GET /api/teacher/progress/{id}", middleware.RequireTeacher(teacherHandler.StudentProgress))
	mux.HandleFunc("POST /api/teacher/progress/report", middleware.RequireTeacher(teacherHandler.EmailReport))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// Command scribe runs the blog backend: credential-gated registration and
// login, JWT session authentication, and ownership-guarded post and comment
// mutations over PostgreSQL.
//
// @title Scribe API
// @version 1.0
// @description A blog backend with JWT authentication and ownership-based authorization.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/user/scribe-go/auth"
	"github.com/user/scribe-go/comments"
	"github.com/user/scribe-go/config"
	"github.com/user/scribe-go/db"
	_ "github.com/user/scribe-go/docs" // swagger document registration
	"github.com/user/scribe-go/posts"
	"github.com/user/scribe-go/users"
	"github.com/user/scribe-go/validation"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found or not readable: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatalf("failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	validate := validation.New()
	hasher := auth.NewHasher()

	userStore := users.NewPGStore(pool)
	authService := auth.NewService(userStore, hasher, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService, validate)

	postService := posts.NewService(posts.NewPGStore(pool), userStore)
	postHandler := posts.NewHandler(postService, validate)

	commentService := comments.NewService(comments.NewPGStore(pool), userStore)
	commentHandler := comments.NewHandler(commentService, validate)

	router := newRouter(cfg, authHandlers, postHandler, commentHandler)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
	log.Println("server stopped gracefully")
}

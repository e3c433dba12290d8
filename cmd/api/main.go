package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/go-pkgz/lgr"
	"gorm.io/gorm"

	"github.com/justsurfingit/jobly/internal/auth"
	"github.com/justsurfingit/jobly/internal/config"
	"github.com/justsurfingit/jobly/internal/database"
	"github.com/justsurfingit/jobly/internal/handlers"
	"github.com/justsurfingit/jobly/internal/services"
)

var revision = "latest"

func main() {
	fmt.Printf("jobly %s\n", revision)

	// 1. Load options from .env, environment and flags
	opts, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		fmt.Printf("failed: %v\n", err)
		os.Exit(1)
	}
	setupLog(opts.Dbg)

	if err := run(opts); err != nil {
		if opts.Dbg {
			log.Panicf("[ERROR] %v", err)
		}
		fmt.Printf("failed: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *config.Options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 2. Database connection and schema
	if opts.Migrate {
		if err := database.Migrate(opts.DatabaseURL); err != nil {
			return err
		}
	}
	db, err := database.Connect(database.Config{
		DSN:             opts.DatabaseURL,
		MaxOpenConns:    opts.DB.MaxOpenConns,
		MaxIdleConns:    opts.DB.MaxIdleConns,
		ConnMaxLifetime: opts.DB.ConnMaxLifetime,
		Debug:           opts.Dbg,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("[WARN] close database: %v", err)
		}
	}()

	// 3. Services and router
	if !opts.Dbg {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.Deps{
		Companies:   services.NewCompanyService(db),
		Jobs:        services.NewJobService(db),
		Users:       services.NewUserService(db, opts.BcryptCost),
		Tokens:      auth.NewTokenService([]byte(opts.Secret), opts.TokenTTL),
		Ping:        func(ctx context.Context) error { return database.Ping(ctx, db) },
		CORSOrigins: opts.CORSOrigins,
	})

	return serve(ctx, router, opts.Port, db)
}

func serve(ctx context.Context, h http.Handler, port int, db *gorm.DB) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] shutdown: %v", err)
		}
	}()

	log.Printf("[INFO] server starting on port %d, database %s", port, db.Dialector.Name())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func setupLog(dbg bool) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)

	// gin's own debug route dump goes through the std logger too
	gin.DefaultWriter = io.Discard
	if dbg {
		gin.DefaultWriter = log.Writer()
	}
}

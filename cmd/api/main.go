package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/village-coders/attendance-api/internal/adapters/httpapi"
	memattendancerepo "github.com/village-coders/attendance-api/internal/adapters/memory/attendancerepo"
	memimagestore "github.com/village-coders/attendance-api/internal/adapters/memory/imagestore"
	memplayerrepo "github.com/village-coders/attendance-api/internal/adapters/memory/playerrepo"
	memuserrepo "github.com/village-coders/attendance-api/internal/adapters/memory/userrepo"
	postgres "github.com/village-coders/attendance-api/internal/adapters/postgres"
	pgattendancerepo "github.com/village-coders/attendance-api/internal/adapters/postgres/attendancerepo"
	pgplayerrepo "github.com/village-coders/attendance-api/internal/adapters/postgres/playerrepo"
	pguserrepo "github.com/village-coders/attendance-api/internal/adapters/postgres/userrepo"
	supabaseimagestore "github.com/village-coders/attendance-api/internal/adapters/supabase/imagestore"
	"github.com/village-coders/attendance-api/internal/app/analytics"
	"github.com/village-coders/attendance-api/internal/app/attendance"
	"github.com/village-coders/attendance-api/internal/app/auth"
	"github.com/village-coders/attendance-api/internal/app/players"
	"github.com/village-coders/attendance-api/internal/platform/auth/tokens"
	platformclock "github.com/village-coders/attendance-api/internal/platform/clock"
	"github.com/village-coders/attendance-api/internal/platform/config"
	attendancerepoport "github.com/village-coders/attendance-api/internal/ports/out/attendancerepo"
	imagestoreport "github.com/village-coders/attendance-api/internal/ports/out/imagestore"
	playerrepoport "github.com/village-coders/attendance-api/internal/ports/out/playerrepo"
	userrepoport "github.com/village-coders/attendance-api/internal/ports/out/userrepo"
)

func main() {
	// Local convenience; in deployments the env comes from the platform.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	clk := platformclock.NewSystemClock()
	tokenManager := tokens.New(tokens.Config{
		Secret:    cfg.JWTSecret,
		TTL:       cfg.TokenTTL,
		ClockSkew: cfg.TokenClockSkew,
	})

	var (
		playerRepo     playerrepoport.Repository
		attendanceRepo attendancerepoport.Repository
		userRepo       userrepoport.Repository
		cleanup        func()
	)
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := postgres.NewPool(context.Background(), cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			log.Fatalf("invalid postgres config: %v", err)
		}
		cleanup = pool.Close
		playerRepo = pgplayerrepo.NewRepo(pool)
		attendanceRepo = pgattendancerepo.NewRepo(pool)
		userRepo = pguserrepo.NewRepo(pool)
	default:
		playerRepo = memplayerrepo.NewRepo()
		attendanceRepo = memattendancerepo.NewRepo()
		userRepo = memuserrepo.NewRepo()
	}
	if cleanup != nil {
		defer cleanup()
	}

	var images imagestoreport.Store
	if cfg.SupabaseURL != "" {
		images, err = supabaseimagestore.NewStore(supabaseimagestore.Config{
			BaseURL:    cfg.SupabaseURL,
			ServiceKey: cfg.SupabaseKey,
			Bucket:     cfg.SupabaseBucket,
		})
		if err != nil {
			log.Fatalf("invalid supabase config: %v", err)
		}
	} else {
		images = memimagestore.NewStore()
	}

	handler := httpapi.NewRouter(httpapi.Deps{
		Players:     players.NewService(playerRepo, attendanceRepo, images, clk),
		Attendance:  attendance.NewService(attendanceRepo, playerRepo, clk),
		Analytics:   analytics.NewService(playerRepo, attendanceRepo, clk),
		Auth:        auth.NewService(userRepo, tokenManager, clk),
		Tokens:      tokenManager,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("api listening on :%s (storage=%s)", cfg.Port, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

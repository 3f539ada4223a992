package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "gymdesk/internal/adapters/email"
	web "gymdesk/internal/adapters/http"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/storage/catalog"
	"gymdesk/internal/adapters/storage/kv"
	"gymdesk/internal/adapters/storage/ledger"
	sessionStore "gymdesk/internal/adapters/storage/session"
	"gymdesk/internal/application/activity"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments configure via the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// WAL mode and busy timeout keep concurrent readers cheap.
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := kv.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	backend := kv.NewSQLiteStore(db)
	ctx := context.Background()

	catalogStore, seedNeeded, err := catalog.NewKVStore(ctx, backend)
	if err != nil {
		log.Fatalf("failed to load course catalog: %v", err)
	}
	generateID := orchestrators.NewIDGenerator()
	feed := activity.NewFeed()

	// First run (or corrupted catalog data): seed the starter courses.
	if seedNeeded {
		seedDeps := orchestrators.SeedCoursesDeps{CourseStore: catalogStore}
		if err := orchestrators.ExecuteSeedCourses(ctx, seedDeps, time.Now()); err != nil {
			log.Fatalf("failed to seed courses: %v", err)
		}
		log.Println("Seeded starter courses")
	}

	ledgerStore, err := ledger.NewKVStore(ctx, backend)
	if err != nil {
		log.Fatalf("failed to load booking ledger: %v", err)
	}
	sessions := sessionStore.NewKVStore(backend)

	stores := &web.Stores{
		Catalog: catalogStore,
		Ledger:  ledgerStore,
		Session: sessions,
	}

	// Configure email sender
	if cfg.ResendAPIKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom), cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), cfg.EmailFrom)
		if cfg.IsProduction() {
			log.Println("WARNING: RESEND_API_KEY is not set; email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set RESEND_API_KEY for real delivery)")
		}
	}

	middleware.SecureCookies = cfg.IsProduction()
	csrfKey := web.LoadCSRFKey(cfg.CSRFKey, cfg.IsProduction())
	mux := web.NewMux(cfg.StaticDir, stores, feed, generateID, csrfKey)

	// A browser still holding its session cookie resumes after a restart.
	if token, u, ok, err := sessions.Load(ctx); err != nil {
		log.Fatalf("failed to restore session: %v", err)
	} else if ok {
		web.RestoreSession(token, u)
		log.Printf("Restored session for %s", u.Email)
	}

	log.Printf("GymDesk %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

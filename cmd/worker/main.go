package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/andrewwu13/employment-bot/internal/config"
	"github.com/andrewwu13/employment-bot/internal/events"
	"github.com/andrewwu13/employment-bot/internal/httpapi"
	"github.com/andrewwu13/employment-bot/internal/mailbox"
	"github.com/andrewwu13/employment-bot/internal/pipeline"
	"github.com/andrewwu13/employment-bot/internal/publish"
	"github.com/andrewwu13/employment-bot/internal/render"
	"github.com/andrewwu13/employment-bot/internal/scheduler"
	"github.com/andrewwu13/employment-bot/internal/scrape"
	"github.com/andrewwu13/employment-bot/internal/secrets"
	"github.com/andrewwu13/employment-bot/internal/store"
)

func main() {
	dataDir := os.Getenv("EMPLOYMENT_BOT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One worker per data dir; a second instance would double-post.
	lock := flock.New(filepath.Join(dataDir, "worker.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock: %v", err)
	}
	if !locked {
		log.Fatalf("another worker already holds %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		raw, err := config.Load(userCfgPath)
		if err != nil {
			return config.Config{}, err
		}
		out, res := config.NormalizeAndValidate(raw)
		for _, warn := range res.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		if !res.OK() {
			return config.Config{}, fmt.Errorf("invalid config: %v", res.Errors)
		}
		return out, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "jobs.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	jobs := store.NewJobStore(db, cfg.Store.Dev)
	if err := jobs.Migrate(); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	renderer := render.NewCollyRenderer(cfg.Scrape.UserAgent, cfg.Scrape.HostReqPerSec, cfg.Scrape.HostBurst)
	scraper := scrape.New(renderer, time.Duration(cfg.Scrape.TimeoutSeconds)*time.Second)

	mail, err := buildMailClient(cfg)
	if err != nil {
		log.Fatalf("mail client: %v", err)
	}

	pipe := &pipeline.Service{
		Mail:     mail,
		Store:    jobs,
		Scraper:  scraper,
		Sender:   cfg.Mail.Sender,
		Cooldown: time.Duration(cfg.Scrape.CooldownSeconds) * time.Second,
		Hub:      hub,
	}

	var poster *publish.Poster
	if webhookURL, err := secrets.GetWebhookURL(); err != nil {
		log.Printf("[worker] posting disabled: %v", err)
	} else {
		poster = &publish.Poster{
			Store:      jobs,
			Sender:     publish.NewWebhookSender(webhookURL),
			BatchLimit: cfg.Posting.BatchLimit,
			SendDelay:  time.Duration(cfg.Posting.SendDelayMS) * time.Millisecond,
			Hub:        hub,
		}
	}

	runStatus := &atomic.Value{}
	runStatus.Store(httpapi.RunStatus{})

	mux := httpapi.NewMux(httpapi.Deps{
		Store:       jobs,
		Hub:         hub,
		Pipeline:    pipe,
		Poster:      poster,
		CfgVal:      &cfgVal,
		RunStatus:   runStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})
	handler := httpapi.Chain(mux, httpapi.Cors, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[worker] api listening on http://%s (data=%s)", addr, dataDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := srv.Serve(ln)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if mail != nil {
		g.Go(func() error {
			scheduler.Every(ctx, time.Duration(cfg.Polling.MailSeconds)*time.Second, "pipeline", func(ctx context.Context) error {
				res := pipe.Run(ctx)
				if res.Err != "" {
					return fmt.Errorf("%s", res.Err)
				}
				return nil
			})
			return nil
		})
	} else {
		log.Printf("[worker] mail disabled; pipeline runs only via POST /run")
	}

	if poster != nil {
		g.Go(func() error {
			scheduler.Every(ctx, time.Duration(cfg.Posting.IntervalSeconds)*time.Second, "posting", func(ctx context.Context) error {
				_, err := poster.Post(ctx)
				return err
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Printf("[worker] shut down cleanly")
}

// buildMailClient picks the inbox implementation: a fixture file when one is
// configured, live IMAP when mail is enabled, otherwise none.
func buildMailClient(cfg config.Config) (mailbox.Client, error) {
	if cfg.Mail.Fixture != "" {
		log.Printf("[worker] using fixture inbox %s", cfg.Mail.Fixture)
		return mailbox.NewFixtureClient(cfg.Mail.Fixture), nil
	}
	if !cfg.Mail.Enabled {
		return nil, nil
	}

	password, err := secrets.GetIMAPPassword(secrets.IMAPKeyringAccount(cfg))
	if err != nil {
		return nil, err
	}
	return &mailbox.IMAPClient{
		Addr:     fmt.Sprintf("%s:%d", cfg.Mail.IMAPHost, cfg.Mail.IMAPPort),
		Username: cfg.Mail.Username,
		Password: password,
		Mailbox:  cfg.Mail.Mailbox,
		MaxFetch: cfg.Mail.MaxFetch,
	}, nil
}

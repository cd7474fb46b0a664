package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"seat-status-probe/config"
	"seat-status-probe/internal/auth"
	"seat-status-probe/internal/client"
	"seat-status-probe/internal/model"
	"seat-status-probe/internal/walker"
)

func main() {
	logger := log.New(os.Stdout, "seatprobe ", log.LstdFlags)

	manual := flag.Bool("manual", false, "log in by hand in the opened browser instead of submitting credentials automatically")
	flag.Parse()

	// Optional .env overlay for SEATPROBE_USERNAME / SEATPROBE_PASSWORD.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	day, err := model.ParseDay(cfg.Query.Day)
	if err != nil {
		logger.Fatalf("invalid query.day: %v", err)
	}

	ctx := context.Background()
	bridge := auth.NewBridge(&cfg.Portal, cfg.Browser.Headless)

	var session *auth.Session
	if *manual {
		logger.Println("Browser opened. Please log in through the browser interface.")
		confirmed := make(chan struct{})
		go func() {
			fmt.Print("Press Enter after you have successfully logged in...")
			bufio.NewReader(os.Stdin).ReadString('\n')
			close(confirmed)
		}()
		session, err = bridge.LoginManual(ctx, confirmed)
	} else {
		if cfg.Credentials.Username == "" || cfg.Credentials.Password == "" {
			logger.Fatalf("credentials must be configured (config file or SEATPROBE_USERNAME / SEATPROBE_PASSWORD)")
		}
		logger.Println("Browser opened. Logging in automatically...")
		session, err = bridge.Login(ctx, cfg.Credentials.Username, cfg.Credentials.Password)
	}
	if err != nil {
		logger.Fatalf("login failed: %v", err)
	}
	logger.Println("Login successful. Browser closed.")

	api := client.New(session, rate.Limit(cfg.Client.RateLimitPerSec), cfg.Client.Burst)
	w := walker.New(api, cfg.Portal.BaseURL)

	libraries, err := w.Libraries(ctx)
	if err != nil {
		logger.Fatalf("listing libraries: %v", err)
	}
	dump("libraries", libraries)
	if len(libraries) == 0 {
		logger.Fatalf("no valid libraries returned")
	}

	floors, err := w.Floors(ctx, libraries[0])
	if err != nil {
		logger.Fatalf("listing floors of library %d: %v", libraries[0].ID, err)
	}
	dump("floors", floors)
	if len(floors) == 0 {
		logger.Fatalf("library %d has no valid floors", libraries[0].ID)
	}

	sections, err := w.Sections(ctx, floors[0], day)
	if err != nil {
		logger.Fatalf("listing sections of floor %d: %v", floors[0].ID, err)
	}
	dump("sections", sections)
	if len(sections) == 0 {
		logger.Fatalf("floor %d has no valid sections", floors[0].ID)
	}

	segment, err := w.Day(ctx, sections[0], day)
	if err != nil {
		logger.Fatalf("resolving day segment of section %d: %v", sections[0].ID, err)
	}
	dump("day segment", segment)

	seats, err := w.Seats(ctx, sections[0], segment)
	if err != nil {
		logger.Fatalf("listing seats of section %d: %v", sections[0].ID, err)
	}
	dump("seats", seatReports(seats))
}

// seatReport pairs a seat with the semantic label for its status code.
type seatReport struct {
	model.Seat
	Label string
}

func seatReports(seats []model.Seat) []seatReport {
	reports := make([]seatReport, 0, len(seats))
	for _, seat := range seats {
		reports = append(reports, seatReport{Seat: seat, Label: seat.Status.Label()})
	}
	return reports
}

func dump(label string, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encoding %s: %v", label, err)
	}
	fmt.Printf("%s:\n%s\n", label, out)
}

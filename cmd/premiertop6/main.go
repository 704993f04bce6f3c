package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/sairajesh711/premier-top6/internal/app"
	"github.com/sairajesh711/premier-top6/internal/config"
	"github.com/sairajesh711/premier-top6/internal/logger"
	"github.com/sairajesh711/premier-top6/web"
)

var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Premier Top 6 - community football club ranking

Usage:
  premiertop6 [options]

Options:
  -version       Show version and exit
  -help          Show this help message

Configuration is read from the environment (TOP6_ prefix) layered over an
optional YAML file named by TOP6_CONFIG. A .env file in the working
directory is loaded first if present.

  TOP6_ADDR              HTTP listen address (default ":8081")
  TOP6_DB_PATH           SQLite database path (default "top6.db")
  TOP6_LOG_LEVEL         debug, info, warn, error (default "info")
  TOP6_OPENAI_KEY        API key for the ballot classifier (empty disables it)
  TOP6_OPENAI_BASE_URL   Chat-completions base URL
  TOP6_MODEL             Classification model (default "gpt-3.5-turbo")
  TOP6_CLASSIFY_TIMEOUT  Classification timeout, e.g. "10s" (default none)
  TOP6_ENABLE_AUTOFIX    Expose the "fix it" action (default true)

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("premiertop6 %s\n", version)
		os.Exit(0)
	}

	// Best effort; the API key usually lives here during development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	a, err := app.New(appLog, cfg, web.GetTemplatesFS(), web.GetStaticFS())
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/shpitdev/air-assist/internal/mockgemini"
)

const defaultReply = `{
  "homeRecommendations": [
    {"id": 1, "name": "Sample Apartment", "address": "unknown", "cost": "unknown", "link": "unknown", "description": "A placeholder home.", "featured": true}
  ],
  "placesToVisit": [
    {"id": 1, "name": "Old Town", "address": "unknown", "cost": "Free", "link": "unknown", "description": "A placeholder sight."}
  ],
  "placesToEat": [
    {"id": 1, "name": "Corner Bistro", "address": "unknown", "cost": "unknown", "link": "unknown", "description": "A placeholder restaurant."}
  ],
  "healthAdvisory": false
}`

func main() {
	addr := defaultString("MOCK_GEMINI_ADDR", ":8081")
	replyFile := defaultString("MOCK_GEMINI_REPLY_FILE", "")
	apiKey := defaultString("MOCK_GEMINI_API_KEY", "")
	fenced := false

	fs := flag.NewFlagSet("mock-gemini", flag.ExitOnError)
	fs.StringVar(&addr, "addr", addr, "Listen address (env: MOCK_GEMINI_ADDR)")
	fs.StringVar(&replyFile, "reply-file", replyFile, "File whose contents are returned as the model text (env: MOCK_GEMINI_REPLY_FILE)")
	fs.StringVar(&apiKey, "api-key", apiKey, "Reject requests without this API key (env: MOCK_GEMINI_API_KEY)")
	fs.BoolVar(&fenced, "fenced", fenced, "Wrap the reply in a ```json markdown fence")
	_ = fs.Parse(os.Args[1:])

	reply := defaultReply
	if replyFile != "" {
		b, err := os.ReadFile(replyFile)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "read reply file: %v\n", err)
			os.Exit(2)
		}
		reply = string(b)
	}
	if fenced {
		reply = "```json\n" + strings.TrimSpace(reply) + "\n```"
	}

	srv := mockgemini.New(reply)
	srv.RequireAPIKey(apiKey)

	_, _ = fmt.Fprintf(os.Stdout, "mock-gemini listening on %s (point GEMINI_BASE_URL at http://localhost%s)\n", addr, addr)
	hs := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := hs.ListenAndServe(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func defaultString(envVar string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(envVar))
	if v == "" {
		return fallback
	}
	return v
}

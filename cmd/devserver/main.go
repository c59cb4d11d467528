// Command devserver levanta el backend de desarrollo en memoria.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"pethome/internal/devserver"
	"pethome/internal/platform/logger"
)

func main() {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret" // solo desarrollo; el backend real firma con su propia clave
	}

	zl, err := logger.NewFromEnv()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	srv := &http.Server{
		Addr:         addr,
		Handler:      devserver.New(zl, []byte(secret)).Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("starting dev server on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

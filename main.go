package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FelixGerberding/tank-arena/controlplane"
	"github.com/FelixGerberding/tank-arena/lobby"
	"github.com/FelixGerberding/tank-arena/server"
	"github.com/FelixGerberding/tank-arena/transport"
)

func main() {
	flag.Parse()
	host := "127.0.0.1"
	if flag.NArg() > 0 {
		host = flag.Arg(0)
	}

	directory := lobby.NewDirectory()
	registry := server.NewRegistry()
	scheduler := server.NewScheduler(directory, registry)
	directory.OnRunning = scheduler.Start
	router := server.NewRouter(directory, registry, scheduler)

	clientSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:8080", host),
		Handler:      transport.NewHandler(directory, registry, router),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	controlSrv := &http.Server{
		Addr:         fmt.Sprintf("%s:8081", host),
		Handler:      controlplane.NewHandler(directory),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Client transport listening on %s", clientSrv.Addr)
	go func() {
		if err := clientSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("client transport failed to start: %v", err)
		}
	}()

	log.Printf("Control plane listening on %s", controlSrv.Addr)
	go func() {
		if err := controlSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("control plane failed to start: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Shutting down (signal: %v)...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := clientSrv.Shutdown(ctx); err != nil {
		log.Printf("client transport shutdown error: %v", err)
	}
	if err := controlSrv.Shutdown(ctx); err != nil {
		log.Printf("control plane shutdown error: %v", err)
	}

	log.Println("Server stopped")
	os.Exit(0)
}

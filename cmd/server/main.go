package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/xtding233/kessan-board/internal/config"
	"github.com/xtding233/kessan-board/internal/engine"
	"github.com/xtding233/kessan-board/internal/rpc"
	"github.com/xtding233/kessan-board/internal/server"
	"github.com/xtding233/kessan-board/internal/session"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	var env config.ServerEnv
	if err := config.ParseEnv(&env); err != nil {
		log.Fatal(err)
	}

	loader := config.NewLoader(env.ConfigDir)
	// fail fast on a broken board file
	if _, err := loader.Resolve(env.Board, config.Overrides{}); err != nil {
		log.Fatalf("config: %v", err)
	}
	watcher := config.WatchLoader(loader, env.WatchInterval)
	watcher.Start()
	defer watcher.Stop()

	sessions := session.NewStore(func(o config.Overrides) (engine.Config, error) {
		return loader.Resolve(env.Board, o)
	}, env.MaxSessions)
	defer sessions.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grpcServer, healthServer := rpc.NewServer(sessions)
	lis, err := net.Listen("tcp", env.GRPCAddr)
	if err != nil {
		log.Fatalf("listen on %s: %v", env.GRPCAddr, err)
	}
	go func() {
		log.Printf("grpc listening on %v ...", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			log.Printf("serve gRPC: %v", err)
			stop()
		}
	}()

	httpServer := &http.Server{
		Addr:              env.HTTPAddr,
		Handler:           server.NewHandler(sessions),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("http listening on %s ...", env.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("serve HTTP: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("shutting down ...")
	healthServer.Shutdown()
	grpcServer.GracefulStop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

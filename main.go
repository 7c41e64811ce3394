package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"seaferry/internal/config"
	router "seaferry/internal/http"
	"seaferry/internal/utils"
)

func main() {
	env := config.LoadEnv()
	utils.InitLogger(env.GinMode)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := config.ConnectDB(env)
	defer config.CloseDB()

	rdb := config.NewRedisClient(env)
	if rdb == nil {
		logrus.Warn("redis unreachable, capacity caching disabled and drafts held in memory")
	}

	r := router.NewRouter(env, db, rdb)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", env.AppAddr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("shutdown failed: %v", err)
	}

	logrus.Info("server stopped")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"psi-dashboard/internal/config"
	httpapi "psi-dashboard/internal/http"
	"psi-dashboard/internal/loader"
	"psi-dashboard/internal/logger"
	"psi-dashboard/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "psi-dashboard")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	excel := loader.NewExcelLoader(log)
	svc := service.NewDashboard(excel, log, cfg.WorkbookPath)

	// 啟動時先載一次：缺檔、缺工作表、缺欄位屬致命，直接結束而不是帶壞資料上線
	if _, err := svc.Dataset(); err != nil {
		log.Fatal("initial workbook load failed",
			zap.String("path", cfg.WorkbookPath), zap.Error(err))
	}

	handler := httpapi.NewDashboardHandler(svc, log)
	router := httpapi.NewRouter(log)
	router.RegisterDashboardRoutes(handler)

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		log.Info("psi-dashboard listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown not clean", zap.Error(err))
	}
	log.Info("psi-dashboard stopped")
}

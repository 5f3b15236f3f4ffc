package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozydot/nurse-charting-android/internal/config"
	"github.com/kozydot/nurse-charting-android/internal/notifier"
	"github.com/kozydot/nurse-charting-android/internal/repository"
	"github.com/kozydot/nurse-charting-android/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	patientRepo := repository.NewPatientRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	var sink service.Notifier = notifier.Log{}
	if cfg.TelegramToken != "" {
		tg, err := notifier.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("notifier: %v", err)
		}
		sink = tg
	}

	reminders := service.NewReminderService(taskRepo, sink)
	defer reminders.Stop()
	if err := reminders.RestorePending(ctx, time.Now()); err != nil {
		log.Printf("[warn] %v", err)
	}

	reports := service.NewReportService(patientRepo, taskRepo)
	scheduler := service.NewSchedulerService(time.Local)
	reportJob := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		summary, err := reports.ShiftSummary(jobCtx, time.Now())
		if err != nil {
			log.Printf("[error] shift report: %v", err)
			return
		}
		if err := sink.Notify(jobCtx, "Shift report", summary); err != nil {
			log.Printf("[error] deliver shift report: %v", err)
		}
	}

	switch {
	case cfg.ReportTime != "":
		if _, err := scheduler.ScheduleDaily(cfg.ReportTime, reportJob); err != nil {
			log.Fatalf("schedule report: %v", err)
		}
	case cfg.ReportInterval > 0:
		if _, err := scheduler.ScheduleInterval(cfg.ReportInterval, reportJob); err != nil {
			log.Fatalf("schedule report: %v", err)
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Nurse charting host started.")
	<-ctx.Done()
	log.Println("Shutdown complete.")
}

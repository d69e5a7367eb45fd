// Package scheduler runs the panel's background sweeps on a cron schedule.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"fw-panel/internal/database"
	"fw-panel/internal/models"
	"fw-panel/internal/services/orchestrator"

	"github.com/robfig/cron/v3"
)

var scheduler *cron.Cron

// Records stuck in the deploying state longer than this are assumed to have
// been orphaned by an interrupted deployment.
const staleDeployAge = 5 * time.Minute

// Init starts the background scheduler: a minutely health snapshot and a
// sweep for orphaned deployments.
func Init() {
	scheduler = cron.New()

	if _, err := scheduler.AddFunc("@every 1m", healthSnapshot); err != nil {
		log.Printf("Failed to schedule health snapshot: %v", err)
	}
	if _, err := scheduler.AddFunc("@every 1m", sweepStaleDeployments); err != nil {
		log.Printf("Failed to schedule deployment sweep: %v", err)
	}

	scheduler.Start()
	log.Println("⏰ Background scheduler started")
}

// Stop halts the scheduler. Pending runs finish.
func Stop() {
	if scheduler != nil {
		scheduler.Stop()
	}
}

func healthSnapshot() {
	stats, err := orchestrator.Statistics()
	if err != nil {
		log.Printf("Health snapshot failed: %v", err)
		return
	}
	log.Printf("Health: %d running, %d stopped, %d total",
		stats.RunningFirewalls, stats.StoppedFirewalls, stats.TotalFirewalls)
}

func sweepStaleDeployments() {
	cutoff := time.Now().Add(-staleDeployAge)

	var stale []models.Firewall
	if err := database.DB.
		Where("status = ? AND created_at < ?", models.StatusDeploying, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("Deployment sweep failed: %v", err)
		return
	}

	for _, fw := range stale {
		if err := database.DB.Model(&models.Firewall{}).Where("id = ?", fw.ID).
			Update("status", models.StatusStopped).Error; err != nil {
			log.Printf("Failed to reconcile %s: %v", fw.ID, err)
			continue
		}
		orchestrator.AddLog(orchestrator.LevelWarning,
			fmt.Sprintf("Deployment of %s never completed, marked stopped", fw.Name))
	}
}

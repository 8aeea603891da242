package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// Retry configuration
const maxRetries = 3
const retryDelay = 2 * time.Minute // 2 minutes between retries

// CleanupExpiredFile removes the file when it is older than the TTL
func CleanupExpiredFile(filePath string, ttl time.Duration) error {
	info, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("error checking file: %v", err)
	}

	if time.Since(info.ModTime()) > ttl {
		if err := os.Remove(filePath); err != nil {
			return fmt.Errorf("error deleting expired file: %v", err)
		}
		log.Printf("expired log file %s deleted", filePath)
	}
	return nil
}

// CleanupAllExpired drops stale analytics cache entries and rotated log
// files past their retention window. Stored workbooks are never touched;
// their UploadedWorkbook rows reference them.
func CleanupAllExpired(logTTL time.Duration, rdb *redis.Client) error {
	entries, err := os.ReadDir("./logs")
	if err != nil {
		return fmt.Errorf("error reading logs directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := CleanupExpiredFile(filepath.Join("./logs", entry.Name()), logTTL); err != nil {
			log.Println("Error cleaning up log file:", err)
		}
	}

	if err := InvalidateCache(rdb, "analytics"); err != nil {
		return fmt.Errorf("error cleaning up analytics cache: %v", err)
	}

	return nil
}

// RunScheduledCleanup runs cleanup tasks daily at 1 AM with retries and logs
// error messages to console on failure
func RunScheduledCleanup(rdb *redis.Client) {
	c := cron.New()

	c.AddFunc("0 1 * * *", func() {
		log.Println("running scheduled cleanup task...")

		var retries int
		var cleanupSuccess bool

		for retries < maxRetries {
			log.Printf("attempt %d to clean up...", retries+1)
			err := CleanupAllExpired(28*24*time.Hour, rdb)
			if err == nil {
				log.Println("cleanup successful!")
				cleanupSuccess = true
				break
			}
			log.Printf("cleanup failed: %v", err)
			retries++
			time.Sleep(retryDelay)
		}

		if !cleanupSuccess {
			log.Printf("cleanup task failed after %d retries. please check the system.", retries)
		}
	})

	c.Start()

	// Keep the goroutine alive so the cron jobs execute
	select {}
}

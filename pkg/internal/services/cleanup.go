package services

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// orphanGracePeriod keeps very fresh files alive so a sweep cannot race
// an upload whose post record is still being written.
const orphanGracePeriod = time.Hour

// DoAutoDatabaseCleanup sweeps the upload directory for files no post
// references anymore. An upload written before a failed record creation
// is removed here rather than blocking the request path.
func DoAutoDatabaseCleanup(tx *gorm.DB, dir string) {
	log.Debug().Msg("Now cleaning up orphaned uploads...")

	var referenced []string
	if err := tx.Model(&models.Post{}).
		Where("featured_image IS NOT NULL").
		Pluck("featured_image", &referenced).Error; err != nil {
		log.Error().Err(err).Msg("An error occurred when listing referenced uploads...")
		return
	}

	keep := lo.SliceToMap(referenced, func(item string) (string, bool) {
		return filepath.Base(item), true
	})

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error().Err(err).Msg("An error occurred when reading the upload directory...")
		return
	}

	var count int
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, ok := keep[entry.Name()]; ok {
			continue
		}
		if info, err := entry.Info(); err != nil || time.Since(info.ModTime()) < orphanGracePeriod {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("Unable to remove orphaned upload...")
			continue
		}
		count++
	}

	if count > 0 {
		log.Info().Int("count", count).Msg("Removed orphaned uploads.")
	}
}

// RemoveUpload deletes a stored upload by its public path. Used both as
// compensating cleanup when a record write fails and when a post is
// deleted.
func RemoveUpload(dir, webPath string) {
	if len(webPath) == 0 {
		return
	}
	if err := os.Remove(filepath.Join(dir, filepath.Base(webPath))); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", webPath).Msg("Unable to remove upload...")
	}
}

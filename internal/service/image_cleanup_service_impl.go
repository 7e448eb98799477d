package service

import (
	"context"
	"sync"
	"time"

	"github.com/ohmfruit/fruitstore-service/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	cleanupTimeout        = 30 * time.Second
	maxDeletionAttempts   = 5
	pendingDeletionsBatch = 100
)

type ImageCleanupServiceImpl struct {
	storage     ImageStorage
	pendingRepo repository.PendingDeletionRepository
	timeout     time.Duration
}

func CreateImageCleanupService(storage ImageStorage, pendingRepo repository.PendingDeletionRepository) ImageCleanupService {
	return &ImageCleanupServiceImpl{
		storage:     storage,
		pendingRepo: pendingRepo,
		timeout:     cleanupTimeout,
	}
}

// RemoveImages runs detached from the caller's cancellation so a client
// disconnect does not abandon half of the cleanup.
func (s *ImageCleanupServiceImpl) RemoveImages(ctx context.Context, urls []string) {
	if len(urls) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, url := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.removeImage(ctx, url)
		}()
	}
	wg.Wait()
}

func (s *ImageCleanupServiceImpl) removeImage(ctx context.Context, url string) {
	key, ok := s.storage.KeyFromURL(url)
	if !ok {
		log.Ctx(ctx).Warn().Str("component", "RemoveImages").Str("url", url).Msg("cannot derive object key")
		return
	}

	err := s.storage.Delete(ctx, key)
	if err == nil {
		return
	}

	log.Ctx(ctx).Error().Err(err).Str("component", "RemoveImages").Str("key", key).Msg("queued for retry")
	if err := s.pendingRepo.AddPendingDeletion(ctx, key, err); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "RemoveImages").Str("key", key).Msg("object left orphaned")
	}
}

func (s *ImageCleanupServiceImpl) RetryPendingDeletions(ctx context.Context) (err error) {
	pending, err := s.pendingRepo.GetPendingDeletions(ctx, maxDeletionAttempts, pendingDeletionsBatch)
	if err != nil {
		return
	}

	for _, entry := range pending {
		if err := s.storage.Delete(ctx, entry.Key); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "RetryPendingDeletions").
				Str("key", entry.Key).Int("attempts", entry.Attempts+1).Msg("")
			if err := s.pendingRepo.MarkAttemptFailed(ctx, entry.ID, err); err != nil {
				return err
			}
			continue
		}

		if err := s.pendingRepo.RemovePendingDeletion(ctx, entry.ID); err != nil {
			return err
		}
	}

	return nil
}

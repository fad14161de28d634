package di

import (
	"context"
	"log/slog"
	"os"

	"microblog/internal/feature/uploads/adapters/vision"
	"microblog/internal/feature/uploads/usecase"
)

// NewModerator creates the optional image moderator. MODERATION_ENABLED=true
// turns on Cloud Vision SafeSearch screening; otherwise uploads are stored
// unscreened and this returns nil.
func NewModerator(ctx context.Context) usecase.Moderator {
	if os.Getenv("MODERATION_ENABLED") != "true" {
		return nil
	}

	moderator, err := vision.NewSafeSearchModerator(ctx)
	if err != nil {
		slog.Warn("image moderation unavailable", "error", err)
		return nil
	}
	slog.Info("image moderation enabled")
	return moderator
}

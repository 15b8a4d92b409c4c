package filestore

import (
	"go.uber.org/fx"

	"github.com/polkiloo/cvorders/internal/config"
)

// Module provides local disk file storage.
var Module = fx.Provide(newLocal)

func newLocal(cfg *config.Config) (*Local, error) {
	return NewLocal(cfg.FilesDir, cfg.PublicBaseURL, cfg.MaxUploadBytes)
}

package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/cvorders/internal/config"
	"github.com/polkiloo/cvorders/internal/events"
	"github.com/polkiloo/cvorders/internal/filestore"
	"github.com/polkiloo/cvorders/internal/server/http/handlers"
)

// Params are router dependencies resolved by fx.
type Params struct {
	fx.In

	Config *config.Config
	Facade handlers.Facade
	Hub    *events.Hub
	Files  *filestore.Local
	Logger *slog.Logger
}

// multipartOverhead leaves room for form fields around an upload.
const multipartOverhead = 1 << 20

func newEngine(p Params) *gin.Engine {
	opts := Options{
		FilesDir:     p.Files.Dir(),
		MaxBodyBytes: p.Config.MaxUploadBytes + multipartOverhead,
	}
	return Setup(p.Facade, p.Hub, opts, p.Logger)
}

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(newEngine)

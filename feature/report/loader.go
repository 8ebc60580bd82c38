package report

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/OndraMix/Wiki/core/wiki"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new report feature.
func NewFeature(client wiki.Client, logger *zap.Logger) *Feature {
	svc := NewService(client, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "report"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

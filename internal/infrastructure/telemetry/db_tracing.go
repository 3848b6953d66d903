package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterGormTracing installs the otelgorm plugin so every query becomes a
// child span of the request. Query variables are never attached to spans
// since they can carry OAuth tokens.
func RegisterGormTracing(db *gorm.DB, tp *TracerProvider, logger *zap.Logger) error {
	if tp == nil || !tp.Enabled() {
		return nil
	}
	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName("postgresql"),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return fmt.Errorf("register otelgorm: %w", err)
	}
	logger.Info("Database tracing enabled")
	return nil
}

package bootstrap

import (
	"telemedicine-assistant-be/internal/config"
	"telemedicine-assistant-be/internal/controller"
	"telemedicine-assistant-be/internal/pkg/logger"
	"telemedicine-assistant-be/internal/repository/memory"
	"telemedicine-assistant-be/internal/repository/unitofwork"
	"telemedicine-assistant-be/internal/service"
	"telemedicine-assistant-be/pkg/knowledge"

	"gorm.io/gorm"
)

type Container struct {
	AssistantController controller.IAssistantController

	// Logger is exposed so main can flush it on shutdown.
	Logger logger.ILogger

	// KnowledgeProvider receives the base once the background load finishes.
	KnowledgeProvider *knowledge.Provider
}

// NewContainer wires the application graph. db may be nil: the service then
// runs on the in-memory conversation store (session storage only).
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		sysLogger.Info("bootstrap", "no database configured, using in-memory conversation store", nil)
		uowFactory = memory.NewRepositoryFactory()
	}

	knowledgeProvider := knowledge.NewProvider()
	contextRepo := memory.NewContextRepository()

	assistantService := service.NewAssistantService(
		uowFactory,
		knowledgeProvider,
		knowledge.DefaultTables(),
		contextRepo,
		sysLogger,
	)

	return &Container{
		AssistantController: controller.NewAssistantController(assistantService),
		Logger:              sysLogger,
		KnowledgeProvider:   knowledgeProvider,
	}
}

// LoadKnowledgeBase reads and validates the knowledge document, then
// publishes it to the provider. Run it in the background so the server can
// accept requests while loading; queries arriving early get the
// data-not-ready message.
func (c *Container) LoadKnowledgeBase(path string) error {
	base, err := knowledge.Load(path)
	if err != nil {
		c.Logger.Error("bootstrap", "knowledge base load failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return err
	}
	c.KnowledgeProvider.Set(base)
	c.Logger.Info("bootstrap", "knowledge base loaded", map[string]interface{}{
		"path":        path,
		"specialties": len(base.Specialties),
		"medications": len(base.Medications),
	})
	return nil
}

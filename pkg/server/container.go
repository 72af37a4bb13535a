package server

import (
	"fmt"

	"lambda-http-bridge/internal/config"
	"lambda-http-bridge/internal/handlers"
	"lambda-http-bridge/pkg/lambda"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	Router  *gin.Engine
	Adapter *lambda.Adapter
	Schema  lambda.EventSchema
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	schema, err := lambda.ParseEventSchema(cfg.EventSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to select event schema: %w", err)
	}

	logger := logrus.StandardLogger()
	if err := ConfigureLogger(logger, cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}

	router := handlers.NewRouter(cfg)

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Router:  router,
		Adapter: lambda.NewHandlerAdapter(router, lambda.WithLogger(logger)),
		Schema:  schema,
	}, nil
}

// LambdaHandler returns the handler for the configured event schema
func (c *Container) LambdaHandler() (interface{}, error) {
	return c.Adapter.Handler(c.Schema)
}

// ConfigureLogger applies level and format settings to logger
func ConfigureLogger(logger *logrus.Logger, cfg config.LogConfig) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

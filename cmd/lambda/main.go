package main

import (
	"lambda-http-bridge/internal/config"
	"lambda-http-bridge/pkg/server"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"
)

var container *server.Container

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	container, err = server.NewContainer(cfg)
	if err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func main() {
	handler, err := container.LambdaHandler()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to select Lambda handler")
	}

	sc := config.GetServerlessConfig()
	logrus.WithFields(logrus.Fields{
		"function_name": sc.FunctionName,
		"version":       sc.Version,
		"stage":         sc.Stage,
		"event_schema":  container.Schema,
	}).Info("Starting Lambda runtime")

	awslambda.Start(handler)
}

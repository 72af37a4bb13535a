package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"lambda-http-bridge/internal/config"
	"lambda-http-bridge/internal/invoker"
	"lambda-http-bridge/pkg/server"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		eventPath = flag.String("event", "-", "Event JSON file, or - for stdin")
		schema    = flag.String("schema", "", "Event schema: apigw-v1, apigw-v2, alb, function-url (default from EVENT_SCHEMA)")
		function  = flag.String("function", "", "Invoke this deployed function instead of the local service")
		qualifier = flag.String("qualifier", "", "Version or alias of the deployed function")
		timeout   = flag.Duration("timeout", 30*time.Second, "Invocation timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if *schema != "" {
		cfg.EventSchema = *schema
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}

	payload, err := readEvent(*eventPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to read event")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	inv, err := newInvoker(ctx, cfg, *function, *qualifier)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create invoker")
	}

	out, err := inv.Invoke(ctx, payload)
	if err != nil {
		logrus.WithError(err).Fatal("Invocation failed")
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, out, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(out)
	}
	fmt.Println(pretty.String())
}

func newInvoker(ctx context.Context, cfg *config.Config, function, qualifier string) (invoker.Invoker, error) {
	if function != "" {
		logrus.WithFields(logrus.Fields{
			"function":  function,
			"qualifier": qualifier,
			"region":    cfg.AWS.Region,
		}).Info("Invoking deployed function")
		return invoker.NewRemote(ctx, cfg.AWS.Region, function, qualifier)
	}

	container, err := server.NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	// Logs go to stderr so stdout carries only the response
	container.Logger.SetOutput(os.Stderr)

	return invoker.NewLocal(container.Adapter, container.Schema, "local"), nil
}

func readEvent(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

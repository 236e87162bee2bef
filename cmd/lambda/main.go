package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/container"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to load configuration")
	}

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		config.Logger.WithError(err).Fatal("Failed to build container")
	}

	adapter := httpadapter.NewV2(c.Handler())
	lambda.Start(adapter.ProxyWithContext)
}

package main

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/mcastro/voteboard/go/internal/dynamoutil"
	"github.com/mcastro/voteboard/go/internal/storeconfig"
)

func setupStore(ctx context.Context) (*dynamodb.Client, storeconfig.Config, error) {
	cfg := storeconfig.NewConfigFromEnv()
	client, err := dynamoutil.NewClient(ctx, cfg)
	if err != nil {
		return nil, storeconfig.Config{}, err
	}
	return client, cfg, nil
}

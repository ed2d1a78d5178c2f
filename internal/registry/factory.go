package registry

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
)

func NewClientWithLogger(cfg aws.Config, logger RequestLogger) (Client, error) {
	if cfg.Region == "" {
		return nil, errors.New("aws region is required")
	}
	return newECRClient(ecr.NewFromConfig(cfg), logger), nil
}

// NewClientFromAPI wraps an already constructed ECR API implementation.
func NewClientFromAPI(api ECRAPI, logger RequestLogger) (Client, error) {
	if api == nil {
		return nil, errors.New("ecr api is required")
	}
	return newECRClient(api, logger), nil
}

package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconf "github.com/aws/aws-sdk-go-v2/config"
)

// DefaultRegion is used when neither flags, environment nor the shared
// config name a region.
const DefaultRegion = "us-east-1"

// Config selects the AWS account and region to talk to. Empty fields fall
// back to the SDK's default resolution chain.
type Config struct {
	Region      string
	Profile     string
	Credentials aws.CredentialsProvider
	Debug       bool
}

func (c *Config) Validate() error {
	region := strings.TrimSpace(c.Region)
	if c.Region != "" && region == "" {
		return errors.New("region must not be blank")
	}
	profile := strings.TrimSpace(c.Profile)
	if c.Profile != "" && profile == "" {
		return errors.New("profile must not be blank")
	}
	c.Region = region
	c.Profile = profile
	return nil
}

// LoadOptions returns the SDK load options for the explicitly set fields.
// Retries are disabled; every failure surfaces on the first attempt.
func (c Config) LoadOptions() []func(*awsconf.LoadOptions) error {
	opts := []func(*awsconf.LoadOptions) error{
		awsconf.WithRetryer(func() aws.Retryer {
			return aws.NopRetryer{}
		}),
	}
	if c.Region != "" {
		opts = append(opts, awsconf.WithRegion(c.Region))
	}
	if c.Profile != "" {
		opts = append(opts, awsconf.WithSharedConfigProfile(c.Profile))
	}
	if c.Credentials != nil {
		opts = append(opts, awsconf.WithCredentialsProvider(c.Credentials))
	}
	return opts
}

func (c Config) AWS(ctx context.Context) (aws.Config, error) {
	if err := c.Validate(); err != nil {
		return aws.Config{}, err
	}
	cfg, err := awsconf.LoadDefaultConfig(ctx, c.LoadOptions()...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	return cfg, nil
}

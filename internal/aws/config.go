package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// LocalEndpoint is where DynamoDB Local listens when running offline.
const LocalEndpoint = "http://localhost:8000"

const defaultRegion = "us-east-1"

// Settings selects how the shared AWS configuration is built.
type Settings struct {
	Region   string
	Endpoint string // explicit override, wins over Offline
	Offline  bool
}

// LoadAWSConfig builds the process-wide AWS configuration. Offline mode points
// every client at DynamoDB Local with static credentials.
func LoadAWSConfig(ctx context.Context, s Settings) (sdkaws.Config, error) {
	region := s.Region
	if region == "" {
		region = defaultRegion
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}

	endpoint := s.Endpoint
	if s.Offline {
		if endpoint == "" {
			endpoint = LocalEndpoint
		}
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}
	if endpoint != "" {
		opts = append(opts, config.WithBaseEndpoint(endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return cfg, nil
}

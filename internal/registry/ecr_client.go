package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/smithy-go"
	"github.com/opencontainers/go-digest"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

const (
	mediaTypeDockerManifest     = "application/vnd.docker.distribution.manifest.v2+json"
	mediaTypeDockerManifestList = "application/vnd.docker.distribution.manifest.list.v2+json"
)

// acceptedManifestTypes asks ECR to return manifests in the format they were
// pushed in instead of converting them.
var acceptedManifestTypes = []string{
	ocispec.MediaTypeImageManifest,
	ocispec.MediaTypeImageIndex,
	mediaTypeDockerManifest,
	mediaTypeDockerManifestList,
}

// ECRAPI is the subset of the ECR SDK client used here.
type ECRAPI interface {
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	DescribeImages(ctx context.Context, params *ecr.DescribeImagesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error)
	BatchGetImage(ctx context.Context, params *ecr.BatchGetImageInput, optFns ...func(*ecr.Options)) (*ecr.BatchGetImageOutput, error)
	PutImage(ctx context.Context, params *ecr.PutImageInput, optFns ...func(*ecr.Options)) (*ecr.PutImageOutput, error)
}

// ECRClient implements Client on top of Amazon ECR. Every method issues a
// single API call; nothing is paginated or retried.
type ECRClient struct {
	api    ECRAPI
	logger RequestLogger
}

func newECRClient(api ECRAPI, logger RequestLogger) *ECRClient {
	return &ECRClient{api: api, logger: logger}
}

func (c *ECRClient) ListRepositories(ctx context.Context) ([]Repository, error) {
	start := time.Now()
	out, err := c.api.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{})
	c.logRequest("DescribeRepositories", "", start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: describe repositories: %w", ErrRegistry, err)
	}
	if out == nil || out.Repositories == nil {
		return nil, fmt.Errorf("%w: describe repositories returned no repository list", ErrData)
	}

	repos := make([]Repository, 0, len(out.Repositories))
	for _, item := range out.Repositories {
		repo, err := repositoryFromECR(item)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

func (c *ECRClient) ListImages(ctx context.Context, repository string) ([]ImageRecord, error) {
	start := time.Now()
	out, err := c.api.DescribeImages(ctx, &ecr.DescribeImagesInput{
		RepositoryName: aws.String(repository),
	})
	c.logRequest("DescribeImages", repository, start, err)
	if err != nil {
		return nil, fmt.Errorf("%w: describe images in %s: %w", ErrRegistry, repository, err)
	}
	if out == nil || out.ImageDetails == nil {
		return nil, fmt.Errorf("%w: describe images in %s returned no image list", ErrData, repository)
	}

	images := make([]ImageRecord, 0, len(out.ImageDetails))
	for _, detail := range out.ImageDetails {
		record, err := imageRecordFromECR(detail)
		if err != nil {
			return nil, err
		}
		images = append(images, record)
	}
	return images, nil
}

func (c *ECRClient) FetchManifest(ctx context.Context, repository string, dgst digest.Digest) (Manifest, error) {
	start := time.Now()
	out, err := c.api.BatchGetImage(ctx, &ecr.BatchGetImageInput{
		RepositoryName: aws.String(repository),
		ImageIds: []types.ImageIdentifier{
			{ImageDigest: aws.String(dgst.String())},
		},
		AcceptedMediaTypes: acceptedManifestTypes,
	})
	c.logRequest("BatchGetImage", repository, start, err)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: get image %s@%s: %w", ErrRegistry, repository, dgst, err)
	}
	if out == nil || len(out.Images) == 0 {
		reason := "no image returned"
		if out != nil && len(out.Failures) > 0 {
			failure := out.Failures[0]
			reason = fmt.Sprintf("%s: %s", failure.FailureCode, aws.ToString(failure.FailureReason))
		}
		return Manifest{}, fmt.Errorf("%w: get image %s@%s: %s", ErrRegistry, repository, dgst, reason)
	}

	image := out.Images[0]
	if image.ImageManifest == nil {
		return Manifest{}, fmt.Errorf("%w: image %s@%s has no manifest", ErrData, repository, dgst)
	}
	if name := aws.ToString(image.RepositoryName); name != "" {
		repository = name
	}

	return Manifest{
		Repository: repository,
		Digest:     dgst,
		MediaType:  aws.ToString(image.ImageManifestMediaType),
		Body:       *image.ImageManifest,
	}, nil
}

func (c *ECRClient) PublishManifest(ctx context.Context, manifest Manifest, tag string) error {
	input := &ecr.PutImageInput{
		RepositoryName: aws.String(manifest.Repository),
		ImageManifest:  aws.String(manifest.Body),
		ImageTag:       aws.String(tag),
	}
	if manifest.MediaType != "" {
		input.ImageManifestMediaType = aws.String(manifest.MediaType)
	}
	if manifest.Digest != "" {
		input.ImageDigest = aws.String(manifest.Digest.String())
	}

	start := time.Now()
	_, err := c.api.PutImage(ctx, input)
	c.logRequest("PutImage", manifest.Repository, start, err)
	if err != nil {
		return fmt.Errorf("%w: put image %s:%s: %w", ErrRegistry, manifest.Repository, tag, err)
	}
	return nil
}

func (c *ECRClient) logRequest(operation, repository string, start time.Time, err error) {
	if c.logger == nil {
		return
	}
	c.logger(RequestLog{
		Operation:  operation,
		Repository: repository,
		Duration:   time.Since(start),
		Code:       errorCode(err),
		Err:        err,
	})
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

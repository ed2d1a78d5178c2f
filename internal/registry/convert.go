package registry

import (
	_ "crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/opencontainers/go-digest"
)

func repositoryFromECR(repo types.Repository) (Repository, error) {
	name := strings.TrimSpace(aws.ToString(repo.RepositoryName))
	if name == "" {
		return Repository{}, fmt.Errorf("%w: repository without a name", ErrData)
	}
	return Repository{Name: name, URI: aws.ToString(repo.RepositoryUri)}, nil
}

func imageRecordFromECR(detail types.ImageDetail) (ImageRecord, error) {
	repository := aws.ToString(detail.RepositoryName)
	if repository == "" {
		return ImageRecord{}, fmt.Errorf("%w: image without a repository name", ErrData)
	}
	if detail.ImageDigest == nil {
		return ImageRecord{}, fmt.Errorf("%w: image in %s without a digest", ErrData, repository)
	}
	dgst, err := digest.Parse(*detail.ImageDigest)
	if err != nil {
		return ImageRecord{}, fmt.Errorf("%w: image in %s has invalid digest %q: %w", ErrData, repository, *detail.ImageDigest, err)
	}
	if detail.ImagePushedAt == nil {
		return ImageRecord{}, fmt.Errorf("%w: image %s@%s without a push timestamp", ErrData, repository, dgst)
	}

	tags := make([]string, len(detail.ImageTags))
	copy(tags, detail.ImageTags)

	return ImageRecord{
		Tags:       tags,
		Digest:     dgst,
		Created:    detail.ImagePushedAt.UTC().Truncate(time.Second),
		Repository: repository,
	}, nil
}

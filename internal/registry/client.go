package registry

import (
	"context"

	"github.com/opencontainers/go-digest"
)

// LatestTag is the tag a promoted image is published under.
const LatestTag = "latest"

type Client interface {
	ListRepositories(ctx context.Context) ([]Repository, error)
	ListImages(ctx context.Context, repository string) ([]ImageRecord, error)
	FetchManifest(ctx context.Context, repository string, dgst digest.Digest) (Manifest, error)
	PublishManifest(ctx context.Context, manifest Manifest, tag string) error
}

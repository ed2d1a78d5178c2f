package promote

import (
	"context"
	"errors"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/rs/zerolog"

	"github.com/scottbass3/ecr-promote/internal/registry"
	"github.com/scottbass3/ecr-promote/internal/tui"
)

var (
	ErrEmptyResult    = errors.New("nothing to select")
	ErrNoRepositories = fmt.Errorf("%w: no repositories found", ErrEmptyResult)
	ErrNoImages       = fmt.Errorf("%w: no images found", ErrEmptyResult)
)

const (
	repositoryPrompt = "repository:"
	imagePrompt      = "image:"
)

// SelectFunc asks the user to pick one of labels and returns its index.
type SelectFunc func(ctx context.Context, title string, labels []string) (int, error)

type Promoter struct {
	Client registry.Client
	Select SelectFunc
	Logger zerolog.Logger
	// Tag defaults to registry.LatestTag.
	Tag string
}

type Result struct {
	Repository string
	Digest     digest.Digest
	Tag        string
	// Pull is the docker pull reference of the promoted tag; empty when the
	// registry did not report a repository URI.
	Pull        string
	PullCommand string
}

// Run walks through repository and image selection and publishes the chosen
// image's manifest under the promotion tag. Every step depends on the one
// before it; the first error ends the run.
func (p *Promoter) Run(ctx context.Context) (Result, error) {
	if p.Client == nil {
		return Result{}, errors.New("registry client is required")
	}
	if p.Select == nil {
		return Result{}, errors.New("select func is required")
	}
	tag := p.Tag
	if tag == "" {
		tag = registry.LatestTag
	}

	repos, err := p.Client.ListRepositories(ctx)
	if err != nil {
		return Result{}, err
	}
	p.Logger.Debug().Int("count", len(repos)).Msg("listed repositories")
	if len(repos) == 0 {
		return Result{}, ErrNoRepositories
	}

	repo, err := choose(ctx, p.Select, repositoryPrompt, repos, tui.RepositoryLabel)
	if err != nil {
		return Result{}, err
	}
	p.Logger.Debug().Str("repository", repo.Name).Msg("repository selected")

	images, err := p.Client.ListImages(ctx, repo.Name)
	if err != nil {
		return Result{}, err
	}
	p.Logger.Debug().Str("repository", repo.Name).Int("count", len(images)).Msg("listed images")
	if len(images) == 0 {
		return Result{}, fmt.Errorf("%w in %s", ErrNoImages, repo.Name)
	}
	tui.SortNewestFirst(images)

	image, err := choose(ctx, p.Select, imagePrompt, images, tui.ImageLabel)
	if err != nil {
		return Result{}, err
	}
	p.Logger.Debug().
		Str("repository", image.Repository).
		Str("digest", image.Digest.String()).
		Strs("tags", image.Tags).
		Msg("image selected")

	manifest, err := p.Client.FetchManifest(ctx, image.Repository, image.Digest)
	if err != nil {
		return Result{}, err
	}
	p.Logger.Debug().
		Str("repository", manifest.Repository).
		Str("media_type", manifest.MediaType).
		Int("bytes", len(manifest.Body)).
		Msg("fetched manifest")

	if err := p.Client.PublishManifest(ctx, manifest, tag); err != nil {
		return Result{}, err
	}

	result := Result{Repository: manifest.Repository, Digest: image.Digest, Tag: tag}
	if repo.URI != "" {
		result.Pull = registry.PullReference(repo.URI, tag)
		result.PullCommand = registry.PullCommand(repo.URI, tag)
	}
	event := p.Logger.Info().
		Str("repository", result.Repository).
		Str("digest", result.Digest.String()).
		Str("tag", result.Tag)
	if result.Pull != "" {
		event = event.Str("pull", result.PullCommand)
	}
	event.Msg("image promoted")
	return result, nil
}

func choose[T any](ctx context.Context, sel SelectFunc, title string, items []T, label func(T) string) (T, error) {
	var zero T
	index, err := sel(ctx, title, tui.Labels(items, label))
	if err != nil {
		return zero, err
	}
	if index < 0 || index >= len(items) {
		return zero, fmt.Errorf("selection index %d out of range", index)
	}
	return items[index], nil
}

package registry

import (
	"time"

	"github.com/opencontainers/go-digest"
)

type Repository struct {
	Name string
	// URI is the pull location reported by the registry, when known.
	URI string
}

// ImageRecord describes one image stored in a repository. Tags keep the order
// the registry reported them in.
type ImageRecord struct {
	Tags       []string
	Digest     digest.Digest
	Created    time.Time
	Repository string
}

// Manifest is the raw manifest document of a single image. Body is passed
// back to the registry untouched when the image is retagged.
type Manifest struct {
	Repository string
	Digest     digest.Digest
	MediaType  string
	Body       string
}

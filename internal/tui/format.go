package tui

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/scottbass3/ecr-promote/internal/registry"
)

// labelTimeLayout is RFC 3339 with a numeric offset, so UTC reads "+00:00".
const labelTimeLayout = "2006-01-02T15:04:05-07:00"

func RepositoryLabel(repo registry.Repository) string {
	return repo.Name
}

// ImageLabel renders "<created> - <digest>" followed by " - <tags>" when the
// image carries any tags.
func ImageLabel(image registry.ImageRecord) string {
	label := image.Created.UTC().Format(labelTimeLayout) + " - " + image.Digest.String()
	if len(image.Tags) == 0 {
		return label
	}
	return label + " - " + strings.Join(image.Tags, ", ")
}

// SortNewestFirst sorts ascending by creation time and then reverses the
// slice, so images pushed in the same second come out in reverse input order.
func SortNewestFirst(images []registry.ImageRecord) {
	slices.SortStableFunc(images, func(a, b registry.ImageRecord) int {
		return a.Created.Compare(b.Created)
	})
	slices.Reverse(images)
}

func Labels[T any](items []T, label func(T) string) []string {
	return lo.Map(items, func(item T, _ int) string {
		return label(item)
	})
}

package registry

import (
	"fmt"
	"strings"
)

func PullCommand(repositoryURI, tag string) string {
	return fmt.Sprintf("docker pull %s", PullReference(repositoryURI, tag))
}

// PullReference joins a repository URI such as
// 123456789012.dkr.ecr.eu-west-1.amazonaws.com/team/web with a tag.
func PullReference(repositoryURI, tag string) string {
	repositoryURI = strings.TrimSpace(repositoryURI)
	if i := strings.Index(repositoryURI, "://"); i >= 0 {
		repositoryURI = repositoryURI[i+3:]
	}
	repositoryURI = strings.Trim(repositoryURI, "/")
	if tag == "" {
		tag = LatestTag
	}
	return fmt.Sprintf("%s:%s", repositoryURI, tag)
}

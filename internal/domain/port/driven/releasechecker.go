package driven

import "context"

// ReleaseChecker looks up the most recent published release of a repository.
type ReleaseChecker interface {
	// LatestRelease returns the tag name of the latest release of repoFullName
	// ("owner/repo").
	LatestRelease(ctx context.Context, repoFullName string) (string, error)
}

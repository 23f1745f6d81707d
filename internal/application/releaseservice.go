package application

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
)

// ReleaseService tracks the latest upstream release of the plugin. The
// latest tag is held behind a mutex so HTTP handlers can read it while a
// check runs.
type ReleaseService struct {
	checker driven.ReleaseChecker
	repo    string
	current string
	logger  *slog.Logger

	mu     sync.RWMutex
	latest string
}

// NewReleaseService creates a ReleaseService. checker may be nil, in which
// case Check is a no-op.
func NewReleaseService(checker driven.ReleaseChecker, repo, current string, logger *slog.Logger) *ReleaseService {
	return &ReleaseService{
		checker: checker,
		repo:    repo,
		current: current,
		logger:  logger,
	}
}

// Check fetches the latest release and logs a warning when the running
// version is older. Lookup failures are logged and otherwise ignored.
func (s *ReleaseService) Check(ctx context.Context) {
	if s.checker == nil || s.repo == "" {
		return
	}

	tag, err := s.checker.LatestRelease(ctx, s.repo)
	if err != nil {
		s.logger.WarnContext(ctx, "release check failed", "repo", s.repo, "error", err)
		return
	}

	s.mu.Lock()
	s.latest = tag
	s.mu.Unlock()

	if IsNewerVersion(tag, s.current) {
		s.logger.WarnContext(ctx, "newer release available", "repo", s.repo, "current", s.current, "latest", tag)
		return
	}

	s.logger.InfoContext(ctx, "running latest release", "repo", s.repo, "version", s.current)
}

// Latest returns the last fetched release tag and whether one is known.
func (s *ReleaseService) Latest() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != ""
}

// IsNewerVersion reports whether candidate is a strictly greater semantic
// version than current. Tags may omit the leading "v". Invalid versions are
// never newer.
func IsNewerVersion(candidate, current string) bool {
	c, cur := canonicalVersion(candidate), canonicalVersion(current)
	if !semver.IsValid(c) || !semver.IsValid(cur) {
		return false
	}
	return semver.Compare(c, cur) > 0
}

func canonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

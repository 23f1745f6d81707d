// Package application contains use-case orchestration services.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// FlagSource resolves feature flags for one plugin. IsReady reports whether
// the underlying flag store is usable at all, which is distinct from a flag
// being unset.
type FlagSource interface {
	IsReady(ctx context.Context) bool
	Flags(ctx context.Context) (map[string]bool, error)
}

// ReadinessService emits the one-time startup diagnostics of a plugin app.
// It only logs and holds no state, so running it twice is harmless.
type ReadinessService struct {
	logger *slog.Logger
}

// NewReadinessService creates a ReadinessService that writes to logger.
func NewReadinessService(logger *slog.Logger) *ReadinessService {
	return &ReadinessService{logger: logger}
}

// Ready logs the app version, the number of waffle switches the app declares
// and, when the flag store is ready, whether each switch is enabled. Enabled
// switches log at info level and disabled ones at warn level, in name order.
func (s *ReadinessService) Ready(ctx context.Context, label, version string, flags FlagSource) {
	s.logger.InfoContext(ctx, fmt.Sprintf("%s version %s is ready.", label, version))

	switches, err := flags.Flags(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, fmt.Sprintf("%s waffle switches unavailable.", label), "error", err)
		switches = nil
	}

	s.logger.InfoContext(ctx, fmt.Sprintf("%s %d waffle switches detected.", label, len(switches)))

	if !flags.IsReady(ctx) {
		return
	}

	names := make([]string, 0, len(switches))
	for name := range switches {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if switches[name] {
			s.logger.InfoContext(ctx, fmt.Sprintf("WaffleSwitch %s is enabled.", name))
		} else {
			s.logger.WarnContext(ctx, fmt.Sprintf("WaffleSwitch %s is not enabled.", name))
		}
	}
}

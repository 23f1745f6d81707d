package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ FlagSource = (*SwitchSet)(nil)

// SwitchSet is the FlagSource for the waffle switches one plugin declares.
type SwitchSet struct {
	store driven.SwitchStore
	names []string
}

// NewSwitchSet creates a SwitchSet resolving names against store.
func NewSwitchSet(store driven.SwitchStore, names ...string) *SwitchSet {
	return &SwitchSet{store: store, names: append([]string(nil), names...)}
}

// Names returns the declared switch names.
func (s *SwitchSet) Names() []string {
	return append([]string(nil), s.names...)
}

// IsReady reports whether the switch store can be queried.
func (s *SwitchSet) IsReady(ctx context.Context) bool {
	return s.store.IsReady(ctx)
}

// Flags resolves every declared switch. Unset switches resolve to false.
func (s *SwitchSet) Flags(ctx context.Context) (map[string]bool, error) {
	flags := make(map[string]bool, len(s.names))
	for _, name := range s.names {
		active, err := s.store.IsActive(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve switch %s: %w", name, err)
		}
		flags[name] = active
	}
	return flags, nil
}

// IsActive reports whether a single switch is enabled. Store errors resolve
// to false.
func (s *SwitchSet) IsActive(ctx context.Context, name string) bool {
	active, err := s.store.IsActive(ctx, name)
	return err == nil && active
}

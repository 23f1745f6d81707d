package driven

import (
	"context"

	"github.com/ericfisherdev/openedx-plugin/internal/domain/model"
)

// SwitchStore defines the driven port for the waffle switch flag store.
// IsReady reports whether the store itself is usable; it is distinct from a
// switch being unset, which IsActive reports as (false, nil).
type SwitchStore interface {
	IsReady(ctx context.Context) bool
	IsActive(ctx context.Context, name string) (bool, error)
	Set(ctx context.Context, name string, active bool, note string) error
	Delete(ctx context.Context, name string) error
	ListAll(ctx context.Context) ([]model.WaffleSwitch, error)
}

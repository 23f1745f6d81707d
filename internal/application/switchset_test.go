package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/openedx-plugin/internal/application"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/model"
)

// mockSwitchStore implements driven.SwitchStore over an in-memory map.
type mockSwitchStore struct {
	ready    bool
	switches map[string]bool
	err      error
}

func (m *mockSwitchStore) IsReady(context.Context) bool { return m.ready }
func (m *mockSwitchStore) IsActive(_ context.Context, name string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.switches[name], nil
}
func (m *mockSwitchStore) Set(_ context.Context, name string, active bool, _ string) error {
	m.switches[name] = active
	return nil
}
func (m *mockSwitchStore) Delete(_ context.Context, name string) error {
	delete(m.switches, name)
	return nil
}
func (m *mockSwitchStore) ListAll(context.Context) ([]model.WaffleSwitch, error) {
	return nil, nil
}

func TestSwitchSet_ResolvesDeclaredNames(t *testing.T) {
	store := &mockSwitchStore{ready: true, switches: map[string]bool{"a": true, "other": true}}
	set := application.NewSwitchSet(store, "a", "b")

	flags, err := set.Flags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"a": true, "b": false}, flags)
	assert.True(t, set.IsReady(context.Background()))
	assert.Equal(t, []string{"a", "b"}, set.Names())
}

func TestSwitchSet_PropagatesStoreErrors(t *testing.T) {
	store := &mockSwitchStore{err: errors.New("no such table: waffle_switch")}
	set := application.NewSwitchSet(store, "a")

	_, err := set.Flags(context.Background())
	assert.Error(t, err)
	assert.False(t, set.IsActive(context.Background(), "a"))
}

func TestSwitchSet_IsActive(t *testing.T) {
	store := &mockSwitchStore{ready: true, switches: map[string]bool{"a": true}}
	set := application.NewSwitchSet(store, "a")

	assert.True(t, set.IsActive(context.Background(), "a"))
	assert.False(t, set.IsActive(context.Background(), "b"))
}

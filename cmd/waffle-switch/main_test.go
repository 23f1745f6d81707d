package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteadapter "github.com/ericfisherdev/openedx-plugin/internal/adapter/driven/sqlite"
)

func setupStore(t *testing.T) *sqliteadapter.WaffleSwitchRepo {
	t.Helper()

	db, err := sqliteadapter.NewMemoryDB(context.Background(), t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqliteadapter.RunMigrations(db.Writer))
	return sqliteadapter.NewWaffleSwitchRepo(db)
}

func TestExecute_CreateAndToggle(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	var out bytes.Buffer

	require.NoError(t, execute(ctx, store, []string{"-create", "-note", "rollout", "feature.x", "on"}, &out))
	assert.Equal(t, "feature.x: on\n", out.String())

	active, err := store.IsActive(ctx, "feature.x")
	require.NoError(t, err)
	assert.True(t, active)

	out.Reset()
	require.NoError(t, execute(ctx, store, []string{"feature.x", "off"}, &out))

	active, err = store.IsActive(ctx, "feature.x")
	require.NoError(t, err)
	assert.False(t, active)

	all, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "rollout", all[0].Note)
}

func TestExecute_MissingSwitchWithoutCreate(t *testing.T) {
	store := setupStore(t)

	err := execute(context.Background(), store, []string{"feature.y", "on"}, &bytes.Buffer{})
	require.ErrorIs(t, err, errSwitchMissing)

	all, err := store.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecute_List(t *testing.T) {
	ctx := context.Background()
	store := setupStore(t)
	require.NoError(t, store.Set(ctx, "b.switch", false, ""))
	require.NoError(t, store.Set(ctx, "a.switch", true, ""))

	var out bytes.Buffer
	require.NoError(t, execute(ctx, store, []string{"-list"}, &out))
	assert.Equal(t, "Switches:\na.switch: on\nb.switch: off\n", out.String())
}

func TestExecute_UsageErrors(t *testing.T) {
	store := setupStore(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"missing state", []string{"feature.x"}},
		{"bad state", []string{"feature.x", "maybe"}},
		{"unknown flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(context.Background(), store, tt.args, &bytes.Buffer{})
			assert.ErrorIs(t, err, errUsage)
		})
	}
}

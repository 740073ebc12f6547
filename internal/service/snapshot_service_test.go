package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validateStoreBackup(path string) error {
	return database.ValidateBackup(path, "products", "sales", "stock_journal", "users", "configuration")
}

func newSnapshotService(e *testEnv, dir string) *snapshotService {
	return NewSnapshotService(e.store, dir, validateStoreBackup, e.sessions, e.hub).(*snapshotService)
}

func TestSnapshotNaming(t *testing.T) {
	e := newTestEnv(t)
	dir := filepath.Join(t.TempDir(), "backups")
	svc := newSnapshotService(e, dir)
	svc.now, _ = clock(at("2024-06-07 08:09:10"))

	path := svc.Snapshot("tester")
	require.NotEmpty(t, path)
	assert.Equal(t, filepath.Join(dir, "backup_20240607_080910.db"), path)
	_, err := os.Stat(path)
	assert.NoError(t, err)

	// Same second: the target exists, so the snapshot fails without error.
	assert.Empty(t, svc.Snapshot("tester"))

	backups, err := svc.List()
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, "backup_20240607_080910.db", backups[0].Name)
}

func TestRestoreRevertsStoreAndClearsCarts(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 10)
	svc := newSnapshotService(e, t.TempDir())

	path := svc.Snapshot("tester")
	require.NotEmpty(t, path)

	require.NoError(t, e.sales.Sell(p.ID, 4))
	e.addProduct(t, "Beer", 1500, 3)
	sess := e.sessions.Create(1, "manager", model.RoleManager)
	require.NoError(t, sess.Cart.AddLine(p.ID, 1))

	require.True(t, svc.Restore(path, "tester"))

	assert.Equal(t, 10, e.quantity(t, p.ID))
	products, err := e.catalog.List("")
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Zero(t, e.countSales(t))
	assert.Equal(t, 0, sess.Cart.Len())
	assert.Contains(t, e.hub.actions(), "store_restored")

	// Repositories keep working on the reopened handle.
	require.NoError(t, e.sales.Sell(p.ID, 1))
	assert.Equal(t, 9, e.quantity(t, p.ID))
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 10)
	svc := newSnapshotService(e, t.TempDir())
	sess := e.sessions.Create(1, "manager", model.RoleManager)
	require.NoError(t, sess.Cart.AddLine(p.ID, 1))

	garbage := filepath.Join(t.TempDir(), "backup_garbage.db")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a database file at all, sorry"), 0o644))

	assert.False(t, svc.Restore(garbage, "tester"))
	assert.False(t, svc.Restore(filepath.Join(t.TempDir(), "missing.db"), "tester"))

	assert.Equal(t, 10, e.quantity(t, p.ID))
	assert.Equal(t, 1, sess.Cart.Len())
}

type brokenStore struct {
	path string
}

func (b brokenStore) Path() string                 { return b.path }
func (b brokenStore) SnapshotTo(string) error      { return errors.New("disk full") }
func (b brokenStore) RestoreFrom(src string) error { return errors.New("disk full") }

func TestSnapshotFailuresReturnEmptyPath(t *testing.T) {
	svc := NewSnapshotService(brokenStore{}, t.TempDir(), nil, nil, nil)
	assert.Empty(t, svc.Snapshot("tester"), "server-backed store")

	svc = NewSnapshotService(brokenStore{path: "store.db"}, t.TempDir(), nil, nil, nil)
	assert.Empty(t, svc.Snapshot("tester"))
	assert.False(t, svc.Restore("whatever.db", "tester"))
}

func TestListMissingDirectory(t *testing.T) {
	svc := NewSnapshotService(brokenStore{}, filepath.Join(t.TempDir(), "nope"), nil, nil, nil)
	backups, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestRestoreEndsSessionsOfMissingUsers(t *testing.T) {
	e := newTestEnv(t)
	seedUsers(t, e)
	svc := newSnapshotService(e, t.TempDir())

	path := svc.Snapshot("tester")
	require.NotEmpty(t, path)

	_, err := e.users.CreateUser(&CreateUserRequest{Username: "bob", Password: "abcd", Role: model.RoleSeller})
	require.NoError(t, err)
	bob, err := e.auth.Login("bob", "abcd")
	require.NoError(t, err)
	manager, err := e.auth.Login("manager", "admin123")
	require.NoError(t, err)

	require.True(t, svc.Restore(path, "tester"))

	_, err = e.auth.ValidateToken(bob.Token)
	assert.Error(t, err)
	_, err = e.auth.ValidateToken(manager.Token)
	assert.NoError(t, err)
}

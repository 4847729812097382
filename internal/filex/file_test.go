package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "database", "admin", "default")

	require.NoError(t, EnsureDir(want))

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "account")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o660))

	require.Error(t, EnsureDir(path), "should fail when a file exists with the same name")
}

func TestExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "users.csv")

	ok, err := Exists(path)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("admin\n"), 0o660))

	ok, err = Exists(path)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLayout_Paths(t *testing.T) {
	l := NewLayout("/srv/csvdb")

	require.Equal(t, filepath.Join("/srv/csvdb", "account"), l.AccountsPath())
	require.Equal(t, filepath.Join("/srv/csvdb", "account", "users.csv"), l.RegistryPath())
	require.Equal(t, filepath.Join("/srv/csvdb", "account", "bob"), l.UserDir("bob"))
	require.Equal(t, filepath.Join("/srv/csvdb", "account", "bob", "bob.csv"), l.CredentialPath("bob"))
	require.Equal(t, filepath.Join("/srv/csvdb", "database", "bob", "shop"), l.DatabasePath("bob", "shop"))
	require.Equal(t, filepath.Join("/srv/csvdb", "database", "bob", "shop", "items.csv"), l.TablePath("bob", "shop", "items"))
}

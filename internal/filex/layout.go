package filex

import "path/filepath"

const (
	AccountDir   = "account"
	DatabaseDir  = "database"
	RegistryFile = "users.csv"
	FileExt      = ".csv"
)

// Layout resolves every path csvdb reads or writes under one root:
//
//	<root>/account/users.csv
//	<root>/account/<user>/<user>.csv
//	<root>/database/<owner>/<db>/<table>.csv
type Layout struct {
	Root string
}

func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// AccountsPath returns <root>/account.
func (l Layout) AccountsPath() string {
	return filepath.Join(l.Root, AccountDir)
}

// RegistryPath returns the global user registry file.
func (l Layout) RegistryPath() string {
	return filepath.Join(l.AccountsPath(), RegistryFile)
}

// UserDir returns the directory holding a user's credential file.
func (l Layout) UserDir(user string) string {
	return filepath.Join(l.AccountsPath(), user)
}

// CredentialPath returns <root>/account/<user>/<user>.csv.
func (l Layout) CredentialPath(user string) string {
	return filepath.Join(l.UserDir(user), user+FileExt)
}

// DatabasePath returns the directory of one database.
func (l Layout) DatabasePath(owner, db string) string {
	return filepath.Join(l.Root, DatabaseDir, owner, db)
}

// TablePath returns the row file of one table.
func (l Layout) TablePath(owner, db, table string) string {
	return filepath.Join(l.DatabasePath(owner, db), table+FileExt)
}

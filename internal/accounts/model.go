package accounts

import (
	"slices"

	"github.com/dmitrijs2005/csvdb/internal/storage"
)

// User is the persisted account record.
type User struct {
	Name       string
	Credential string
	Databases  []string
}

// Account is an authenticated user together with the live databases it owns.
type Account struct {
	user      *User
	databases map[string]*storage.Database
}

func newAccount(u *User) *Account {
	return &Account{user: u, databases: make(map[string]*storage.Database)}
}

func (a *Account) Name() string { return a.user.Name }

// DatabaseNames returns the owned database names, sorted.
func (a *Account) DatabaseNames() []string {
	names := make([]string, 0, len(a.databases))
	for name := range a.databases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Database returns an owned database.
func (a *Account) Database(name string) (*storage.Database, bool) {
	db, ok := a.databases[name]
	return db, ok
}

func (a *Account) Owns(name string) bool {
	_, ok := a.databases[name]
	return ok
}

package query

import (
	"bytes"
	"context"
	"errors"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/dmitrijs2005/csvdb/internal/accounts"
	"github.com/dmitrijs2005/csvdb/internal/codec"
	"github.com/dmitrijs2005/csvdb/internal/common"
	"github.com/dmitrijs2005/csvdb/internal/cryptox"
	"github.com/dmitrijs2005/csvdb/internal/filex"
	"github.com/dmitrijs2005/csvdb/internal/logging"
	"github.com/dmitrijs2005/csvdb/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rowIDPattern = regexp.MustCompile(`^[0-9a-z]{12}$`)

type stubPrompter struct {
	name     string
	password string
	err      error
}

func (p *stubPrompter) Credentials(context.Context) (string, []byte, error) {
	return p.name, []byte(p.password), p.err
}

type session struct {
	in       *Interpreter
	prompter *stubPrompter
	svc      *accounts.Service
	layout   filex.Layout
}

func newSession(t *testing.T) *session {
	t.Helper()

	layout := filex.NewLayout(t.TempDir())
	catalog := storage.NewCatalog(layout, storage.Options{
		Logger: logging.Discard(),
		IDs:    storage.NewSeededIDGenerator(7),
	})
	svc := accounts.NewService(accounts.NewFileRepository(layout), catalog, cryptox.PlainVerifier{}, logging.Discard())

	_, err := svc.EnsureBootstrap(context.Background())
	require.NoError(t, err)

	p := &stubPrompter{name: accounts.AdminUser, password: accounts.AdminPassword}
	return &session{
		in:       NewInterpreter(svc, p, logging.Discard()),
		prompter: p,
		svc:      svc,
		layout:   layout,
	}
}

func (s *session) exec(line string) string {
	return s.in.Execute(context.Background(), line)
}

func (s *session) loginAdmin(t *testing.T) {
	t.Helper()
	s.prompter.name, s.prompter.password = accounts.AdminUser, accounts.AdminPassword
	require.Equal(t, "Successfully logged in as admin", s.exec("login"))
}

func TestExecute_Gates(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, "Empty query", s.exec(""))
	assert.Equal(t, "Empty query", s.exec("  ;"))
	assert.Equal(t, "Usage: login", s.exec("login admin"))

	for _, line := range []string{
		"show",
		"show tables",
		"create shop",
		"open default",
		"drop default",
		"create table items (a)",
		"insert into items (a)",
		"insert into items",
		"delete from items id:x",
		"select from items",
		"select from",
		"frobnicate",
	} {
		assert.Equal(t, msgNotLoggedIn, s.exec(line), line)
	}

	s.loginAdmin(t)

	for _, line := range []string{
		"create table items (a)",
		"create table items",
		"insert into items (a)",
		"insert into items",
		"delete from items id:x",
		"select from items -3",
		"frobnicate",
	} {
		assert.Equal(t, msgNoDatabase, s.exec(line), line)
	}

	require.Contains(t, s.exec("open default"), "Opened database 'default'")
	assert.Equal(t, "Unknown command", s.exec("frobnicate"))
	assert.Equal(t, UsageInsert, s.exec("insert into items"))
	assert.Equal(t, UsageSelect, s.exec("select from items -3"))
	assert.Equal(t, UsageShow, s.exec("show tables"))
}

func TestExecute_Login(t *testing.T) {
	s := newSession(t)

	s.prompter.password = "wrong"
	assert.Equal(t, "Login failed", s.exec("login"))
	assert.Empty(t, s.in.UserName())
	assert.Equal(t, msgNotLoggedIn, s.exec("show"))

	s.prompter.name = "ghost"
	assert.Equal(t, "Login failed", s.exec("login"))

	s.prompter.err = errors.New("terminal closed")
	assert.Equal(t, "Login failed", s.exec("login"))
	s.prompter.err = nil

	s.loginAdmin(t)
	assert.Equal(t, "admin", s.in.UserName())
	assert.Equal(t, "Available databases:\n- default", s.exec("show"))
}

func TestExecute_FailedLoginKeepsSession(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")

	s.prompter.password = "nope"
	assert.Equal(t, "Login failed", s.exec("login"))
	assert.Equal(t, "admin", s.in.UserName())
	assert.Equal(t, "default", s.in.DatabaseName())
}

func TestExecute_LoginReplacesSession(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.svc.CreateUser(context.Background(), "alice", []byte("secret")))

	s.loginAdmin(t)
	s.exec("open default")

	s.prompter.name, s.prompter.password = "alice", "secret"
	assert.Equal(t, "Successfully logged in as alice", s.exec("login"))
	assert.Equal(t, "alice", s.in.UserName())
	assert.Empty(t, s.in.DatabaseName())
	assert.Equal(t, "Available databases:", s.exec("show"))
	assert.Equal(t, "Database not found or access denied", s.exec("open default"))
}

func TestExecute_Logout(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")

	s.in.Logout()
	assert.Empty(t, s.in.UserName())
	assert.Empty(t, s.in.DatabaseName())
	assert.Equal(t, msgNotLoggedIn, s.exec("show"))
}

func TestExecute_CreateDatabaseThenShow(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)

	assert.Equal(t, "Database 'shop' created successfully", s.exec("create shop"))
	assert.Equal(t, "Database 'shop' already exists", s.exec("create shop"))
	assert.Equal(t, "Invalid database name '..'", s.exec("create .."))

	out := s.exec("show")
	assert.Equal(t, "Available databases:\n- default\n- shop", out)
	assert.Equal(t, 1, strings.Count(out, "- shop"))
}

func TestExecute_OpenLogsDatabaseLocation(t *testing.T) {
	s := newSession(t)
	var logs bytes.Buffer
	logger, err := logging.New(&logs, "debug", "text")
	require.NoError(t, err)
	s.in.logger = logger

	s.loginAdmin(t)
	require.Equal(t, "Opened database 'default'\nAvailable tables:", s.exec("open default"))

	assert.Contains(t, logs.String(), "database opened")
	assert.Contains(t, logs.String(), "owner=admin")
	assert.Contains(t, logs.String(), "path="+s.layout.DatabasePath("admin", "default"))
}

func TestExecute_BareCreateTable(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")

	assert.Equal(t, UsageCreateTable, s.exec("create table"))
	assert.Equal(t, UsageCreateTable, s.exec("create table;"))

	s.in.Logout()
	s.loginAdmin(t)
	assert.Equal(t, "Available databases:\n- default", s.exec("show"))

	assert.Equal(t, "Database 'table' created successfully", s.exec("create table"))
	assert.Equal(t, "Available databases:\n- default\n- table", s.exec("show"))
}

func TestExecute_CreateTableFreeFormFields(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")

	require.Equal(t, "Table 'people' created successfully", s.exec("create table people (first name, age)"))
	require.Equal(t, "Table 't2' created successfully", s.exec("create table t2 (price:usd, qty)"))

	id := strings.TrimPrefix(s.exec("insert into people (Ada Lovelace, 36)"), "Inserted row ")
	assert.Equal(t, "unique_id,first name,age\n"+id+",Ada Lovelace,36", s.exec("select from people"))
}

func TestExecute_ShopScenario(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)

	require.Equal(t, "Database 'shop' created successfully", s.exec("create shop"))
	require.Equal(t, "Opened database 'shop'\nAvailable tables:", s.exec("open shop"))
	require.Equal(t, "Table 'items' created successfully", s.exec("create table items (name, price)"))
	assert.Equal(t, "Table 'items' already exists", s.exec("create table items (a)"))

	out := s.exec("insert into items (widget, 9.99)")
	require.True(t, strings.HasPrefix(out, "Inserted row "), out)
	id := strings.TrimPrefix(out, "Inserted row ")
	assert.Regexp(t, rowIDPattern, id)

	assert.Equal(t, "unique_id,name,price\n"+id+",widget,9.99", s.exec("select from items"))
	assert.Equal(t, "Opened database 'shop'\nAvailable tables:\n- items", s.exec("open shop"))

	lines, err := codec.ReadLines(s.layout.TablePath("admin", "shop", "items"))
	require.NoError(t, err)
	assert.Equal(t, []string{"unique_id,name,price", id + ",widget,9.99"}, lines)
}

func TestExecute_InsertMismatchWritesNothing(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")
	s.exec("create table items (name, price)")

	assert.Equal(t, "Failed to insert data: expected 2 values, got 1", s.exec("insert into items (widget)"))
	assert.Equal(t, "Failed to insert data: expected 2 values, got 3", s.exec("insert into items (a, b, c)"))
	assert.Equal(t, "Table not found", s.exec("insert into gadgets (a, b)"))

	assert.Equal(t, "unique_id,name,price", s.exec("select from items"))
}

func TestExecute_SelectLimitAndLast(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")
	s.exec("create table nums (n)")

	var ids []string
	for _, v := range []string{"1", "2", "3"} {
		out := s.exec("insert into nums (" + v + ")")
		ids = append(ids, strings.TrimPrefix(out, "Inserted row "))
	}

	row := func(i int) string { return ids[i] + "," + []string{"1", "2", "3"}[i] }

	assert.Equal(t, "unique_id,n\n"+row(0)+"\n"+row(1), s.exec("select from nums 2"))
	assert.Equal(t, "unique_id,n\n"+row(1)+"\n"+row(2), s.exec("select from nums 2 last"))
	assert.Equal(t, "unique_id,n\n"+row(0)+"\n"+row(1)+"\n"+row(2), s.exec("select from nums 5 last"))
	assert.Equal(t, "unique_id,n\n"+row(0)+"\n"+row(1)+"\n"+row(2), s.exec("select from nums last"))
	assert.Equal(t, "Table not found", s.exec("select from missing"))
}

func TestExecute_SelectUnreadableTable(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")
	s.exec("create table items (a)")

	require.NoError(t, os.Remove(s.layout.TablePath("admin", "default", "items")))
	assert.Equal(t, "Failed to open table file", s.exec("select from items"))
}

func TestExecute_Delete(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")
	s.exec("create table items (a)")
	id := strings.TrimPrefix(s.exec("insert into items (x)"), "Inserted row ")

	assert.Equal(t, "Table not found", s.exec("delete from missing id:"+id))
	assert.Equal(t, "Record deleted successfully", s.exec("delete from items id:"+id))
	assert.Equal(t, "unique_id,a\n"+id+",x", s.exec("select from items"))
}

func TestExecute_DropTable(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")
	s.exec("create table items (a)")
	path := s.layout.TablePath("admin", "default", "items")

	assert.Equal(t, "Table 'items' dropped successfully", s.exec("drop items"))
	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "Table not found", s.exec("select from items"))
	assert.Equal(t, "Table 'items' not found", s.exec("drop items"))
}

func TestExecute_DropTableMissingFile(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("open default")
	s.exec("create table items (a)")

	require.NoError(t, os.Remove(s.layout.TablePath("admin", "default", "items")))
	assert.Equal(t, "Table file not found", s.exec("drop items"))
	assert.Equal(t, "Table 'items' not found", s.exec("drop items"))
}

func TestExecute_DropDatabase(t *testing.T) {
	s := newSession(t)
	s.loginAdmin(t)
	s.exec("create shop")

	assert.Equal(t, "Database 'shop' dropped successfully", s.exec("drop shop"))
	assert.Equal(t, "Database 'shop' not found or access denied", s.exec("drop shop"))
	assert.Equal(t, "Available databases:\n- default", s.exec("show"))

	_, err := os.Stat(s.layout.DatabasePath("admin", "shop"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckSession(t *testing.T) {
	s := newSession(t)
	in := s.in

	assert.NoError(t, in.checkSession(route{}))
	assert.ErrorIs(t, in.checkSession(route{needsAuth: true}), common.ErrNotLoggedIn)

	s.loginAdmin(t)
	assert.NoError(t, in.checkSession(route{needsAuth: true}))
	assert.ErrorIs(t, in.checkSession(route{needsAuth: true, needsDatabase: true}), common.ErrNoDatabase)
}

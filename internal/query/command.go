package query

// Kind discriminates the operations of the command language.
type Kind int

const (
	KindEmpty Kind = iota
	KindUnknown
	KindLogin
	KindShow
	KindCreateDatabase
	KindCreateTable
	KindOpen
	KindDrop
	KindInsert
	KindDelete
	KindSelect
)

var kindNames = map[Kind]string{
	KindEmpty:          "empty",
	KindUnknown:        "unknown",
	KindLogin:          "login",
	KindShow:           "show",
	KindCreateDatabase: "create-database",
	KindCreateTable:    "create-table",
	KindOpen:           "open",
	KindDrop:           "drop",
	KindInsert:         "insert",
	KindDelete:         "delete",
	KindSelect:         "select",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}

// NoLimit marks a select without a row limit.
const NoLimit = -1

// Command is one parsed input line. Which fields are set depends on Kind:
//
//	CreateDatabase, Open, Drop: Name
//	CreateTable:                Name, Fields (schema)
//	Insert:                     Name, Fields (values)
//	Delete:                     Name, ID
//	Select:                     Name, Limit, Last
type Command struct {
	Kind   Kind
	Name   string
	Fields []string
	ID     string
	Limit  int
	Last   bool
}

// Usage strings returned for malformed commands.
const (
	UsageLogin          = "Usage: login"
	UsageShow           = "Usage: show"
	UsageCreateDatabase = "Invalid syntax. Use: create <database_name>"
	UsageCreateTable    = "Invalid syntax. Use: create table name (attr1, attr2, ...)"
	UsageOpen           = "Invalid syntax. Use: open <database_name>"
	UsageDrop           = "Invalid syntax. Use: drop <name>"
	UsageInsert         = "Invalid syntax. Use: insert into table_name (value1, value2, ...)"
	UsageDelete         = "Invalid syntax. Use: delete from table_name id:value"
	UsageSelect         = "Invalid syntax. Use: select from table_name [limit] [last]"
)

// SyntaxError carries the usage string for a malformed command.
type SyntaxError struct {
	Usage string
}

func (e *SyntaxError) Error() string { return e.Usage }

func syntaxError(usage string) error { return &SyntaxError{Usage: usage} }

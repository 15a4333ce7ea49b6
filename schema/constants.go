package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the record store.
	DatabaseBackend string

	// ImportMode represents the tolerance policy for malformed rows.
	ImportMode string

	// SourceKind represents where the active record set came from.
	SourceKind string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	XLSXOut    OutputMode = "xlsx"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All import modes supported.
const (
	LenientImport ImportMode = "lenient" // default
	StrictImport  ImportMode = "strict"
)

// All record sources supported.
const (
	ImportSource SourceKind = "import"
	StoreSource  SourceKind = "store"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	XLSXOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidImportModes lists all valid import modes.
var ValidImportModes = map[ImportMode]struct{}{
	LenientImport: {},
	StrictImport:  {},
}

// ValidSourceKinds lists all valid record sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	ImportSource: {},
	StoreSource:  {},
}

// SuccessStatuses are the status values, lowercased, that count as a successful request.
var SuccessStatuses = map[string]struct{}{
	"success": {},
	"200":     {},
	"ok":      {},
}

package enums

type StorageBackend string

const (
	// StorageBackendFile keeps the last email id in a text file next to the config.
	StorageBackendFile StorageBackend = "file"

	// StorageBackendPostgres keeps the last email id in Postgres and mirrors report rows there.
	StorageBackendPostgres StorageBackend = "postgres"
)

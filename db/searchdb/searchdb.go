package searchdb

type DB interface {
	BuildIndex(documents []Document) error
	Documents() ([]Document, error)
	GetDocCount() (uint64, error)
	Close() error
}

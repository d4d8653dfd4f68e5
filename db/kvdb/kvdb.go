// Package kvdb is the on-disk key-value store behind the lexical lookup cache.
package kvdb

const (
	PartOfSpeechBucket = "pos"
	SynonymsBucket     = "synonyms"
)

var buckets = []string{PartOfSpeechBucket, SynonymsBucket}

type DB interface {
	Put(bucket string, key string, value []byte) error
	Get(bucket string, key string) ([]byte, error)
	Delete(bucket string, key string) error
	Close() error
}

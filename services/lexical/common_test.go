package lexical

import (
	"context"
	"errors"
	"sync"

	"github.com/meghashyamc/lexisearch/clients/thesauri"
	"github.com/meghashyamc/lexisearch/db/kvdb"
)

var errServiceDown = errors.New("service down")

// fakeLookup serves canned answers and counts calls.
type fakeLookup struct {
	mu             sync.Mutex
	flags          map[string]thesauri.PartOfSpeechFlags
	synonyms       map[string][]string // keyed by pos + "/" + word
	failPOS        map[string]bool
	failSynonyms   map[string]bool
	posCalls       map[string]int
	synonymCalls   map[string]int
	onPartOfSpeech func(word string)
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		flags:        map[string]thesauri.PartOfSpeechFlags{},
		synonyms:     map[string][]string{},
		failPOS:      map[string]bool{},
		failSynonyms: map[string]bool{},
		posCalls:     map[string]int{},
		synonymCalls: map[string]int{},
	}
}

func (f *fakeLookup) PartOfSpeech(ctx context.Context, word string) (thesauri.PartOfSpeechFlags, error) {
	if f.onPartOfSpeech != nil {
		f.onPartOfSpeech(word)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.posCalls[word]++
	if f.failPOS[word] {
		return thesauri.PartOfSpeechFlags{}, errServiceDown
	}
	return f.flags[word], nil
}

func (f *fakeLookup) Synonyms(ctx context.Context, pos string, word string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pos + "/" + word
	f.synonymCalls[key]++
	if f.failSynonyms[word] {
		return nil, errServiceDown
	}
	return f.synonyms[key], nil
}

// memoryStore is an in-memory stand-in for the key-value database.
type memoryStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	deletes int
	failGet bool
	failPut bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}}
}

func (m *memoryStore) Get(bucket string, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errors.New("disk on fire")
	}
	value, ok := m.values[bucket+"|"+key]
	if !ok {
		return nil, &kvdb.OpError{Op: "get", Bucket: bucket, Key: key, Err: kvdb.ErrNotFound}
	}
	return value, nil
}

func (m *memoryStore) Put(bucket string, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut {
		return errors.New("disk full")
	}
	m.values[bucket+"|"+key] = value
	return nil
}

func (m *memoryStore) Delete(bucket string, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	delete(m.values, bucket+"|"+key)
	return nil
}

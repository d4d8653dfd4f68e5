package searchdb

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/meghashyamc/lexisearch/config"
	"github.com/meghashyamc/lexisearch/logger"
)

const indexingBatchSize = 100

const (
	indexFieldID      = "id"
	indexFieldTitle   = "title"
	indexFieldContent = "content"
)

type BleveDB struct {
	indexPath string
	logger    logger.Logger
	index     bleve.Index
}

// New opens the document index at the configured path, creating it if
// needed. Without a path the index lives in memory for the process lifetime.
func New(logger logger.Logger, cfg *config.Config) (*BleveDB, error) {
	mapping := createIndexMapping()
	indexPath := cfg.GetIndexPath()

	if indexPath == "" {
		index, err := bleve.NewMemOnly(mapping)
		if err != nil {
			logger.Error("could not create in-memory index", "err", err.Error())
			return nil, err
		}
		return &BleveDB{logger: logger, index: index}, nil
	}

	index, err := bleve.New(indexPath, mapping)
	if err != nil {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Error("could not open index", "path", indexPath, "err", err.Error())
			return nil, err
		}
	}
	return &BleveDB{indexPath: indexPath, logger: logger, index: index}, nil
}

func createIndexMapping() mapping.IndexMapping {

	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	idFieldMapping := bleve.NewNumericFieldMapping()
	docMapping.AddFieldMappingsAt(indexFieldID, idFieldMapping)

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt(indexFieldTitle, titleFieldMapping)

	// Content is stored so the scorer can read documents back verbatim
	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = standard.Name
	contentFieldMapping.Store = true
	docMapping.AddFieldMappingsAt(indexFieldContent, contentFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

func (b *BleveDB) BuildIndex(documents []Document) error {

	batch := b.index.NewBatch()

	for i, doc := range documents {

		if err := batch.Index(strconv.Itoa(doc.ID), doc); err != nil {
			b.logger.Error("could not index document", "id", doc.ID, "err", err.Error())
			return err
		}

		if (i+1)%indexingBatchSize == 0 {
			if err := b.index.Batch(batch); err != nil {
				return err
			}
			batch = b.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := b.index.Batch(batch); err != nil {
			b.logger.Error("could not index document", "err", err.Error())
			return err
		}
	}

	return nil
}

// Documents returns every stored document ordered by ascending id.
func (b *BleveDB) Documents() ([]Document, error) {
	count, err := b.index.DocCount()
	if err != nil {
		b.logger.Error("could not count documents", "err", err.Error())
		return nil, fmt.Errorf("could not count documents: %w", err)
	}
	if count == 0 {
		return []Document{}, nil
	}

	searchRequest := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	searchRequest.Fields = []string{indexFieldID, indexFieldTitle, indexFieldContent}

	searchResult, err := b.index.Search(searchRequest)
	if err != nil {
		b.logger.Error("could not list documents", "err", err.Error())
		return nil, fmt.Errorf("could not list documents: %w", err)
	}

	documents := make([]Document, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		document := Document{}

		if id, ok := hit.Fields[indexFieldID].(float64); ok {
			document.ID = int(id)
		} else if id, err := strconv.Atoi(hit.ID); err == nil {
			document.ID = id
		} else {
			b.logger.Warn("skipping document with non-numeric id", "id", hit.ID)
			continue
		}
		if title, ok := hit.Fields[indexFieldTitle].(string); ok {
			document.Title = title
		}
		if content, ok := hit.Fields[indexFieldContent].(string); ok {
			document.Content = content
		}

		documents = append(documents, document)
	}

	slices.SortFunc(documents, func(a, b Document) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return documents, nil
}

func (b *BleveDB) GetDocCount() (uint64, error) {
	return b.index.DocCount()
}

func (b *BleveDB) Close() error {

	if b.index != nil {
		if err := b.index.Close(); err != nil {
			b.logger.Error("could not close search index", "err", err.Error())
			return err
		}
	}
	return nil
}

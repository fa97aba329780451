package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"
)

// Elastic indexes and queries documents in Elasticsearch.
type Elastic struct {
	ES      *elasticsearch.Client
	Logger  *logrus.Logger
	Timeout time.Duration
}

func NewElastic(es *elasticsearch.Client, logger *logrus.Logger) *Elastic {
	return &Elastic{ES: es, Logger: logger, Timeout: 3 * time.Second}
}

func (e *Elastic) Index(ctx context.Context, index, id string, doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: index, DocumentID: id, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()
	res, err := req.Do(c, e.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s/%s: %s", index, id, res.Status())
	}
	return nil
}

// Remove deletes a document; a missing document is not an error.
func (e *Elastic) Remove(ctx context.Context, index, id string) error {
	req := esapi.DeleteRequest{Index: index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()
	res, err := req.Do(c, e.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s/%s: %s", index, id, res.Status())
	}
	return nil
}

// Search performs a multi_match query over fields and returns the matching sources.
func (e *Elastic) Search(ctx context.Context, index, q string, fields []string, size int) ([]map[string]any, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": fields,
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	res, err := e.ES.Search(e.ES.Search.WithContext(c), e.ES.Search.WithIndex(index), e.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, fmt.Errorf("es search %s: %s", index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

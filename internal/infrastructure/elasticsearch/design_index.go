package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// DesignIndex stores designs in one Elasticsearch index for title,
// description and category search.
type DesignIndex struct {
	ES   *elasticsearch.Client
	Name string
}

func NewDesignIndex(es *elasticsearch.Client, index string) *DesignIndex {
	return &DesignIndex{ES: es, Name: index}
}

func designDocument(d *entity.Design) map[string]any {
	return map[string]any{
		"id":          d.ID,
		"owner_id":    d.OwnerID,
		"title":       d.Title,
		"description": d.Description,
		"category":    d.Category,
		"image_url":   d.ImageURL,
		"created_at":  d.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (x *DesignIndex) Index(ctx context.Context, d *entity.Design) error {
	b, err := json.Marshal(designDocument(d))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Name, DocumentID: d.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", d.ID, res.Status())
	}
	return nil
}

func (x *DesignIndex) Remove(ctx context.Context, designID string) error {
	req := esapi.DeleteRequest{Index: x.Name, DocumentID: designID}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// A missing document is already removed.
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete %s: %s", designID, res.Status())
	}
	return nil
}

// Search performs a multi_match on title, description and category.
func (x *DesignIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	b, err := json.Marshal(searchQuery(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.Name), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func searchQuery(q string, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "category^2", "description"},
			},
		},
		"size": size,
	}
}

var _ application.DesignIndexer = (*DesignIndex)(nil)

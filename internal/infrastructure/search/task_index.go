package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/onesteptask/internal/domain/entity"
)

// maxHits caps one search; the admin listing is not paginated.
const maxHits = 10000

// ErrTruncated is returned when more tasks match than one search can return.
var ErrTruncated = errors.New("search: more hits than the result window")

// NewClient creates an Elasticsearch client with sane defaults and optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// TaskIndex mirrors the searchable task fields into one index and answers
// substring queries with task ids.
type TaskIndex struct {
	ES        *elasticsearch.Client
	IndexName string
	Timeout   time.Duration
}

func NewTaskIndex(es *elasticsearch.Client, index string) *TaskIndex {
	return &TaskIndex{ES: es, IndexName: index, Timeout: 3 * time.Second}
}

type taskDoc struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	TaskType    string `json:"taskType"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

var indexMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"id":          map[string]any{"type": "long"},
			"name":        map[string]any{"type": "wildcard"},
			"email":       map[string]any{"type": "wildcard"},
			"taskType":    map[string]any{"type": "wildcard"},
			"description": map[string]any{"type": "wildcard"},
			"status":      map[string]any{"type": "keyword"},
		},
	},
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (x *TaskIndex) EnsureIndex(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{x.IndexName}}.Do(ctx, x.ES)
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	b, _ := json.Marshal(indexMapping)
	res, err = esapi.IndicesCreateRequest{Index: x.IndexName, Body: bytes.NewReader(b)}.Do(ctx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", x.IndexName, res.Status())
	}
	return nil
}

func (x *TaskIndex) Index(ctx context.Context, t entity.Task) error {
	b, _ := json.Marshal(taskDoc{
		ID:          t.ID,
		Name:        t.Name,
		Email:       t.Email,
		TaskType:    t.TaskType,
		Description: t.Description,
		Status:      string(t.Status),
	})
	ctx, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	req := esapi.IndexRequest{
		Index:      x.IndexName,
		DocumentID: strconv.FormatInt(t.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index task %d: %s", t.ID, res.Status())
	}
	return nil
}

func (x *TaskIndex) Remove(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: strconv.FormatInt(id, 10), Refresh: "true"}
	res, err := req.Do(ctx, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove task %d: %s", id, res.Status())
	}
	return nil
}

// Search returns the ids of tasks whose name, email, description or task
// type contains q, ignoring case. It fails with ErrTruncated rather than
// return a partial list.
func (x *TaskIndex) Search(ctx context.Context, q string) ([]int64, error) {
	b, _ := json.Marshal(buildSearchQuery(q))
	ctx, cancel := context.WithTimeout(ctx, x.Timeout)
	defer cancel()

	res, err := x.ES.Search(
		x.ES.Search.WithContext(ctx),
		x.ES.Search.WithIndex(x.IndexName),
		x.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search tasks: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source taskDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if parsed.Hits.Total.Value > len(parsed.Hits.Hits) {
		return nil, ErrTruncated
	}
	ids := make([]int64, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}
	return ids, nil
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func buildSearchQuery(q string) map[string]any {
	pattern := "*" + wildcardEscaper.Replace(q) + "*"
	should := make([]any, 0, 4)
	for _, field := range []string{"name", "email", "description", "taskType"} {
		should = append(should, map[string]any{
			"wildcard": map[string]any{
				field: map[string]any{"value": pattern, "case_insensitive": true},
			},
		})
	}
	return map[string]any{
		"size":             maxHits,
		"track_total_hits": true,
		"_source":          []string{"id"},
		"query": map[string]any{
			"bool": map[string]any{
				"should":               should,
				"minimum_should_match": 1,
			},
		},
	}
}

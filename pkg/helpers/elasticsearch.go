package helpers

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type ESOptions struct {
	Addrs    []string
	Username string
	Password string
}

// NewESClient builds a client for the user search index. Basic auth is applied when a username is set.
func NewESClient(opts ESOptions) (*elasticsearch.Client, error) {
	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("elasticsearch: no addresses configured")
	}
	cfg := elasticsearch.Config{
		Addresses: opts.Addrs,
		Username:  opts.Username,
		Password:  opts.Password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

// usersIndexMapping keeps userId as a keyword and the name/email fields searchable as text.
const usersIndexMapping = `{
  "mappings": {
    "properties": {
      "userId":     {"type": "long"},
      "userName":   {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "email":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "firstName":  {"type": "text"},
      "lastName":   {"type": "text"},
      "age":        {"type": "integer"},
      "isActivate": {"type": "boolean"},
      "hobbies":    {"type": "text"},
      "city":       {"type": "text"},
      "country":    {"type": "text"}
    }
  }
}`

// EnsureUsersIndex creates the users index when it is missing. It doubles as a reachability check.
func EnsureUsersIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(c, es)
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	res.Body.Close()
	switch res.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("check index %s: status %d", index, res.StatusCode)
	}

	res, err = esapi.IndicesCreateRequest{Index: index, Body: strings.NewReader(usersIndexMapping)}.Do(c, es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer res.Body.Close()
	// a concurrent creator wins with resource_already_exists_exception
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("create index %s: %s", index, res.String())
	}
	return nil
}

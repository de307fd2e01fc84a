package application

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/user-order-service/internal/domain/entity"
)

// searchDocument is what gets indexed. It never carries the password or orders.
type searchDocument struct {
	UserID    int64    `json:"userId"`
	UserName  string   `json:"userName"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Age       int      `json:"age"`
	IsActive  bool     `json:"isActivate"`
	Hobbies   []string `json:"hobbies"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
}

func (s *Service) searchEnabled() bool {
	return s.ES != nil && s.ESUsersIndex != ""
}

func toSearchDocument(u *entity.User) searchDocument {
	return searchDocument{
		UserID:    u.UserID,
		UserName:  u.UserName,
		Email:     u.Email,
		FirstName: u.FullName.FirstName,
		LastName:  u.FullName.LastName,
		Age:       u.Age,
		IsActive:  u.IsActive,
		Hobbies:   u.Hobbies,
		City:      u.Address.City,
		Country:   u.Address.Country,
	}
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if !s.searchEnabled() {
		return nil
	}
	b, err := json.Marshal(toSearchDocument(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      s.ESUsersIndex,
		DocumentID: strconv.FormatInt(u.UserID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.UserID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if s.Logger != nil {
			s.Logger.WithField("status", res.Status()).WithField("user_id", u.UserID).Warn("es index response error")
		}
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

func (s *Service) deleteUserIndex(ctx context.Context, userID int64) error {
	if !s.searchEnabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: strconv.FormatInt(userID, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("es delete failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", userID).Warn("es delete response error")
	}
	return nil
}

// SearchUsers runs a multi_match over name and contact fields. An empty query matches all.
// Returns an empty list when search is not configured.
func (s *Service) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if !s.searchEnabled() {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	var query map[string]any
	if q == "" {
		query = map[string]any{"match_all": map[string]any{}}
	} else {
		query = map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"userName^2", "email^2", "firstName", "lastName", "city", "country", "hobbies"},
			},
		}
	}
	b, err := json.Marshal(map[string]any{"query": query, "size": size})
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(bytes.NewReader(b)))
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
		delete(h.Source, "password")
		out = append(out, h.Source)
	}
	return out, nil
}

// Reindex pushes every stored user into the search index and returns how many were indexed.
func (s *Service) Reindex(ctx context.Context) (int, error) {
	if !s.searchEnabled() {
		return 0, fmt.Errorf("search is not configured")
	}
	users, err := s.Repo.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for i := range users {
		if err := s.indexUser(ctx, &users[i]); err != nil {
			return n, fmt.Errorf("index user %d: %w", users[i].UserID, err)
		}
		n++
	}
	return n, nil
}

package es

import (
	"context"
	"errors"
	log "log/slog"

	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/goccy/go-json"
)

type UserRepo interface {
	IndexUser(ctx context.Context, user *UserES) error
	DeleteUser(ctx context.Context, uid string) error
	SearchUsers(ctx context.Context, query string, from, size int) ([]*UserES, error)
}

type UserRepoImpl struct {
}

func NewUserRepo() UserRepo {
	return &UserRepoImpl{}
}

// IndexUser 写入或覆盖用户文档，以 uid 作为文档 ID
func (s *UserRepoImpl) IndexUser(ctx context.Context, user *UserES) error {
	_, err := Client.Index(UserIndex).
		Id(user.UID).
		Document(user).
		Do(ctx)
	return err
}

func (s *UserRepoImpl) DeleteUser(ctx context.Context, uid string) error {
	_, err := Client.Delete(UserIndex, uid).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				log.Warn("User already deleted or not found in ES", "uid", uid)
				return nil
			}
		}
		return err
	}
	return nil
}

// SearchUsers 按昵称/邮箱/简介做多字段模糊检索
func (s *UserRepoImpl) SearchUsers(ctx context.Context, query string, from, size int) ([]*UserES, error) {
	fuzziness := "AUTO"

	resp, err := Client.Search().
		Index(UserIndex).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:     query,
				Fields:    []string{"name^2", "email", "bio"},
				Fuzziness: fuzziness,
			},
		}).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*UserES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var user UserES
		if err = json.Unmarshal(hit.Source_, &user); err != nil {
			continue
		}
		results = append(results, &user)
	}
	return results, nil
}

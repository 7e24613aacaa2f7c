package storage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/KWCapstoneGitFolio/realGitFolio/internal/model"
	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	redis "github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	repoKeyPrefix    = "repo:"
	commitKeyPrefix  = "commit:"
	analysesKey      = "analyses"
	commitsKeySuffix = ":commits"
	filesKeySuffix   = ":files"
)

var _ model.Store = (*RedisStore)(nil)

// RedisStore persists repositories, commits, file changes and analysis
// results in Redis. Uniqueness is enforced by the key scheme: SetNX for
// commit and repository get-or-create, hash-field writes for analysis
// upserts. Concurrent writers race safely: one creates, the rest observe.
type RedisStore struct {
	client *redis.Client
	clock  func() time.Time
	logger logze.Logger
}

// New connects to Redis and returns the store
func New(cfg Config) (*RedisStore, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errm.Wrap(err, "failed to connect to redis")
	}

	return &RedisStore{
		client: client,
		clock:  time.Now,
		logger: logze.With("component", "storage"),
	}, nil
}

// Close releases the underlying connection pool
func (s *RedisStore) Close(context.Context) error {
	return s.client.Close()
}

func repoKey(repo model.Repository) string   { return repoKeyPrefix + repo.Key() }
func repoCommitsKey(repo model.Repository) string {
	return repoKeyPrefix + repo.Key() + commitsKeySuffix
}
func commitKey(hash string) string      { return commitKeyPrefix + hash }
func commitFilesKey(hash string) string { return commitKeyPrefix + hash + filesKeySuffix }

// SaveCommit stores a commit under its hash if no record exists yet.
// The commit hash is globally unique: a hash seen before, in any
// repository, leaves the existing record untouched.
func (s *RedisStore) SaveCommit(ctx context.Context, repo model.Repository, commit model.Commit) (bool, error) {
	// Lazy repository row: first writer creates it, later ones observe it
	repoPayload, err := json.Marshal(repo)
	if err != nil {
		return false, errm.Wrap(err, "marshal repository")
	}
	if err := s.client.SetNX(ctx, repoKey(repo), repoPayload, 0).Err(); err != nil {
		return false, errm.Wrap(err, "create repository")
	}

	record := model.CommitRecord{
		Hash:        commit.Hash,
		Repository:  repo,
		Author:      commit.Author.DisplayName(),
		Message:     commit.Message,
		CommittedAt: commit.CommittedAt,
		Stats:       commit.Stats,
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return false, errm.Wrap(err, "marshal commit")
	}

	created, err := s.client.SetNX(ctx, commitKey(commit.Hash), payload, 0).Result()
	if err != nil {
		return false, errm.Wrap(err, "create commit")
	}
	if !created {
		return false, nil
	}

	err = s.client.ZAdd(ctx, repoCommitsKey(repo), redis.Z{
		Score:  float64(commit.CommittedAt.Unix()),
		Member: commit.Hash,
	}).Err()
	if err != nil {
		return false, errm.Wrap(err, "index commit")
	}

	return true, nil
}

// SetCommitFiles attaches the file-change list to a commit. Called once,
// right after the first insert of the parent commit.
func (s *RedisStore) SetCommitFiles(ctx context.Context, hash string, files []model.FileChange) error {
	payload, err := json.Marshal(files)
	if err != nil {
		return errm.Wrap(err, "marshal file changes")
	}
	if err := s.client.Set(ctx, commitFilesKey(hash), payload, 0).Err(); err != nil {
		return errm.Wrap(err, "store file changes")
	}
	return nil
}

// ListCommits returns stored commits for the repository, newest first.
// An unknown repository yields an empty slice.
func (s *RedisStore) ListCommits(ctx context.Context, repo model.Repository, author string, count int) ([]model.CommitRecord, error) {
	hashes, err := s.client.ZRevRange(ctx, repoCommitsKey(repo), 0, -1).Result()
	if err != nil {
		return nil, errm.Wrap(err, "list commit hashes")
	}

	records := make([]model.CommitRecord, 0, len(hashes))
	for _, hash := range hashes {
		if count > 0 && len(records) >= count {
			break
		}

		payload, err := s.client.Get(ctx, commitKey(hash)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, errm.Wrap(err, "load commit")
		}

		var record model.CommitRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			s.logger.Err(err, "skipping unreadable commit record", "hash", hash)
			continue
		}

		if author != "" && record.Author != author {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

// GetCommit returns one stored commit with its file changes
func (s *RedisStore) GetCommit(ctx context.Context, hash string) (model.CommitRecord, error) {
	payload, err := s.client.Get(ctx, commitKey(hash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.CommitRecord{}, errm.Wrap(model.ErrNotFound, "unknown commit hash "+hash)
	}
	if err != nil {
		return model.CommitRecord{}, errm.Wrap(err, "load commit")
	}

	var record model.CommitRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return model.CommitRecord{}, errm.Wrap(err, "unmarshal commit")
	}

	filesPayload, err := s.client.Get(ctx, commitFilesKey(hash)).Bytes()
	if err == nil {
		if err := json.Unmarshal(filesPayload, &record.Files); err != nil {
			return model.CommitRecord{}, errm.Wrap(err, "unmarshal file changes")
		}
	} else if !errors.Is(err, redis.Nil) {
		return model.CommitRecord{}, errm.Wrap(err, "load file changes")
	}

	return record, nil
}

// GetAnalysis returns the stored analysis for a (repository, username) pair
func (s *RedisStore) GetAnalysis(ctx context.Context, key model.AnalysisKey) (model.AnalysisRecord, error) {
	return s.GetAnalysisByID(ctx, key.ID())
}

// UpsertAnalysis replaces any previous analysis for the same pair
func (s *RedisStore) UpsertAnalysis(ctx context.Context, key model.AnalysisKey, commitCount int, payload model.AnalysisPayload) (model.AnalysisRecord, error) {
	record := model.AnalysisRecord{
		ID:          key.ID(),
		Repository:  key.Repository,
		Username:    key.Username,
		CommitCount: commitCount,
		Payload:     payload,
		CreatedAt:   s.clock().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return model.AnalysisRecord{}, errm.Wrap(err, "marshal analysis")
	}
	if err := s.client.HSet(ctx, analysesKey, record.ID, data).Err(); err != nil {
		return model.AnalysisRecord{}, errm.Wrap(err, "store analysis")
	}

	return record, nil
}

// ListAnalyses returns all saved analyses, newest first
func (s *RedisStore) ListAnalyses(ctx context.Context) ([]model.AnalysisRecord, error) {
	entries, err := s.client.HGetAll(ctx, analysesKey).Result()
	if err != nil {
		return nil, errm.Wrap(err, "list analyses")
	}

	records := make([]model.AnalysisRecord, 0, len(entries))
	for id, data := range entries {
		var record model.AnalysisRecord
		if err := json.Unmarshal([]byte(data), &record); err != nil {
			s.logger.Err(err, "skipping unreadable analysis record", "id", id)
			continue
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// GetAnalysisByID returns one saved analysis, ErrNotFound for unknown ids
func (s *RedisStore) GetAnalysisByID(ctx context.Context, id string) (model.AnalysisRecord, error) {
	data, err := s.client.HGet(ctx, analysesKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return model.AnalysisRecord{}, errm.Wrap(model.ErrNotFound, "unknown analysis id "+id)
	}
	if err != nil {
		return model.AnalysisRecord{}, errm.Wrap(err, "load analysis")
	}

	var record model.AnalysisRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return model.AnalysisRecord{}, errm.Wrap(err, "unmarshal analysis")
	}

	return record, nil
}

// DeleteAnalysis removes one saved analysis. Deleting an unknown id is
// reported as ErrNotFound, not silently ignored.
func (s *RedisStore) DeleteAnalysis(ctx context.Context, id string) error {
	removed, err := s.client.HDel(ctx, analysesKey, id).Result()
	if err != nil {
		return errm.Wrap(err, "delete analysis")
	}
	if removed == 0 {
		return errm.Wrap(model.ErrNotFound, "unknown analysis id "+id)
	}
	return nil
}

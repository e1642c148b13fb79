package service

import (
	"context"
	"fmt"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/model"
)

// MinSuggestLength is the shortest term the typeahead forwards to the directory.
const MinSuggestLength = 2

const defaultPageSize = 10

type Users struct {
	directory   model.Directory
	emailDomain string
	searchLimit int
	logger      *logger.Logger
}

func NewUsers(
	directory model.Directory,
	emailDomain string,
	searchLimit int,
	logger *logger.Logger,
) *Users {
	return &Users{
		directory:   directory,
		emailDomain: emailDomain,
		searchLimit: searchLimit,
		logger:      logger,
	}
}

// Find looks up term as an exact user id and returns the requested page.
// An empty term returns an empty page without calling the directory.
func (s *Users) Find(ctx context.Context, term string, page, pageSize int) (model.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	result := model.UserPage{Users: []model.UserRecord{}, Page: page}
	if term == "" {
		return result, nil
	}

	found, err := s.directory.FetchByID(ctx, term)
	if err != nil {
		s.logger.Error("Users service: failed to fetch users",
			"term", term,
			"error", err.Error())
		return model.UserPage{}, fmt.Errorf("failed to fetch users: %w", err)
	}

	result.Total = len(found)
	result.TotalPages = (len(found) + pageSize - 1) / pageSize

	// Compared before multiplying so a huge page number cannot overflow.
	if page > result.TotalPages {
		return result, nil
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(found))
	result.Users = found[start:end]

	return result, nil
}

// Create validates in, applies the account defaults and creates it remotely.
func (s *Users) Create(ctx context.Context, in model.UserInput) (model.UserRecord, error) {
	record, err := model.NewUserRecord(in, s.emailDomain)
	if err != nil {
		return model.UserRecord{}, err
	}

	s.logger.Debug("Users service: creating user",
		"id", record.ID)

	created, err := s.directory.CreateUser(ctx, record)
	if err != nil {
		s.logger.Error("Users service: failed to create user",
			"id", record.ID,
			"error", err.Error())
		return model.UserRecord{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Users service: user created",
		"id", record.ID)

	return created, nil
}

// SuggestIDs returns ids of users matching term for the typeahead.
func (s *Users) SuggestIDs(ctx context.Context, term string) []string {
	if len([]rune(term)) < MinSuggestLength {
		return []string{}
	}

	users := s.directory.Search(ctx, term, s.searchLimit)

	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	return ids
}

package model

import (
	"context"
	"encoding/json"
)

// Directory is the remote system of record for user accounts.
type Directory interface {
	FetchByID(ctx context.Context, id string) ([]UserRecord, error)
	Search(ctx context.Context, term string, limit int) []UserRecord
	CreateUser(ctx context.Context, user UserRecord) (UserRecord, error)
	CreateUsers(ctx context.Context, users []UserRecord) (json.RawMessage, error)
}

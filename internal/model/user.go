package model

import (
	"encoding/json"
	"strings"
)

// UserRecord is the account payload exchanged with the TrueConf directory.
type UserRecord struct {
	ID          string          `json:"id"`
	LoginName   string          `json:"login_name"`
	Password    string          `json:"password,omitempty"`
	DisplayName string          `json:"display_name"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Company     string          `json:"company"`
	Email       string          `json:"email"`
	UID         string          `json:"uid"`
	IsActive    int             `json:"is_active"`
	Status      int             `json:"status"`
	Avatar      *string         `json:"avatar"`
	Groups      json.RawMessage `json:"groups"`
	MobilePhone string          `json:"mobile_phone"`
	WorkPhone   string          `json:"work_phone"`
	HomePhone   string          `json:"home_phone"`
}

// UserInput holds the operator-supplied fields of a new account.
type UserInput struct {
	ID          string `json:"id"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
}

// ImportRow is a UserInput extracted from one spreadsheet data row.
type ImportRow = UserInput

// Validate reports the first missing mandatory field.
func (in UserInput) Validate() error {
	if strings.TrimSpace(in.ID) == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if in.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// NewUserRecord builds a complete record from input, applying every default
// the directory expects. email and uid are derived as id@emailDomain.
func NewUserRecord(in UserInput, emailDomain string) (UserRecord, error) {
	if err := in.Validate(); err != nil {
		return UserRecord{}, err
	}

	id := strings.TrimSpace(in.ID)
	address := id + "@" + emailDomain

	return UserRecord{
		ID:          id,
		LoginName:   id,
		Password:    in.Password,
		DisplayName: in.DisplayName,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Company:     in.Company,
		Email:       address,
		UID:         address,
		IsActive:    1,
		Status:      0,
	}, nil
}

// UserPage is one page of dashboard search results.
type UserPage struct {
	Users      []UserRecord
	Total      int
	Page       int
	TotalPages int
}

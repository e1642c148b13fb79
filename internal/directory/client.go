// Package directory talks to the TrueConf server user API.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/trueconf-console/internal/logger"
	"github.com/dtroode/trueconf-console/internal/metrics"
	"github.com/dtroode/trueconf-console/internal/model"
)

const usersPath = "/api/v3/users"

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client is the TrueConf user directory client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *metrics.Metrics
	log        *logger.Logger
}

// NewClient creates new directory client for the server at serverAddress.
func NewClient(serverAddress, apiKey string, httpClient *http.Client, m *metrics.Metrics, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(serverAddress, "/") + usersPath,
		apiKey:     apiKey,
		httpClient: httpClient,
		metrics:    m,
		log:        log,
	}
}

// FetchByID looks a user up by exact id. A missing user yields an empty slice.
func (c *Client) FetchByID(ctx context.Context, id string) ([]model.UserRecord, error) {
	if id == "" {
		return []model.UserRecord{}, nil
	}

	var body json.RawMessage
	err := c.do(ctx, "fetch_by_id", http.MethodGet, c.baseURL+"/"+url.PathEscape(id), nil, &body)
	if errors.Is(err, model.ErrNotFound) {
		c.log.Debug("Directory: user not found", "id", id)
		return []model.UserRecord{}, nil
	}
	if err != nil {
		return nil, err
	}

	user, err := unwrapUser(body)
	if err != nil {
		return nil, &model.DirectoryError{Message: err.Error(), Err: err}
	}

	return []model.UserRecord{user}, nil
}

// Search returns up to limit users matching term. It never fails: errors are
// logged and produce an empty result.
func (c *Client) Search(ctx context.Context, term string, limit int) []model.UserRecord {
	if term == "" {
		return []model.UserRecord{}
	}

	query := url.Values{}
	query.Set("search", term)
	query.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Users []model.UserRecord `json:"users"`
	}
	if err := c.do(ctx, "search", http.MethodGet, c.baseURL+"?"+query.Encode(), nil, &resp); err != nil {
		c.log.Warn("Directory: search failed", "term", term, "error", err)
		return []model.UserRecord{}
	}
	if resp.Users == nil {
		return []model.UserRecord{}
	}

	return resp.Users
}

// CreateUser creates one account and returns the record the server echoed.
func (c *Client) CreateUser(ctx context.Context, user model.UserRecord) (model.UserRecord, error) {
	var body json.RawMessage
	if err := c.do(ctx, "create_user", http.MethodPost, c.baseURL, user, &body); err != nil {
		return model.UserRecord{}, err
	}

	created, err := unwrapUser(body)
	if err != nil {
		return model.UserRecord{}, &model.DirectoryError{Message: err.Error(), Err: err}
	}

	c.log.Info("Directory: user created", "id", user.ID)

	return created, nil
}

// CreateUsers posts the users as a single array body and returns the raw response.
func (c *Client) CreateUsers(ctx context.Context, users []model.UserRecord) (json.RawMessage, error) {
	var body json.RawMessage
	if err := c.do(ctx, "create_users", http.MethodPost, c.baseURL, users, &body); err != nil {
		return nil, err
	}

	c.log.Info("Directory: users created", "count", len(users))

	return body, nil
}

func (c *Client) do(ctx context.Context, operation, method, target string, payload any, out any) error {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveDirectoryRequest(operation, 0, time.Since(start))
		c.log.Error("Directory: request failed", "operation", operation, "error", err)
		return &model.DirectoryError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	c.metrics.ObserveDirectoryRequest(operation, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		dErr := decodeError(resp)
		if resp.StatusCode != http.StatusNotFound {
			c.log.Error("Directory: request rejected", "operation", operation, "status", resp.StatusCode, "error", dErr)
		}
		return dErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &model.DirectoryError{StatusCode: resp.StatusCode, Message: "invalid response from directory API", Err: err}
	}

	return nil
}

type errorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// decodeError turns a non-2xx response into a *model.DirectoryError.
func decodeError(resp *http.Response) *model.DirectoryError {
	dErr := &model.DirectoryError{StatusCode: resp.StatusCode}
	if resp.StatusCode == http.StatusNotFound {
		dErr.Err = model.ErrNotFound
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		switch {
		case body.Error != nil && body.Error.Message != "":
			dErr.Message = body.Error.Message
		case body.Message != "":
			dErr.Message = body.Message
		}
	}
	if dErr.Message == "" {
		dErr.Message = fmt.Sprintf("request failed with status code %d", resp.StatusCode)
	}

	return dErr
}

// unwrapUser reads a user from a {"user": {...}} envelope or from the body root.
func unwrapUser(body json.RawMessage) (model.UserRecord, error) {
	var user model.UserRecord
	if len(body) == 0 {
		return user, nil
	}

	var envelope struct {
		User *model.UserRecord `json:"user"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.User != nil {
		return *envelope.User, nil
	}

	if err := json.Unmarshal(body, &user); err != nil {
		return model.UserRecord{}, fmt.Errorf("failed to decode user: %w", err)
	}

	return user, nil
}

// Package client is a typed HTTP client for the platform API. The
// monitoring agent and the dashboard data layer are both built on it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"github.com/nimbusgrid/platform-go/internal/domain/pricing"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/internal/domain/user"
	"github.com/nimbusgrid/platform-go/pkg/response"
)

// APIError is a non-2xx reply, carrying the server's error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to one platform deployment on behalf of one bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er response.ErrorResponse
		msg := resp.Status
		if json.NewDecoder(resp.Body).Decode(&er) == nil && er.Error != "" {
			msg = er.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ListProjects(ctx context.Context) ([]project.Project, error) {
	var out response.ProjectListResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Projects, nil
}

func (c *Client) CreateProject(ctx context.Context, input project.CreateProjectInput) (*project.Project, error) {
	var out response.ProjectResponse
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, input, &out); err != nil {
		return nil, err
	}
	return &out.Project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id uint, input project.UpdateProjectInput) error {
	body := struct {
		ProjectID uint `json:"projectId"`
		project.UpdateProjectInput
	}{id, input}
	return c.do(ctx, http.MethodPut, "/api/projects", nil, body, nil)
}

func (c *Client) DeleteProject(ctx context.Context, id uint) error {
	q := url.Values{"projectId": {strconv.FormatUint(uint64(id), 10)}}
	return c.do(ctx, http.MethodDelete, "/api/projects", q, nil, nil)
}

func (c *Client) ListJobs(ctx context.Context) ([]job.Job, error) {
	var out response.JobListResponse
	if err := c.do(ctx, http.MethodGet, "/api/jobs", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Jobs, nil
}

func (c *Client) CreateJob(ctx context.Context, input job.CreateJobInput) (*job.Job, error) {
	var out response.JobResponse
	if err := c.do(ctx, http.MethodPost, "/api/jobs", nil, input, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

func (c *Client) UpdateJob(ctx context.Context, id uint, input job.UpdateJobInput) error {
	body := struct {
		JobID uint `json:"jobId"`
		job.UpdateJobInput
	}{id, input}
	return c.do(ctx, http.MethodPut, "/api/jobs", nil, body, nil)
}

func (c *Client) DeleteJob(ctx context.Context, id uint) error {
	q := url.Values{"jobId": {strconv.FormatUint(uint64(id), 10)}}
	return c.do(ctx, http.MethodDelete, "/api/jobs", q, nil, nil)
}

// LatestMonitoring returns nil when the job has never reported.
func (c *Client) LatestMonitoring(ctx context.Context, jobID uint) (*monitoring.Sample, error) {
	q := url.Values{"jobId": {strconv.FormatUint(uint64(jobID), 10)}}
	var out response.MonitoringResponse
	if err := c.do(ctx, http.MethodGet, "/api/monitoring", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Monitoring, nil
}

func (c *Client) InsertMonitoring(ctx context.Context, input monitoring.InsertSampleInput) error {
	return c.do(ctx, http.MethodPost, "/api/monitoring", nil, input, nil)
}

func (c *Client) GetPricing(ctx context.Context) ([]pricing.HardwarePricing, error) {
	var out response.PricingListResponse
	if err := c.do(ctx, http.MethodGet, "/api/pricing", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Pricing, nil
}

func (c *Client) GetProfile(ctx context.Context) (*user.ProfileView, error) {
	var out response.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, input user.UpdateProfileInput) error {
	return c.do(ctx, http.MethodPut, "/api/user/profile", nil, input, nil)
}

func (c *Client) UpdatePreferences(ctx context.Context, input user.UpdatePreferencesInput) error {
	return c.do(ctx, http.MethodPut, "/api/user/preferences", nil, input, nil)
}

func (c *Client) CreateAPIKey(ctx context.Context, name string) (*response.CreatedAPIKey, error) {
	var out response.APIKeyResponse
	body := user.CreateAPIKeyInput{Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/user/api-keys", nil, body, &out); err != nil {
		return nil, err
	}
	return &out.APIKey, nil
}

func (c *Client) DeleteAPIKey(ctx context.Context, keyID string) error {
	q := url.Values{"keyId": {keyID}}
	return c.do(ctx, http.MethodDelete, "/api/user/api-keys", q, nil, nil)
}

func (c *Client) AddPaymentMethod(ctx context.Context, input user.AddPaymentMethodInput) (*user.PaymentMethod, error) {
	var out response.PaymentMethodResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/payment-methods", nil, input, &out); err != nil {
		return nil, err
	}
	return &out.PaymentMethod, nil
}

func (c *Client) DeletePaymentMethod(ctx context.Context, methodID string) error {
	q := url.Values{"methodId": {methodID}}
	return c.do(ctx, http.MethodDelete, "/api/user/payment-methods", q, nil, nil)
}

func (c *Client) PurchaseCredits(ctx context.Context, amount float64) (*response.PurchaseCreditsResponse, error) {
	var out response.PurchaseCreditsResponse
	body := user.PurchaseCreditsInput{Amount: amount}
	if err := c.do(ctx, http.MethodPost, "/api/user/purchase-credits", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

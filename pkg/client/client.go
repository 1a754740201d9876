package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/workdlabs/workd/pkg/domain"
)

// envelope is the backend's response wrapper. Older endpoints report
// "status", newer ones "success"; either may carry a message.
type envelope struct {
	Status  *bool  `json:"status,omitempty"`
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
}

// ok reports whether the backend marked the response as successful.
// An envelope with neither flag is treated as success (plain data responses).
func (e envelope) ok() bool {
	if e.Status != nil {
		return *e.Status
	}
	if e.Success != nil {
		return *e.Success
	}
	return true
}

// Client is the Workd API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

// New creates a new API client. A nil logger disables request logging.
func New(baseURL, token string, log *logrus.Logger) *Client {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// SetToken replaces the bearer credential, e.g. after a fresh login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SetTimeout overrides the default 30 second request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// --- Auth ---

// LoginResponse is the backend's answer to a successful login. Role is kept
// as the raw string so the caller can detect unrecognized values.
type LoginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &resp, nil
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Skills     string `json:"skills,omitempty"`
	Experience string `json:"experience,omitempty"`
}

// Register creates an account and returns the backend's message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var env envelope
	if err := c.post(ctx, "/auth/register", req, &env); err != nil {
		return "", fmt.Errorf("client.Register: %w", err)
	}
	if !env.ok() {
		return "", &HTTPError{StatusCode: http.StatusOK, Message: orDefault(env.Message, "Registration failed")}
	}
	return env.Message, nil
}

// Logout invalidates the session server-side. Best-effort: local state is
// cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/users/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// --- Freelancer: job board ---

// FindJobs fetches open jobs with optional search text and a maximum budget
// ("" means no cap).
func (c *Client) FindJobs(ctx context.Context, search, budget string) ([]domain.Job, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	if budget != "" {
		params.Set("budget", budget)
	}
	var resp struct {
		envelope
		Jobs []domain.Job `json:"jobs"`
	}
	if err := c.get(ctx, "/users/get_jobs?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("client.FindJobs: %w", err)
	}
	if !resp.ok() {
		return nil, nil
	}
	return resp.Jobs, nil
}

// ApplyJob submits a proposal message for a job.
func (c *Client) ApplyJob(ctx context.Context, jobID, proposal string) (string, error) {
	body := map[string]string{"job_id": jobID, "proposal": proposal}
	return c.postForMessage(ctx, "client.ApplyJob", "/users/apply_job", body)
}

// MyProposals returns the freelancer's sent proposals.
func (c *Client) MyProposals(ctx context.Context) ([]domain.MyProposal, error) {
	var resp struct {
		envelope
		Proposals []domain.MyProposal `json:"proposals"`
	}
	if err := c.get(ctx, "/users/get_my_proposals", &resp); err != nil {
		return nil, fmt.Errorf("client.MyProposals: %w", err)
	}
	if !resp.ok() {
		return nil, nil
	}
	return resp.Proposals, nil
}

// UpdateProposal replaces the message of a pending proposal.
func (c *Client) UpdateProposal(ctx context.Context, proposalID, message string) (string, error) {
	body := map[string]string{"proposal_id": proposalID, "message": message}
	return c.postForMessage(ctx, "client.UpdateProposal", "/users/update_proposal", body)
}

// WithdrawProposal withdraws a pending proposal.
func (c *Client) WithdrawProposal(ctx context.Context, proposalID string) (string, error) {
	body := map[string]string{"proposal_id": proposalID}
	return c.postForMessage(ctx, "client.WithdrawProposal", "/users/withdraw_proposal", body)
}

// AssignedJobs returns jobs assigned to the freelancer.
func (c *Client) AssignedJobs(ctx context.Context) ([]domain.Job, error) {
	return c.jobList(ctx, "client.AssignedJobs", "/users/get_my_assigned_jobs")
}

// UploadJobFiles uploads deliverables for a job as multipart form data.
// The paths are read from the local filesystem.
func (c *Client) UploadJobFiles(ctx context.Context, jobID string, paths []string) (string, error) {
	return c.uploadFiles(ctx, "client.UploadJobFiles", "/users/upload_job_files", jobID, paths)
}

// UpdateJobFiles replaces previously uploaded deliverables.
func (c *Client) UpdateJobFiles(ctx context.Context, jobID string, paths []string) (string, error) {
	return c.uploadFiles(ctx, "client.UpdateJobFiles", "/users/update_job_files", jobID, paths)
}

// CompleteJob marks an assigned job as completed.
func (c *Client) CompleteJob(ctx context.Context, jobID string) (string, error) {
	return c.postForMessage(ctx, "client.CompleteJob", "/users/complete_job", map[string]string{"job_id": jobID})
}

// FreelancerDeletePaidJob removes a paid job from the freelancer's list.
func (c *Client) FreelancerDeletePaidJob(ctx context.Context, jobID string) (string, error) {
	return c.postForMessage(ctx, "client.FreelancerDeletePaidJob", "/users/freelancer_delete_paid_job", map[string]string{"job_id": jobID})
}

// --- Client: postings, proposals, payment ---

// PostJobRequest is the payload for posting a job.
type PostJobRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Budget      int64  `json:"budget"`
	Deadline    string `json:"deadline"`
}

// PostJob creates a job posting and returns the backend's message.
func (c *Client) PostJob(ctx context.Context, req PostJobRequest) (string, error) {
	var env envelope
	if err := c.post(ctx, "/users/post_job", req, &env); err != nil {
		return "", fmt.Errorf("client.PostJob: %w", err)
	}
	if !env.ok() {
		return "", &HTTPError{StatusCode: http.StatusOK, Message: orDefault(env.Message, "Something went wrong")}
	}
	return env.Message, nil
}

// ClientProposals returns the client's jobs with their nested proposals.
func (c *Client) ClientProposals(ctx context.Context) ([]domain.Job, error) {
	return c.jobList(ctx, "client.ClientProposals", "/users/get_proposals")
}

// AssignJob assigns a job to a freelancer.
func (c *Client) AssignJob(ctx context.Context, jobID, freelancerID string) (string, error) {
	body := map[string]string{"job_id": jobID, "freelancer_id": freelancerID}
	return c.postForMessage(ctx, "client.AssignJob", "/users/assign_job", body)
}

// ActiveJobs returns the client's active jobs.
func (c *Client) ActiveJobs(ctx context.Context) ([]domain.Job, error) {
	return c.jobList(ctx, "client.ActiveJobs", "/users/get_my_active_jobs")
}

// PayJob confirms a completed checkout to the backend. The reference is the
// order reference the checkout provider was invoked with.
func (c *Client) PayJob(ctx context.Context, jobID, reference string) (string, error) {
	body := map[string]string{"job_id": jobID, "reference": reference}
	return c.postForMessage(ctx, "client.PayJob", "/users/pay_job", body)
}

// --- Admin ---

// AdminJobs returns a page of all jobs with a status filter ("" for every
// status) and search text, plus the reported page count.
func (c *Client) AdminJobs(ctx context.Context, page int, filter, search string) ([]domain.Job, int, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("filter", filter)
	if search != "" {
		params.Set("search", search)
	}
	var resp struct {
		envelope
		Jobs       []domain.Job `json:"jobs"`
		TotalPages int          `json:"total_pages"`
	}
	if err := c.get(ctx, "/users/admin_get_jobs?"+params.Encode(), &resp); err != nil {
		return nil, 0, fmt.Errorf("client.AdminJobs: %w", err)
	}
	if resp.TotalPages < 1 {
		resp.TotalPages = 1
	}
	return resp.Jobs, resp.TotalPages, nil
}

// AdminDeletePaidJob permanently removes a paid job.
func (c *Client) AdminDeletePaidJob(ctx context.Context, jobID string) (string, error) {
	return c.postForMessage(ctx, "client.AdminDeletePaidJob", "/users/admin_delete_paid_job", map[string]string{"job_id": jobID})
}

// Earnings returns a page of paid-job records, the platform's total earnings,
// and the reported page count.
func (c *Client) Earnings(ctx context.Context, page int, search string) ([]domain.Earning, int64, int, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if search != "" {
		params.Set("search", search)
	}
	var resp struct {
		envelope
		Earnings      []domain.Earning `json:"earnings"`
		TotalEarnings int64            `json:"total_earnings"`
		TotalPages    int              `json:"total_pages"`
	}
	if err := c.get(ctx, "/users/get_earnings?"+params.Encode(), &resp); err != nil {
		return nil, 0, 0, fmt.Errorf("client.Earnings: %w", err)
	}
	if resp.TotalPages < 1 {
		resp.TotalPages = 1
	}
	return resp.Earnings, resp.TotalEarnings, resp.TotalPages, nil
}

// AdminUsers returns a page of accounts filtered by role ("" for all) and
// search text, plus the reported page count.
func (c *Client) AdminUsers(ctx context.Context, page int, role, search string) ([]domain.User, int, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("role", role)
	if search != "" {
		params.Set("search", search)
	}
	var resp struct {
		envelope
		Users      []domain.User `json:"users"`
		TotalPages int           `json:"total_pages"`
	}
	if err := c.get(ctx, "/admin/get_users?"+params.Encode(), &resp); err != nil {
		return nil, 0, fmt.Errorf("client.AdminUsers: %w", err)
	}
	if resp.TotalPages < 1 {
		resp.TotalPages = 1
	}
	return resp.Users, resp.TotalPages, nil
}

// SoftDeleteUsers soft-deletes the given accounts.
func (c *Client) SoftDeleteUsers(ctx context.Context, ids []string) (string, error) {
	var env envelope
	if err := c.post(ctx, "/admin/soft_delete", map[string][]string{"ids": ids}, &env); err != nil {
		return "", fmt.Errorf("client.SoftDeleteUsers: %w", err)
	}
	return orDefault(env.Message, "User soft deleted"), nil
}

// UserActivity returns the activity summary for one account.
func (c *Client) UserActivity(ctx context.Context, id string) (*domain.User, error) {
	params := url.Values{}
	params.Set("id", id)
	var resp struct {
		envelope
		User *domain.User `json:"user"`
	}
	if err := c.get(ctx, "/admin/get_user_activity?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("client.UserActivity: %w", err)
	}
	if !resp.ok() || resp.User == nil {
		return nil, &HTTPError{StatusCode: http.StatusNotFound, Message: "user not found"}
	}
	return resp.User, nil
}

// --- Profiles and settings ---

// ClientProfile returns the client's account record.
func (c *Client) ClientProfile(ctx context.Context) (*domain.Profile, error) {
	return c.profile(ctx, "client.ClientProfile", "/users/get_client_profile")
}

// UpdateClientName renames the client account.
func (c *Client) UpdateClientName(ctx context.Context, name string) (string, error) {
	return c.postForMessage(ctx, "client.UpdateClientName", "/users/update_client_name", map[string]string{"name": name})
}

// UpdateClientPassword changes the client's password.
func (c *Client) UpdateClientPassword(ctx context.Context, current, next string) (string, error) {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.postForMessage(ctx, "client.UpdateClientPassword", "/users/update_client_password", body)
}

// FreelancerProfile returns the freelancer's account record.
func (c *Client) FreelancerProfile(ctx context.Context) (*domain.Profile, error) {
	return c.profile(ctx, "client.FreelancerProfile", "/users/get_freelancer_profile")
}

// UpdateFreelancerName renames the freelancer account.
func (c *Client) UpdateFreelancerName(ctx context.Context, name string) (string, error) {
	return c.postForMessage(ctx, "client.UpdateFreelancerName", "/users/update_freelancer_name", map[string]string{"name": name})
}

// UpdateFreelancerSkills replaces the freelancer's skills line.
func (c *Client) UpdateFreelancerSkills(ctx context.Context, skills string) (string, error) {
	return c.postForMessage(ctx, "client.UpdateFreelancerSkills", "/users/update_freelancer_skills", map[string]string{"skills": skills})
}

// UpdateFreelancerPassword changes the freelancer's password.
func (c *Client) UpdateFreelancerPassword(ctx context.Context, current, next string) (string, error) {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.postForMessage(ctx, "client.UpdateFreelancerPassword", "/users/update_freelancer_password", body)
}

// AdminSettings returns the admin account and platform settings.
func (c *Client) AdminSettings(ctx context.Context) (*domain.AdminSettings, error) {
	var resp struct {
		envelope
		Settings *domain.AdminSettings `json:"settings"`
	}
	if err := c.get(ctx, "/users/get_admin_settings", &resp); err != nil {
		return nil, fmt.Errorf("client.AdminSettings: %w", err)
	}
	if !resp.ok() || resp.Settings == nil {
		return nil, &HTTPError{StatusCode: http.StatusNotFound, Message: "settings not found"}
	}
	return resp.Settings, nil
}

// UpdateAdminName renames the admin account.
func (c *Client) UpdateAdminName(ctx context.Context, name string) (string, error) {
	return c.postForMessage(ctx, "client.UpdateAdminName", "/users/update_admin_name", map[string]string{"name": name})
}

// UpdateAdminPassword changes the admin's password.
func (c *Client) UpdateAdminPassword(ctx context.Context, current, next string) (string, error) {
	body := map[string]string{"current_password": current, "new_password": next}
	return c.postForMessage(ctx, "client.UpdateAdminPassword", "/users/update_admin_password", body)
}

// UpdateAdminCommission sets the platform commission percentage.
func (c *Client) UpdateAdminCommission(ctx context.Context, commission float64) (string, error) {
	body := map[string]float64{"commission": commission}
	return c.postForMessage(ctx, "client.UpdateAdminCommission", "/users/update_admin_commission", body)
}

// CreateAdmin creates another admin account.
func (c *Client) CreateAdmin(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.postForMessage(ctx, "client.CreateAdmin", "/users/create_admin", body)
}

// DeleteAdmin removes an admin account by email.
func (c *Client) DeleteAdmin(ctx context.Context, email string) (string, error) {
	return c.postForMessage(ctx, "client.DeleteAdmin", "/users/delete_admin", map[string]string{"email": email})
}

// --- Stats ---

// GetAdminStats returns the platform-wide dashboard counters.
func (c *Client) GetAdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	if err := c.get(ctx, "/admin/get_stats", &stats); err != nil {
		return nil, fmt.Errorf("client.GetAdminStats: %w", err)
	}
	return &stats, nil
}

// GetClientStats returns the client dashboard counters.
func (c *Client) GetClientStats(ctx context.Context) (*domain.ClientStats, error) {
	var stats domain.ClientStats
	if err := c.get(ctx, "/users/get_client_stats", &stats); err != nil {
		return nil, fmt.Errorf("client.GetClientStats: %w", err)
	}
	return &stats, nil
}

// GetFreelancerStats returns the freelancer dashboard counters.
func (c *Client) GetFreelancerStats(ctx context.Context) (*domain.FreelancerStats, error) {
	var stats domain.FreelancerStats
	if err := c.get(ctx, "/users/get_freelancer_stats", &stats); err != nil {
		return nil, fmt.Errorf("client.GetFreelancerStats: %w", err)
	}
	return &stats, nil
}

// --- plumbing ---

// jobList fetches a {status, jobs} response. A status:false payload means
// "no data", not an error.
func (c *Client) jobList(ctx context.Context, op, path string) ([]domain.Job, error) {
	var resp struct {
		envelope
		Jobs []domain.Job `json:"jobs"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !resp.ok() {
		return nil, nil
	}
	return resp.Jobs, nil
}

func (c *Client) profile(ctx context.Context, op, path string) (*domain.Profile, error) {
	var resp struct {
		envelope
		Profile *domain.Profile `json:"profile"`
	}
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !resp.ok() || resp.Profile == nil {
		return nil, &HTTPError{StatusCode: http.StatusNotFound, Message: "profile not found"}
	}
	return resp.Profile, nil
}

// postForMessage posts a mutation and returns the backend's message. A
// status:false envelope is surfaced as an error carrying that message.
func (c *Client) postForMessage(ctx context.Context, op, path string, body any) (string, error) {
	var env envelope
	if err := c.post(ctx, path, body, &env); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !env.ok() {
		return "", &HTTPError{StatusCode: http.StatusOK, Message: orDefault(env.Message, "request failed")}
	}
	return env.Message, nil
}

func (c *Client) uploadFiles(ctx context.Context, op, path, jobID string, paths []string) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("job_id", jobID); err != nil {
		return "", fmt.Errorf("%s: write field: %w", op, err)
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return "", fmt.Errorf("%s: open %s: %w", op, p, err)
		}
		part, err := w.CreateFormFile("files[]", filepath.Base(p))
		if err != nil {
			f.Close() //nolint:errcheck
			return "", fmt.Errorf("%s: create part: %w", op, err)
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close() //nolint:errcheck
			return "", fmt.Errorf("%s: read %s: %w", op, p, err)
		}
		f.Close() //nolint:errcheck
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%s: close multipart: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return "", fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.setCommonHeaders(req)

	var env envelope
	if err := c.send(req, &env); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !env.ok() {
		return "", &HTTPError{StatusCode: http.StatusOK, Message: orDefault(env.Message, "Upload failed")}
	}
	return env.Message, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setCommonHeaders(req)

	return c.send(req, out)
}

func (c *Client) setCommonHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("url", req.URL.Path).Warn("request failed")
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := string(respBody)
		if json.Unmarshal(respBody, &apiErr) == nil {
			if apiErr.Message != "" {
				msg = apiErr.Message
			} else if apiErr.Error != "" {
				msg = apiErr.Error
			}
		}
		c.log.WithFields(logrus.Fields{"url": req.URL.Path, "code": resp.StatusCode}).Warn(msg)
		return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

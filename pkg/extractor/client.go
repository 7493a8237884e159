package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"talentlens-backend/internal/domain"
)

// APIError is a non-success response from the extraction backend, carrying
// the backend's own status code and human-readable message.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is a thin wrapper over the extraction backend's HTTP surface.
// It performs no retries and sets no timeout; transport failures propagate
// as ordinary errors, distinct from APIError.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SubmitCandidate posts whichever of the two inputs are present as a
// multipart form and returns the extracted raw profile.
func (c *Client) SubmitCandidate(ctx context.Context, linkedinURL string, cv *domain.CVUpload) (domain.RawCandidate, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if linkedinURL != "" {
		if err := writer.WriteField("linkedinUrl", linkedinURL); err != nil {
			return domain.RawCandidate{}, fmt.Errorf("build multipart form: %w", err)
		}
	}
	if cv != nil {
		part, err := writer.CreateFormFile("cvFile", cv.FileName)
		if err != nil {
			return domain.RawCandidate{}, fmt.Errorf("build multipart form: %w", err)
		}
		if _, err := part.Write(cv.Data); err != nil {
			return domain.RawCandidate{}, fmt.Errorf("build multipart form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return domain.RawCandidate{}, fmt.Errorf("build multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/candidates/search", &body)
	if err != nil {
		return domain.RawCandidate{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out domain.RawCandidate
	if err := c.do(req, &out); err != nil {
		return domain.RawCandidate{}, err
	}
	return out, nil
}

// FetchAll retrieves every candidate known to the backend.
func (c *Client) FetchAll(ctx context.Context) ([]domain.RawCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/candidates", nil)
	if err != nil {
		return nil, err
	}

	var out []domain.RawCandidate
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FetchByID retrieves a single candidate. The backend decides what counts as
// not-found; that simply arrives here as an APIError with its status code.
func (c *Client) FetchByID(ctx context.Context, id string) (domain.RawCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/candidates/"+url.PathEscape(id), nil)
	if err != nil {
		return domain.RawCandidate{}, err
	}

	var out domain.RawCandidate
	if err := c.do(req, &out); err != nil {
		return domain.RawCandidate{}, err
	}
	return out, nil
}

func (c *Client) do(req *http.Request, v any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(res.StatusCode, payload)
	}

	// Some backends answer success with an empty body.
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	return json.Unmarshal(payload, v)
}

// newAPIError prefers the backend's own message or detail field, falling back
// to a templated message with the status code.
func newAPIError(status int, body []byte) *APIError {
	message := fmt.Sprintf("request failed with status %d", status)

	var parsed struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			message = parsed.Message
		} else if parsed.Detail != "" {
			message = parsed.Detail
		}
	}
	return &APIError{Status: status, Message: message}
}

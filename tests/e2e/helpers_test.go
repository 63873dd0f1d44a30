package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type TestClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewTestClient(t *testing.T) *TestClient {
	t.Helper()

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &TestClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type LoginResponse struct {
	User        UserDTO `json:"user"`
	AccessToken string  `json:"access_token"`
	ExpiresIn   int64   `json:"expires_in"`
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// doJSONはJSONボディ付きのリクエストを送り、ステータスとボディを返す。
func (c *TestClient) doJSON(t *testing.T, ctx context.Context, method, path, access string, body interface{}) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal failed: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		t.Fatalf("http.NewRequestWithContext failed: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("io.ReadAll failed: %v", err)
	}
	return res.StatusCode, data
}

// adminLoginはE2E_EMAIL/E2E_PASSWORDでログインしてアクセストークンを返す。
// 未登録なら先に登録する。
func adminLogin(t *testing.T, c *TestClient, ctx context.Context) string {
	t.Helper()

	email := os.Getenv("E2E_EMAIL")
	if email == "" {
		email = "e2e@example.com"
	}
	password := os.Getenv("E2E_PASSWORD")
	if password == "" {
		password = "e2e-password"
	}

	creds := CredentialsRequest{Email: email, Password: password}

	status, body := c.doJSON(t, ctx, http.MethodPost, "/auth/login", "", creds)
	if status == http.StatusUnauthorized {
		if st, b := c.doJSON(t, ctx, http.MethodPost, "/auth/register", "", creds); st != http.StatusCreated {
			t.Fatalf("register failed: status=%d body=%s", st, string(b))
		}
		status, body = c.doJSON(t, ctx, http.MethodPost, "/auth/login", "", creds)
	}
	if status != http.StatusOK {
		t.Fatalf("login failed: status=%d body=%s", status, string(body))
	}

	var out LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("json.Unmarshal(LoginResponse) failed: %v body=%s", err, string(body))
	}
	if out.AccessToken == "" {
		t.Fatalf("empty access token: body=%s", string(body))
	}
	return out.AccessToken
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

const sessionCookieName = "sessionId"

// APIClient talks to the daily diet API as a single browser session.
// The cookie jar keeps the sessionId the server issues.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client. A non-empty sessionID is preloaded
// into the jar so requests continue that session.
func NewAPIClient(baseURL, sessionID string) (*APIClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &APIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}

	if sessionID != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing api url: %w", err)
		}
		jar.SetCookies(u, []*http.Cookie{{Name: sessionCookieName, Value: sessionID, Path: "/"}})
	}

	return c, nil
}

// Response types matching backend

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Meal struct {
	ID            string  `json:"id"`
	Meal          string  `json:"meal"`
	BelongsToDiet bool    `json:"belongs_to_diet"`
	Author        *string `json:"author"`
	SessionID     string  `json:"session_id"`
}

type Metrics struct {
	TotalMeals          int `json:"totalMeals"`
	InsideDietMeals     int `json:"insideDietMeals"`
	NotInsideDietMeals  int `json:"notInsideDietMeals"`
	BestSequenceOfMeals int `json:"bestSequenceOfMeals"`
}

// SessionID returns the session cookie currently held by the jar.
func (c *APIClient) SessionID() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == sessionCookieName {
			return cookie.Value
		}
	}
	return ""
}

// CreateUser registers a user named after baseName
func (c *APIClient) CreateUser(baseName string) (*User, error) {
	suffix := time.Now().UnixNano() % 100000
	body := map[string]string{
		"name":  fmt.Sprintf("%s_%d", baseName, suffix),
		"email": fmt.Sprintf("%s_%d@example.com", baseName, suffix),
	}

	var result struct {
		User User `json:"user"`
	}
	if err := c.do(http.MethodPost, "/user", body, http.StatusCreated, &result); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &result.User, nil
}

// CreateMeal records a meal in the current session, starting one if needed
func (c *APIClient) CreateMeal(name string, inDiet bool, authorID string) (*Meal, error) {
	body := map[string]interface{}{
		"meal":          name,
		"description":   "generated by simulator",
		"belongsToDiet": inDiet,
		"author":        authorID,
	}

	var result struct {
		NewMeal Meal `json:"newMeal"`
	}
	if err := c.do(http.MethodPost, "/meals", body, http.StatusCreated, &result); err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	return &result.NewMeal, nil
}

// GetMetrics fetches the current session's metrics
func (c *APIClient) GetMetrics() (*Metrics, error) {
	var metrics Metrics
	if err := c.do(http.MethodGet, "/meals/total", nil, http.StatusOK, &metrics); err != nil {
		return nil, fmt.Errorf("get metrics: %w", err)
	}
	return &metrics, nil
}

// HTTP helpers

func (c *APIClient) do(method, path string, body interface{}, wantStatus int, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Package client is a typed Go client for the recipe API. The bearer token
// lives in an injected CredentialStore rather than in process globals, so
// tests and tools can choose where it is kept.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Raw        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	store      CredentialStore
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for the API rooted at baseURL, for example
// "http://localhost:8080/api/v1". A nil store means a fresh MemoryStore.
func New(baseURL string, store CredentialStore, opts ...Option) *Client {
	if store == nil {
		store = NewMemoryStore()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 90 * time.Second},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	if err := c.store.Set(resp.Token); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*types.AuthResponse, error) {
	var resp types.AuthResponse
	body := types.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if err := c.store.Set(resp.Token); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout forgets the stored token. Tokens are stateless, so the server is
// not contacted.
func (c *Client) Logout() error {
	return c.store.Clear()
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListRecipes(ctx context.Context, filters models.RecipeFilters) ([]models.Recipe, error) {
	q := url.Values{}
	for key, v := range map[string]string{
		"category":   filters.Category,
		"cuisine":    filters.Cuisine,
		"difficulty": filters.Difficulty,
		"q":          filters.Query,
	} {
		if v != "" {
			q.Set(key, v)
		}
	}
	path := "/recipes"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var recipes []models.Recipe
	if err := c.do(ctx, http.MethodGet, path, nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) GetRecipe(ctx context.Context, id uuid.UUID) (*service.RecipeDetail, error) {
	var detail service.RecipeDetail
	if err := c.do(ctx, http.MethodGet, "/recipes/"+id.String(), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) CreateRecipe(ctx context.Context, req types.RecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) UpdateRecipe(ctx context.Context, id uuid.UUID, req types.RecipeRequest) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := c.do(ctx, http.MethodPut, "/recipes/"+id.String(), req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/recipes/"+id.String(), nil, nil)
}

func (c *Client) SubmitReview(ctx context.Context, recipeID uuid.UUID, rating int, comment string) (*types.ReviewSummary, error) {
	var summary types.ReviewSummary
	body := types.ReviewRequest{Rating: rating, Comment: comment}
	if err := c.do(ctx, http.MethodPost, "/recipes/"+recipeID.String()+"/review", body, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) DeleteReview(ctx context.Context, recipeID uuid.UUID) (*types.ReviewSummary, error) {
	var summary types.ReviewSummary
	if err := c.do(ctx, http.MethodDelete, "/recipes/"+recipeID.String()+"/review", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]service.ReviewView, error) {
	var reviews []service.ReviewView
	if err := c.do(ctx, http.MethodGet, "/recipes/"+recipeID.String()+"/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

type savedResponse struct {
	SavedRecipes []uuid.UUID `json:"savedRecipes"`
}

// SaveRecipe returns the caller's saved recipe ids after the change.
func (c *Client) SaveRecipe(ctx context.Context, recipeID uuid.UUID) ([]uuid.UUID, error) {
	var resp savedResponse
	if err := c.do(ctx, http.MethodPost, "/recipes/"+recipeID.String()+"/save", nil, &resp); err != nil {
		return nil, err
	}
	return resp.SavedRecipes, nil
}

func (c *Client) UnsaveRecipe(ctx context.Context, recipeID uuid.UUID) ([]uuid.UUID, error) {
	var resp savedResponse
	if err := c.do(ctx, http.MethodPost, "/recipes/"+recipeID.String()+"/unsave", nil, &resp); err != nil {
		return nil, err
	}
	return resp.SavedRecipes, nil
}

func (c *Client) SavedRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes/saved", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) FileComplaint(ctx context.Context, content, referenceURL string) (*models.Complaint, error) {
	var complaint models.Complaint
	body := types.ComplaintRequest{Content: content, ReferenceURL: referenceURL}
	if err := c.do(ctx, http.MethodPost, "/complaints", body, &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (c *Client) MyComplaints(ctx context.Context) ([]models.Complaint, error) {
	var complaints []models.Complaint
	if err := c.do(ctx, http.MethodGet, "/complaints/my", nil, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (c *Client) GenerateRecipe(ctx context.Context, ingredients []string) (*service.GeneratedRecipe, error) {
	var recipe service.GeneratedRecipe
	body := types.GenerateRecipeRequest{Ingredients: ingredients}
	if err := c.do(ctx, http.MethodPost, "/ai/recipe", body, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) SaveAIRecipe(ctx context.Context, req types.SaveAIRecipeRequest) (*models.AIRecipe, error) {
	var recipe models.AIRecipe
	if err := c.do(ctx, http.MethodPost, "/ai/recipe/save", req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *Client) AIRecipes(ctx context.Context) ([]models.AIRecipe, error) {
	var recipes []models.AIRecipe
	if err := c.do(ctx, http.MethodGet, "/ai/recipes", nil, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.store.Get()
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Message string `json:"message"`
			Raw     string `json:"raw"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.Raw = payload.Raw
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

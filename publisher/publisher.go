package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const bloggerAPIBase = "https://www.googleapis.com/blogger/v3"

// Credentials holds the Google OAuth client plus the target blog. The
// refresh token is the long-lived secret exchanged for a short-lived
// access token on every publish.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	BlogID       string
}

// ErrMissingConfig marks a publish attempt without the required
// environment configuration.
var ErrMissingConfig = errors.New("missing publisher configuration")

// Post is the created Blogger post.
type Post struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type postPayload struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Publisher creates live posts on a Blogger blog. Each Publish call runs
// the two-step protocol: refresh-token grant, then post creation.
type Publisher struct {
	creds    Credentials
	client   *http.Client
	endpoint oauth2.Endpoint
	apiBase  string
	logger   *slog.Logger
}

func New(creds Credentials, client *http.Client, logger *slog.Logger) *Publisher {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		creds:    creds,
		client:   client,
		endpoint: google.Endpoint,
		apiBase:  bloggerAPIBase,
		logger:   logger,
	}
}

// Publish exchanges the refresh token for an access token and creates the
// post, published immediately rather than as a draft.
func (p *Publisher) Publish(ctx context.Context, title, html string) (Post, error) {
	if p.creds.ClientID == "" || p.creds.ClientSecret == "" || p.creds.RefreshToken == "" {
		return Post{}, fmt.Errorf("%w: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REFRESH_TOKEN are required", ErrMissingConfig)
	}
	if p.creds.BlogID == "" {
		return Post{}, fmt.Errorf("%w: BLOGGER_BLOG_ID is required", ErrMissingConfig)
	}

	token, err := p.exchangeToken(ctx)
	if err != nil {
		return Post{}, fmt.Errorf("google token exchange rejected: %w", err)
	}
	p.logger.Info("obtained blogger access token")

	post, err := p.createPost(ctx, token, title, html)
	if err != nil {
		return Post{}, err
	}
	p.logger.Info("post published", "id", post.ID, "url", post.URL)
	return post, nil
}

func (p *Publisher) exchangeToken(ctx context.Context) (*oauth2.Token, error) {
	conf := &oauth2.Config{
		ClientID:     p.creds.ClientID,
		ClientSecret: p.creds.ClientSecret,
		Endpoint:     p.endpoint,
	}
	// Route the grant through our client so timeouts (and tests) apply.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)
	return conf.TokenSource(ctx, &oauth2.Token{RefreshToken: p.creds.RefreshToken}).Token()
}

func (p *Publisher) createPost(ctx context.Context, token *oauth2.Token, title, html string) (Post, error) {
	body, err := json.Marshal(postPayload{
		Kind:    "blogger#post",
		Title:   title,
		Content: html,
	})
	if err != nil {
		return Post{}, err
	}

	url := fmt.Sprintf("%s/blogs/%s/posts/", p.apiBase, p.creds.BlogID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Post{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	token.SetAuthHeader(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return Post{}, fmt.Errorf("blogger request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Post{}, fmt.Errorf("reading blogger response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Post{}, fmt.Errorf("blogger rejected the post: %s", platformMessage(raw, resp.StatusCode))
	}

	var post Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return Post{}, fmt.Errorf("decoding blogger response: %w", err)
	}
	if post.URL == "" && post.ID == "" {
		return Post{}, errors.New("blogger returned no post id or url")
	}
	return post, nil
}

// platformMessage surfaces Blogger's own error message when the body is
// decodable, falling back to the HTTP status.
func platformMessage(raw []byte, status int) string {
	var apiErr apiError
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return fmt.Sprintf("status %d", status)
}

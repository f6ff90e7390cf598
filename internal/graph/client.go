package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"primefire/internal/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// selectFields is the column list requested from the directory for every user
// read. It matches the fields sync mirrors locally.
const selectFields = "id,userPrincipalName,displayName,givenName,surname,jobTitle,department,officeLocation,mail,businessPhones,mobilePhone,streetAddress,city,state,postalCode,country,countryLetterCode"

// tokenEarlyRefresh re-fetches the app token this long before it expires.
const tokenEarlyRefresh = 300 * time.Second

// User is a directory user as returned by the Graph API.
type User struct {
	ID                string   `json:"id"`
	UserPrincipalName string   `json:"userPrincipalName"`
	DisplayName       string   `json:"displayName"`
	GivenName         string   `json:"givenName"`
	Surname           string   `json:"surname"`
	JobTitle          string   `json:"jobTitle"`
	Department        string   `json:"department"`
	OfficeLocation    string   `json:"officeLocation"`
	Mail              string   `json:"mail"`
	BusinessPhones    []string `json:"businessPhones"`
	MobilePhone       string   `json:"mobilePhone"`
	StreetAddress     string   `json:"streetAddress"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	PostalCode        string   `json:"postalCode"`
	Country           string   `json:"country"`
	CountryLetterCode string   `json:"countryLetterCode"`
}

// Client talks to the Microsoft Graph users API. Requires an app registration
// with User.Read.All and User.ReadWrite.All application permissions.
type Client interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, userID string, fields map[string]interface{}) (*User, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient builds a Graph client authenticating via the client credentials
// grant against the tenant's token endpoint.
func NewClient(cfg *config.Config, log *logrus.Logger) Client {
	cc := &clientcredentials.Config{
		ClientID:     cfg.GraphClientID,
		ClientSecret: cfg.GraphClientSecret,
		TokenURL:     "https://login.microsoftonline.com/" + cfg.GraphTenantID + "/oauth2/v2.0/token",
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	return &client{
		baseURL: strings.TrimRight(cfg.GraphBaseURL, "/"),
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: newCachedTokenSource(cc)},
			Timeout:   30 * time.Second,
		},
		log: log,
	}
}

func (c *client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	url := c.baseURL + "/users?$select=" + selectFields

	for url != "" {
		var page struct {
			Value    []User `json:"value"`
			NextLink string `json:"@odata.nextLink"`
		}
		if err := c.do(ctx, http.MethodGet, url, nil, &page); err != nil {
			return nil, err
		}
		users = append(users, page.Value...)
		url = page.NextLink
	}

	c.log.WithField("count", len(users)).Debug("fetched directory users")
	return users, nil
}

func (c *client) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	url := c.baseURL + "/users/" + userID + "?$select=" + selectFields
	if err := c.do(ctx, http.MethodGet, url, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *client) UpdateUser(ctx context.Context, userID string, fields map[string]interface{}) (*User, error) {
	if err := c.do(ctx, http.MethodPatch, c.baseURL+"/users/"+userID, fields, nil); err != nil {
		return nil, err
	}
	// Graph PATCH returns 204, so fetch the updated record
	return c.GetUser(ctx, userID)
}

func (c *client) do(ctx context.Context, method, url string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graph request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("graph %s %s returned %d: %s", method, url, resp.StatusCode, snippet)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// cachedTokenSource caches the app token and fetches a fresh one once the
// cached token is within tokenEarlyRefresh of expiring.
type cachedTokenSource struct {
	mu    sync.Mutex
	conf  *clientcredentials.Config
	token *oauth2.Token
}

func newCachedTokenSource(conf *clientcredentials.Config) oauth2.TokenSource {
	return &cachedTokenSource{conf: conf}
}

func (s *cachedTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != nil && time.Until(s.token.Expiry) > tokenEarlyRefresh {
		return s.token, nil
	}

	token, err := s.conf.Token(context.Background())
	if err != nil {
		return nil, fmt.Errorf("graph token request failed: %w", err)
	}
	s.token = token
	return token, nil
}

// Package catalog is the read-side data access client for the cars API,
// used by server-rendered pages. Every operation is a single attempt with
// no cache and no retry, and every failure degrades silently: list reads
// come back empty with default pagination, single reads come back absent.
// Errors are logged, never surfaced. The UI treats a backend outage the
// same as "no results".
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/emretknc/driveaway/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Query mirrors the filter parameters of GET /api/cars. Zero values are
// omitted from the request.
type Query struct {
	Search       string
	Type         string
	Location     string
	MinPrice     float64
	MaxPrice     float64
	Transmission string
	FuelType     string
	Seats        int
	Limit        int
	Page         int
	SortBy       string
	SortOrder    string
}

func (q Query) encode() string {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set("search", q.Search)
	set("type", q.Type)
	set("location", q.Location)
	set("transmission", q.Transmission)
	set("fuelType", q.FuelType)
	set("sortBy", q.SortBy)
	set("sortOrder", q.SortOrder)
	if q.MinPrice > 0 {
		values.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		values.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Seats > 0 {
		values.Set("seats", strconv.Itoa(q.Seats))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	return values.Encode()
}

// GetCars lists catalog entries. On any failure it returns an empty
// response with default pagination rather than an error.
func (c *Client) GetCars(ctx context.Context, query Query) *models.CarsResponse {
	var response models.CarsResponse
	if err := c.getJSON(ctx, "/api/cars?"+query.encode(), &response); err != nil {
		c.logger.Error("Error fetching cars", "error", err)
		return emptyCarsResponse(query)
	}
	if response.Cars == nil {
		response.Cars = []*models.Car{}
	}
	return &response
}

// GetCarByID returns the car or nil when it is missing or the request
// failed. Callers cannot distinguish the two; both render as "not found".
func (c *Client) GetCarByID(ctx context.Context, id string) *models.Car {
	var response struct {
		Car *models.Car `json:"car"`
	}
	if err := c.getJSON(ctx, "/api/cars/"+url.PathEscape(id), &response); err != nil {
		c.logger.Error("Error fetching car", "car_id", id, "error", err)
		return nil
	}
	return response.Car
}

// GetCarDetails returns the car together with its visible reviews.
func (c *Client) GetCarDetails(ctx context.Context, id string) (*models.Car, []*models.Review) {
	var response struct {
		Car     *models.Car      `json:"car"`
		Reviews []*models.Review `json:"reviews"`
	}
	if err := c.getJSON(ctx, "/api/cars/"+url.PathEscape(id), &response); err != nil {
		c.logger.Error("Error fetching car details", "car_id", id, "error", err)
		return nil, nil
	}
	return response.Car, response.Reviews
}

// GetPopularCars returns the top four cars by rating.
func (c *Client) GetPopularCars(ctx context.Context) []*models.Car {
	return c.GetCars(ctx, Query{
		Limit:     4,
		SortBy:    "averageRating",
		SortOrder: "desc",
	}).Cars
}

// GetRecommendedCars returns the eight most recently added cars.
func (c *Client) GetRecommendedCars(ctx context.Context) []*models.Car {
	return c.GetCars(ctx, Query{
		Limit:     8,
		SortBy:    "createdAt",
		SortOrder: "desc",
	}).Cars
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func emptyCarsResponse(query Query) *models.CarsResponse {
	limit := query.Limit
	if limit <= 0 {
		limit = 12
	}
	return &models.CarsResponse{
		Cars: []*models.Car{},
		Pagination: models.Pagination{
			Page:        1,
			Limit:       limit,
			TotalPages:  0,
			TotalCars:   0,
			HasNextPage: false,
			HasPrevPage: false,
		},
	}
}

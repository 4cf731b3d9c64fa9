package entropy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultURL asks random.org for one decimal fraction in [0, 1), plain text.
const DefaultURL = "https://www.random.org/decimal-fractions/?num=1&dec=2&col=1&format=plain&rnd=new"

const defaultTimeout = 5 * time.Second

var (
	ErrUnavailable = errors.New("random.org request failed")
	ErrBadResponse = errors.New("invalid response from random.org")
	ErrOutOfRange  = errors.New("random.org draw outside [0, 1]")
)

// Client fetches battle draws from random.org. Draws are validated against
// the [0, 1] contract the arena relies on; out-of-range values are rejected
// rather than clamped.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

type Config struct {
	URL     string
	Timeout time.Duration
}

func New(cfg Config, logger *zap.SugaredLogger) *Client {
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Draw fetches a single random number in [0, 1]. No retry; a failed draw
// fails the battle that requested it.
func (c *Client) Draw(ctx context.Context) (float64, error) {
	c.logger.Debugw("fetching random number", "url", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("random.org request failed", "error", err)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Errorw("random.org returned non-OK status", "status", resp.StatusCode)
		return 0, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	raw := strings.TrimSpace(string(body))

	draw, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.logger.Errorw("random.org returned a non-numeric body", "body", raw)
		return 0, fmt.Errorf("%w: %q", ErrBadResponse, raw)
	}

	if draw < 0 || draw > 1 {
		c.logger.Errorw("random.org draw outside expected range", "draw", draw)
		return 0, fmt.Errorf("%w: got %v", ErrOutOfRange, draw)
	}

	c.logger.Debugw("received random number", "draw", draw)

	return draw, nil
}

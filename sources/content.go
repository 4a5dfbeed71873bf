package sources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/kova98/lueur/config"
	"github.com/kova98/lueur/models"
)

var (
	ErrEmptyPool  = errors.New("content pool is empty")
	ErrMissingKey = errors.New("content item is missing a key")
)

var (
	quoteKeys   = []string{"text"}
	productKeys = []string{"title", "description", "link"}
)

// fallbackQuotes stand in for a quotes file that does not exist on disk.
var fallbackQuotes = []models.Quote{
	{Text: "La lumière que tu cherches à l’extérieur brille déjà en toi."},
	{Text: "Chaque jour est une nouvelle chance de semer des graines de bonheur."},
}

// Pool is a decoded content pool. It remembers which keys each item carried
// so an absent key can be told apart from an empty value.
type Pool[T any] struct {
	Items    []T
	keys     []map[string]json.RawMessage
	required []string
}

type ContentLoader struct {
	logger *slog.Logger
	client *resty.Client
}

func NewContentLoader(logger *slog.Logger, client *resty.Client) *ContentLoader {
	return &ContentLoader{
		logger: logger,
		client: client,
	}
}

// Quotes loads the quote pool. Only a missing local file falls back to the
// built-in quotes; remote failures and parse errors are returned.
func (l *ContentLoader) Quotes(ctx context.Context, ref string) (Pool[models.Quote], error) {
	if !config.IsRemote(ref) {
		if _, err := os.Stat(ref); errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("quotes file not found, using built-in quotes", "path", ref)
			return Pool[models.Quote]{Items: append([]models.Quote(nil), fallbackQuotes...)}, nil
		}
	}
	return LoadPool[models.Quote](ctx, l, ref, quoteKeys...)
}

func (l *ContentLoader) Products(ctx context.Context, ref string) (Pool[models.Product], error) {
	return LoadPool[models.Product](ctx, l, ref, productKeys...)
}

// LoadPool reads a JSON array of T from a local path or an http(s) URL.
// Items lacking one of the required keys are only rejected once chosen.
func LoadPool[T any](ctx context.Context, l *ContentLoader, ref string, required ...string) (Pool[T], error) {
	var raw []byte
	if config.IsRemote(ref) {
		resp, err := l.client.R().SetContext(ctx).Get(ref)
		if err != nil {
			return Pool[T]{}, fmt.Errorf("fetch %s: %w", ref, err)
		}
		if resp.IsError() {
			return Pool[T]{}, fmt.Errorf("fetch %s: status %d: %s", ref, resp.StatusCode(), truncate(resp.String(), 300))
		}
		raw = resp.Body()
	} else {
		data, err := os.ReadFile(ref)
		if err != nil {
			return Pool[T]{}, fmt.Errorf("read %s: %w", ref, err)
		}
		raw = data
	}

	pool := Pool[T]{required: required}
	if err := json.Unmarshal(raw, &pool.Items); err != nil {
		return Pool[T]{}, fmt.Errorf("parse %s: %w", ref, err)
	}
	if err := json.Unmarshal(raw, &pool.keys); err != nil {
		return Pool[T]{}, fmt.Errorf("parse %s: %w", ref, err)
	}

	l.logger.Debug("loaded content pool", "ref", ref, "items", len(pool.Items))
	return pool, nil
}

// Choose picks one item uniformly at random. The picked item must carry every
// required key, though its value may be empty.
func Choose[T any](rng *rand.Rand, pool Pool[T]) (T, error) {
	var zero T
	if len(pool.Items) == 0 {
		return zero, ErrEmptyPool
	}

	i := rng.IntN(len(pool.Items))
	for _, key := range pool.required {
		if _, ok := pool.keys[i][key]; !ok {
			return zero, fmt.Errorf("%w: item %d has no %q", ErrMissingKey, i, key)
		}
	}

	return pool.Items[i], nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

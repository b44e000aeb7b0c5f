// Package external talks to third-party food databases and normalizes their
// products into nutrition labels.
package external

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrUnknownProvider = errors.New("unknown food provider")
)

// Food is a product as reported by an external provider.
type Food struct {
	Name        string
	Brand       string
	Barcode     string
	Description string
	Source      string
	SourceID    string
	Facts       nutrition.Facts
}

// Provider is an external food database.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Food, error)
	Barcode(ctx context.Context, code string) (*Food, error)
}

// Options configures the HTTP backed providers.
type Options struct {
	OpenFoodFactsURL string
	USDAURL          string
	USDAAPIKey       string
	Timeout          time.Duration
}

// New builds the providers named in names, in order. Known names are
// "catalog", "openfoodfacts" and "usda".
func New(names []string, opts Options) ([]Provider, error) {
	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(name) {
		case "catalog":
			providers = append(providers, NewCatalog())
		case "openfoodfacts":
			providers = append(providers, NewOpenFoodFacts(opts.OpenFoodFactsURL, opts.Timeout))
		case "usda":
			providers = append(providers, NewUSDA(opts.USDAURL, opts.USDAAPIKey, opts.Timeout))
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
		}
	}
	return providers, nil
}

// Chain queries several providers as one.
type Chain struct {
	providers []Provider
	log       *zap.Logger
}

// NewChain creates a Chain over providers.
func NewChain(log *zap.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, log: log}
}

// Search collects up to limit results across providers in order, skipping
// products already returned by an earlier provider. A failing provider is
// logged and skipped.
func (c *Chain) Search(ctx context.Context, query string, limit int) []Food {
	var out []Food
	seen := make(map[string]bool)
	for _, p := range c.providers {
		if len(out) >= limit {
			break
		}
		foods, err := p.Search(ctx, query, limit-len(out))
		if err != nil {
			c.log.Warn("external search failed",
				zap.String("provider", p.Name()),
				zap.String("query", query),
				zap.Error(err),
			)
			continue
		}
		for _, f := range foods {
			key := f.Source + "/" + f.SourceID
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, f)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Barcode returns the first provider's match for code.
func (c *Chain) Barcode(ctx context.Context, code string) (*Food, error) {
	for _, p := range c.providers {
		f, err := p.Barcode(ctx, code)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, ErrNotFound) {
			c.log.Warn("external barcode lookup failed",
				zap.String("provider", p.Name()),
				zap.String("barcode", code),
				zap.Error(err),
			)
		}
	}
	return nil, ErrNotFound
}

func ptr(v float64) *float64 { return &v }

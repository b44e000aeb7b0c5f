package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/snedea/meal-planner-app/internal/nutrition"
)

// USDA queries FoodData Central.
type USDA struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewUSDA creates a FoodData Central provider. An empty key uses the public
// DEMO_KEY, which is heavily rate limited.
func NewUSDA(baseURL, apiKey string, timeout time.Duration) *USDA {
	if apiKey == "" {
		apiKey = "DEMO_KEY"
	}
	return &USDA{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.
func (u *USDA) Name() string { return "usda" }

type usdaFood struct {
	FdcID           int64   `json:"fdcId"`
	Description     string  `json:"description"`
	BrandOwner      string  `json:"brandOwner"`
	GtinUpc         string  `json:"gtinUpc"`
	ServingSize     float64 `json:"servingSize"`
	ServingSizeUnit string  `json:"servingSizeUnit"`
	FoodNutrients   []struct {
		NutrientNumber string  `json:"nutrientNumber"`
		Value          float64 `json:"value"`
	} `json:"foodNutrients"`
}

type usdaSearchResponse struct {
	Foods []usdaFood `json:"foods"`
}

// Search runs a FoodData Central search.
func (u *USDA) Search(ctx context.Context, query string, limit int) ([]Food, error) {
	v := url.Values{}
	v.Set("query", query)
	v.Set("pageSize", strconv.Itoa(limit))
	v.Set("api_key", u.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/foods/search?"+v.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create usda request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call usda: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read usda response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("usda API error %d: %s", resp.StatusCode, string(body))
	}

	var sr usdaSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse usda JSON: %w", err)
	}

	out := make([]Food, 0, len(sr.Foods))
	for _, f := range sr.Foods {
		out = append(out, f.toFood())
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Barcode implements Provider. FoodData Central has no barcode endpoint.
func (u *USDA) Barcode(_ context.Context, _ string) (*Food, error) {
	return nil, ErrNotFound
}

// FoodData Central nutrient numbers.
const (
	nutrientEnergy       = "208"
	nutrientProtein      = "203"
	nutrientCarbs        = "205"
	nutrientFat          = "204"
	nutrientFiber        = "291"
	nutrientSugars       = "269"
	nutrientSaturatedFat = "606"
	nutrientTransFat     = "605"
	nutrientCholesterol  = "601"
	nutrientSodium       = "307"
)

// toFood converts a search hit. Branded foods report nutrients per 100 g
// alongside a household serving; survey and foundation foods are per 100 g.
func (f usdaFood) toFood() Food {
	values := make(map[string]float64, len(f.FoodNutrients))
	for _, n := range f.FoodNutrients {
		values[n.NutrientNumber] = n.Value
	}
	opt := func(num string) *float64 {
		if v, ok := values[num]; ok {
			return ptr(v)
		}
		return nil
	}

	return Food{
		Name:        f.Description,
		Brand:       f.BrandOwner,
		Barcode:     f.GtinUpc,
		Description: f.Description,
		Source:      "usda",
		SourceID:    strconv.FormatInt(f.FdcID, 10),
		Facts: nutrition.Facts{
			ServingSize:   100,
			ServingUnit:   "g",
			Calories:      values[nutrientEnergy],
			ProteinG:      values[nutrientProtein],
			CarbsG:        values[nutrientCarbs],
			FatsG:         values[nutrientFat],
			FiberG:        opt(nutrientFiber),
			SugarG:        opt(nutrientSugars),
			SaturatedFatG: opt(nutrientSaturatedFat),
			TransFatG:     opt(nutrientTransFat),
			CholesterolMg: opt(nutrientCholesterol),
			SodiumMg:      opt(nutrientSodium),
		},
	}
}

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

// OpenFoodFacts queries the Open Food Facts product database. Nutrition is
// reported per 100 g.
type OpenFoodFacts struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFacts creates an Open Food Facts provider.
func NewOpenFoodFacts(baseURL string, timeout time.Duration) *OpenFoodFacts {
	return &OpenFoodFacts{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.
func (o *OpenFoodFacts) Name() string { return "openfoodfacts" }

type offProduct struct {
	Code        string `json:"code"`
	ProductName string `json:"product_name"`
	Brands      string `json:"brands"`
	GenericName string `json:"generic_name"`
	Nutriments  struct {
		EnergyKcal   *float64 `json:"energy-kcal_100g"`
		Proteins     *float64 `json:"proteins_100g"`
		Carbs        *float64 `json:"carbohydrates_100g"`
		Fat          *float64 `json:"fat_100g"`
		Fiber        *float64 `json:"fiber_100g"`
		Sugars       *float64 `json:"sugars_100g"`
		SaturatedFat *float64 `json:"saturated-fat_100g"`
		TransFat     *float64 `json:"trans-fat_100g"`
		Cholesterol  *float64 `json:"cholesterol_100g"`
		Sodium       *float64 `json:"sodium_100g"`
	} `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offProductResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// Search runs a full text product search.
func (o *OpenFoodFacts) Search(ctx context.Context, query string, limit int) ([]Food, error) {
	v := url.Values{}
	v.Set("search_terms", query)
	v.Set("search_simple", "1")
	v.Set("action", "process")
	v.Set("json", "1")
	v.Set("page_size", strconv.Itoa(limit))

	var sr offSearchResponse
	if err := o.get(ctx, "/cgi/search.pl?"+v.Encode(), &sr); err != nil {
		return nil, err
	}

	out := make([]Food, 0, len(sr.Products))
	for _, p := range sr.Products {
		if f, ok := p.toFood(); ok {
			out = append(out, f)
		}
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Barcode looks a product up by its barcode.
func (o *OpenFoodFacts) Barcode(ctx context.Context, code string) (*Food, error) {
	var pr offProductResponse
	if err := o.get(ctx, "/api/v2/product/"+url.PathEscape(code)+".json", &pr); err != nil {
		return nil, err
	}
	if pr.Status != 1 {
		return nil, ErrNotFound
	}
	f, ok := pr.Product.toFood()
	if !ok {
		return nil, ErrNotFound
	}
	if f.Barcode == "" {
		f.Barcode = code
	}
	return &f, nil
}

func (o *OpenFoodFacts) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", "meal-planner/1.0")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call openfoodfacts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read openfoodfacts response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openfoodfacts API error %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse openfoodfacts JSON: %w", err)
	}
	return nil
}

// toFood converts a product; products without a name or energy value are
// skipped.
func (p offProduct) toFood() (Food, bool) {
	n := p.Nutriments
	if strings.TrimSpace(p.ProductName) == "" || n.EnergyKcal == nil {
		return Food{}, false
	}

	brand := p.Brands
	if i := strings.Index(brand, ","); i >= 0 {
		brand = brand[:i]
	}

	facts := nutrition.Facts{
		ServingSize:   100,
		ServingUnit:   "g",
		Calories:      *n.EnergyKcal,
		ProteinG:      deref(n.Proteins),
		CarbsG:        deref(n.Carbs),
		FatsG:         deref(n.Fat),
		FiberG:        n.Fiber,
		SugarG:        n.Sugars,
		SaturatedFatG: n.SaturatedFat,
		TransFatG:     n.TransFat,
	}
	// Open Food Facts reports cholesterol and sodium in grams.
	if n.Cholesterol != nil {
		facts.CholesterolMg = ptr(*n.Cholesterol * 1000)
	}
	if n.Sodium != nil {
		facts.SodiumMg = ptr(*n.Sodium * 1000)
	}

	return Food{
		Name:        strings.TrimSpace(p.ProductName),
		Brand:       strings.TrimSpace(brand),
		Barcode:     p.Code,
		Description: p.GenericName,
		Source:      "openfoodfacts",
		SourceID:    p.Code,
		Facts:       facts,
	}, true
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

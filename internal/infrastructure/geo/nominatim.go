package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/CamiloBytes/reportesvc/domain"
)

// NominatimGeocoder implements domain.Geocoder against the OpenStreetMap
// Nominatim search endpoint.
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimGeocoder creates a geocoder for the Nominatim instance at
// baseURL.
func NewNominatimGeocoder(baseURL string, timeout time.Duration) domain.Geocoder {
	return &NominatimGeocoder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode implements domain.Geocoder. Any failure, including an empty
// result set, reads as ErrGeocodingFailed; callers decide the fallback.
func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&q=%s", g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrGeocodingFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrGeocodingFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("%w: status %d", domain.ErrGeocodingFailed, resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", domain.ErrGeocodingFailed, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: no match for %q", domain.ErrGeocodingFailed, address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad latitude %q", domain.ErrGeocodingFailed, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad longitude %q", domain.ErrGeocodingFailed, results[0].Lon)
	}
	return lat, lon, nil
}

// FormatAddress builds the full query string the way the map form does:
// street address, barrio, city, country, each word capitalized.
func FormatAddress(address, barrio string) string {
	addr := Capitalize(address)
	bar := Capitalize(barrio)
	if addr == "" || bar == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s, Barranquilla, Colombia", addr, bar)
}

// Capitalize uppercases the first letter of every word and collapses runs
// of whitespace. The first letter may be multibyte (Único, Álamos), so the
// split has to land on a rune boundary, not the first byte.
func Capitalize(text string) string {
	words := strings.Fields(text)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

var _ domain.Geocoder = (*NominatimGeocoder)(nil)

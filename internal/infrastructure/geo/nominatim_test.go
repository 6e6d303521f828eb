package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CamiloBytes/reportesvc/domain"
)

func TestNominatimGeocoder_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Calle 72 #45-10, El Prado, Barranquilla, Colombia" {
			t.Errorf("unexpected query: %q", got)
		}
		w.Write([]byte(`[{"lat":"10.9934","lon":"-74.7990"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(srv.URL, time.Second)

	lat, lon, err := g.Geocode(context.Background(), "Calle 72 #45-10, El Prado, Barranquilla, Colombia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lat != 10.9934 || lon != -74.7990 {
		t.Errorf("unexpected coordinates: %f, %f", lat, lon)
	}
}

func TestNominatimGeocoder_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "empty result set",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
		},
		{
			name: "upstream error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "garbage payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"oops"`))
			},
		},
		{
			name: "non-numeric coordinates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"lat":"north","lon":"west"}]`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			g := NewNominatimGeocoder(srv.URL, time.Second)
			_, _, err := g.Geocode(context.Background(), "anywhere")
			if !errors.Is(err, domain.ErrGeocodingFailed) {
				t.Fatalf("expected ErrGeocodingFailed, got %v", err)
			}
		})
	}
}

func TestFormatAddress(t *testing.T) {
	got := FormatAddress("calle 72  #45-10", "el prado")
	want := "Calle 72 #45-10, El Prado, Barranquilla, Colombia"
	if got != want {
		t.Errorf("FormatAddress = %q, want %q", got, want)
	}

	if FormatAddress("", "El Prado") != "" {
		t.Error("missing address should format to empty")
	}
	if FormatAddress("Calle 72", " ") != "" {
		t.Error("missing barrio should format to empty")
	}

	got = FormatAddress("carrera 8 #30-15", "los álamos")
	want = "Carrera 8 #30-15, Los Álamos, Barranquilla, Colombia"
	if got != want {
		t.Errorf("FormatAddress = %q, want %q", got, want)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "el prado", want: "El Prado"},
		{in: "  siete   de abril ", want: "Siete De Abril"},
		{in: "REBOLO", want: "Rebolo"},
		{in: "único álamos", want: "Único Álamos"},
		{in: "ÑAPA", want: "Ñapa"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

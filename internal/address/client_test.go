package address

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
)

func TestLookupResolvesMaskedInput(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"Sao Paulo","uf":"SP"}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	got, err := client.Lookup(context.Background(), "01310-100")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if gotPath != "/ws/01310100/json/" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if got.Street != "Avenida Paulista" || got.City != "Sao Paulo" || got.State != "SP" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestLookupNotFoundFlag(t *testing.T) {
	t.Parallel()

	// ViaCEP reports unknown codes with 200 + {"erro": true}; some fronts
	// serialize the flag as a string.
	for _, body := range []string{`{"erro": true}`, `{"erro": "true"}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}))

		client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
		_, err := client.Lookup(context.Background(), "99999999")
		if !pkgerrors.IsNotFound(err) {
			t.Fatalf("body %s: expected not found, got %v", body, err)
		}
		server.Close()
	}
}

func TestLookupRejectsIncompleteCode(t *testing.T) {
	t.Parallel()

	client := NewClient()
	_, err := client.Lookup(context.Background(), "0131")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLookupTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Lookup(context.Background(), "01310100")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLookupServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	_, err := client.Lookup(context.Background(), "01310100")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

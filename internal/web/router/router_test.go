package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterRoutes(t *testing.T) {
	r := NewRouter()
	r.Get("/people", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})
	r.Put("/people/{personId}", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("put " + NewParamExtractor(req).PathParam("personId")))
	})

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{method: http.MethodGet, path: "/people", status: http.StatusOK, body: "list"},
		{method: http.MethodPut, path: "/people/7", status: http.StatusOK, body: "put 7"},
		{method: http.MethodPost, path: "/people", status: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/missing", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestRouterIntrospection(t *testing.T) {
	r := NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.Get("/people", noop).Named("people")
	r.Post("/people/customer/{personId}/details", noop).Named("details")
	r.Patch("/a", noop)
	r.Delete("/b", noop)

	routes := r.GetRoutes()
	require.Len(t, routes, 4)
	assert.Equal(t, "people", routes[0].Name)
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, []string{"personId"}, routes[1].Parameters)
	assert.Nil(t, routes[0].Parameters)
}

func TestRouterURL(t *testing.T) {
	r := NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	r.Get("/people", noop).Named("people")
	r.Get("/people/customer/{personId}/details", noop).Named("details")

	u, err := r.URL("details", map[string]string{"personId": "1234"})
	require.NoError(t, err)
	assert.Equal(t, "/people/customer/1234/details", u)

	u, err = r.URL("people", nil)
	require.NoError(t, err)
	assert.Equal(t, "/people", u)

	_, err = r.URL("details", nil)
	assert.Error(t, err)

	_, err = r.URL("unknown", nil)
	assert.Error(t, err)

	pattern, err := r.Pattern("details")
	require.NoError(t, err)
	assert.Equal(t, "/people/customer/{personId}/details", pattern)

	_, err = r.Pattern("unknown")
	assert.Error(t, err)
}

func TestRouterCustomErrorHandlers(t *testing.T) {
	r := NewRouter()
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("custom 404"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte("custom 405"))
	})
	r.Get("/only-get", func(http.ResponseWriter, *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, "custom 404", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/only-get", nil))
	assert.Equal(t, "custom 405", rec.Body.String())
}

func TestRouterMiddleware(t *testing.T) {
	r := NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Test", "yes")
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/", func(http.ResponseWriter, *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "yes", rec.Header().Get("X-Test"))
}

func TestParamExtractor(t *testing.T) {
	r := NewRouter()
	var got struct {
		id      int
		idErr   error
		name    string
		has     bool
		age     int
		ageOK   bool
		numbers []int
		attrs   []string
	}
	r.Post("/people/{personId}", func(w http.ResponseWriter, req *http.Request) {
		p := NewParamExtractor(req)
		got.id, got.idErr = p.PathParamInt("personId")
		got.name = p.Param("name")
		got.has = p.Has("attr")
		got.age, got.ageOK, _ = p.ParamInt("age")
		got.numbers, _ = p.ParamInts("number")
		got.attrs = p.Params("attr")
	})

	form := url.Values{}
	form.Set("name", "Bilbo")
	form.Add("number", "1")
	form.Add("number", "")
	form.Add("number", "3")
	form.Add("attr", "")

	req := httptest.NewRequest(http.MethodPost, "/people/1234?age=111", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, got.idErr)
	assert.Equal(t, 1234, got.id)
	assert.Equal(t, "Bilbo", got.name)
	assert.True(t, got.has)
	assert.Equal(t, 111, got.age)
	assert.True(t, got.ageOK)
	assert.Equal(t, []int{1, 3}, got.numbers)
	assert.Empty(t, got.attrs)
}

func TestParamExtractorErrors(t *testing.T) {
	r := NewRouter()
	var idErr, ageErr, numErr error
	r.Get("/people/{personId}", func(w http.ResponseWriter, req *http.Request) {
		p := NewParamExtractor(req)
		_, idErr = p.PathParamInt("personId")
		_, _, ageErr = p.ParamInt("age")
		_, numErr = p.ParamInts("number")
		io.WriteString(w, "ok")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/people/abc?age=x&number=y", nil))
	assert.Error(t, idErr)
	assert.Error(t, ageErr)
	assert.Error(t, numErr)
}

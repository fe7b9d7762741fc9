package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/johananj/geocaption/internal/gps"
)

var testCoord = gps.Coordinate{Latitude: 40.0, Longitude: -74.0}

func newTestClient(handler http.HandlerFunc, timeout time.Duration) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, timeout), srv
}

func TestResolveJoinsAddressFields(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		w.Write([]byte(`{"address":{"city":"New York","country":"USA"}}`))
	}, time.Second)
	defer srv.Close()

	assert.Equal(t, "New York, USA", client.Resolve(context.Background(), testCoord))
}

func TestResolveFieldPriorityOrder(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{
			"country":"UK",
			"state":"England",
			"state_district":"Greater London",
			"city":"London",
			"suburb":"Soho",
			"road":"Carnaby Street"
		}}`))
	}, time.Second)
	defer srv.Close()

	assert.Equal(t,
		"Carnaby Street, Soho, London, Greater London, England, UK",
		client.Resolve(context.Background(), testCoord))
}

func TestResolveSkipsAbsentFields(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"road":"A1","country":"UK"}}`))
	}, time.Second)
	defer srv.Close()

	assert.Equal(t, "A1, UK", client.Resolve(context.Background(), testCoord))
}

func TestResolveEmptyAddressIsUnknownLocation(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{}}`))
	}, time.Second)
	defer srv.Close()

	assert.Equal(t, UnknownLocation, client.Resolve(context.Background(), testCoord))
}

func TestResolveServiceErrorResultIsUnknownLocation(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Unable to geocode"}`))
	}, time.Second)
	defer srv.Close()

	assert.Equal(t, UnknownLocation, client.Resolve(context.Background(), testCoord))
}

func TestResolveTimeoutIsLocationUnavailable(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"address":{"city":"Nowhere"}}`))
	}, 50*time.Millisecond)
	defer srv.Close()

	assert.Equal(t, LocationUnavailable, client.Resolve(context.Background(), testCoord))
}

func TestResolveServerErrorIsLocationUnavailable(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, time.Second)
	defer srv.Close()

	assert.Equal(t, LocationUnavailable, client.Resolve(context.Background(), testCoord))
}

func TestResolveUnreachableServiceIsLocationUnavailable(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {}, time.Second)
	srv.Close() // connection refused from here on

	assert.Equal(t, LocationUnavailable, client.Resolve(context.Background(), testCoord))
}

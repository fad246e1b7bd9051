package storeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

func TestFetchTrailers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/trailers", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Product{
			{ID: "t1", Name: "Причіп Кремень ПЛ-2", Category: models.CategoryTrailers},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	products, err := client.FetchTrailers(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "t1", products[0].ID)
}

func TestWithTokenSendsBearerHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.User{ID: "u1", Email: "olena@example.com"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL).WithToken("tok-123")
	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
}

func TestWithTokenDoesNotMutateBaseClient(t *testing.T) {
	var gotAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	defer srv.Close()

	base := NewClient(srv.URL)
	authed := base.WithToken("tok-123")

	_, err := authed.FetchTrailers(context.Background())
	require.NoError(t, err)
	_, err = base.FetchTrailers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok-123", ""}, gotAuth)
}

func TestCreateOrderSendsAggregatePayload(t *testing.T) {
	var got models.CreateOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(models.Order{ID: "ord-1", Status: got.Status, Total: got.Total})
	}))
	defer srv.Close()

	req := models.CreateOrderRequest{
		Date:     "2026-03-14T13:09:26Z",
		Customer: models.CustomerInfo{Name: "Олена", Email: "olena@example.com", Phone: "+380501234567"},
		Delivery: models.DeliveryInfo{Method: models.DeliveryPickup},
		Payment:  models.PaymentInfo{Method: models.PaymentCash},
		Items: []models.CartItem{
			{ProductID: "t1", Name: "Причіп", Price: 35900, Quantity: 1, Currency: "UAH"},
		},
		Total:  35900,
		Status: models.OrderProcessing,
	}

	order, err := NewClient(srv.URL).CreateOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, req, got)
}

func TestErrorResponsesCarryServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), models.LoginRequest{
		Email: "olena@example.com", Password: "wrong",
	})
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestErrorMessageFallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchTrailers(context.Background())
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Product not found"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchTrailerBySlug(context.Background(), "no-such-slug")
	assert.True(t, IsNotFound(err))

	_, err = NewClient(srv.URL + "/missing").FetchTrailers(context.Background())
	assert.True(t, IsNotFound(err))

	assert.False(t, IsNotFound(nil))
}

func TestUpdateOrderStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/orders/ord-1/status", r.URL.Path)
		var body map[string]models.OrderStatus
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.OrderShipped, body["status"])
		json.NewEncoder(w).Encode(models.Order{ID: "ord-1", Status: body["status"]})
	}))
	defer srv.Close()

	order, err := NewClient(srv.URL).UpdateOrderStatus(context.Background(), "ord-1", models.OrderShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, order.Status)
}

func TestDeleteTrailer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/trailers/t1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).DeleteTrailer(context.Background(), "t1")
	assert.NoError(t, err)
}

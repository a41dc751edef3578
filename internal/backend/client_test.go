package backend

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eczhh/FakeStore/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticToken — заглушка поставщика токена
type staticToken string

func (s staticToken) Token() (string, error) {
	return string(s), nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL, 5*time.Second, staticToken("test-token"), log)
}

func TestFetchOrdersDecodesWireFormat(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		// сервер кодирует флаги числами, а позиции — строкой с JSON внутри
		io.WriteString(w, `{"orders":[
			{"id":1,"order_items":"[{\"product_id\":3,\"title\":\"Mouse\",\"quantity\":2}]","total_price":19.98,"is_paid":0,"is_delivered":0},
			{"id":2,"order_items":"[]","total_price":5.5,"is_paid":1,"is_delivered":0},
			{"id":3,"order_items":"[]","total_price":7,"is_paid":1,"is_delivered":1}
		]}`)
	})

	orders, err := client.FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, int64(1), orders[0].ID)
	assert.False(t, orders[0].IsPaid)
	assert.False(t, orders[0].IsDelivered)
	assert.InDelta(t, 19.98, orders[0].TotalPrice, 1e-9)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Mouse", orders[0].Items[0].Title)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)

	assert.True(t, orders[1].IsPaid)
	assert.False(t, orders[1].IsDelivered)
	assert.True(t, orders[2].IsPaid)
	assert.True(t, orders[2].IsDelivered)
}

func TestFetchOrdersSkipsUndecodableOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"orders":[
			{"id":1,"order_items":"not a json payload","total_price":1,"is_paid":0,"is_delivered":0},
			{"id":2,"order_items":"[]","total_price":2,"is_paid":0,"is_delivered":0}
		]}`)
	})

	// битый payload одного заказа не роняет весь список
	orders, err := client.FetchOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(2), orders[0].ID)
}

func TestFetchOrdersUndecodableEnvelopeFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `not a json at all`)
	})

	_, err := client.FetchOrders(context.Background())
	require.ErrorIs(t, err, ErrDecode)
}

func TestFetchOrderFallsBackToOrderID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/7", r.URL.Path)
		// одиночный эндпоинт отдаёт идентификатор в поле order_id
		io.WriteString(w, `{"order":{"order_id":7,"order_items":"[]","total_price":3,"is_paid":0,"is_delivered":0}}`)
	})

	order, err := client.FetchOrder(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
}

func TestFetchOrderUndecodablePayloadFails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"order":{"order_id":7,"order_items":"broken","total_price":3,"is_paid":0,"is_delivered":0}}`)
	})

	_, err := client.FetchOrder(context.Background(), 7)
	require.ErrorIs(t, err, ErrDecode)
}

func TestCreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/neworder", r.URL.Path)

		var body struct {
			Items []map[string]any `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Items, 1)
		assert.EqualValues(t, 1, body.Items[0]["id"])
		assert.EqualValues(t, 2, body.Items[0]["quantity"])
		assert.InDelta(t, 19.98, body.Items[0]["totalPrice"].(float64), 1e-9)

		io.WriteString(w, `{"orderId":42}`)
	})

	snapshot := cart.State{
		Lines: []cart.Line{
			{ProductID: 1, Title: "Mouse", UnitPrice: 9.99, Quantity: 2, LineTotal: 19.98},
		},
		TotalQuantity: 2,
		TotalAmount:   19.98,
	}

	orderID, err := client.CreateOrder(context.Background(), snapshot)
	require.NoError(t, err)
	assert.Equal(t, int64(42), orderID)
}

func TestUpdateOrderSendsFlagsAsInts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/updateorder", r.URL.Path)

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"orderID":7,"isPaid":1,"isDelivered":0}`, string(raw))

		w.WriteHeader(http.StatusOK)
	})

	err := client.UpdateOrder(context.Background(), 7, true, false)
	require.NoError(t, err)
}

func TestUnauthorizedIsDistinguishable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FetchOrders(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestServerErrorIsRequestFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.UpdateOrder(context.Background(), 7, true, false)
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestUpdateProfile(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantBody string
	}{
		{
			// без нового пароля поле password в теле не отправляется вовсе
			name:     "name only",
			password: "",
			wantBody: `{"name":"Renamed"}`,
		},
		{
			name:     "name and password",
			password: "new-secret",
			wantBody: `{"name":"Renamed","password":"new-secret"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/users/update", r.URL.Path)
				assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

				raw, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.JSONEq(t, tt.wantBody, string(raw))

				w.WriteHeader(http.StatusOK)
			})

			require.NoError(t, client.UpdateProfile(context.Background(), "Renamed", tt.password))
		})
	}
}

func TestSignInStoresNothingItself(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/signin", r.URL.Path)
		// на входе токена ещё нет, заголовок авторизации не отправляется
		assert.Empty(t, r.Header.Get("Authorization"))

		io.WriteString(w, `{"token":"fresh-token","email":"user@example.com","name":"User"}`)
	})

	session, err := client.SignIn(context.Background(), "user@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", session.Token)
	assert.Equal(t, "user@example.com", session.Email)
	assert.Equal(t, "User", session.Name)
}

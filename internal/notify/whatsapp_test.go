package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppClient_Deliver(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"phone":  q.Get("phone"),
			"text":   q.Get("text"),
			"apikey": q.Get("apikey"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewWhatsAppClient(srv.URL, "secret", 5*time.Second, nil)
	err := c.Deliver(context.Background(), "+37120000001", "CO2 in Room 02 is 900 ppm! (Limit: 800)")
	require.NoError(t, err)

	assert.Equal(t, "+37120000001", gotQuery["phone"])
	assert.Equal(t, "CO2 in Room 02 is 900 ppm! (Limit: 800)", gotQuery["text"])
	assert.Equal(t, "secret", gotQuery["apikey"])
}

func TestWhatsAppClient_Deliver_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad api key", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewWhatsAppClient(srv.URL, "wrong", 5*time.Second, nil)
	err := c.Deliver(context.Background(), "+37120000001", "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway status 403")
}

package noderpc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"coinwallet/walleterr"
)

func TestHTTPTransportInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/info", r.URL.Path)
		w.Write([]byte(`{"height":10,"network_height":20,"synced":false}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, nil)
	info, err := tr.Info(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(10), info.Height)
	require.Equal(t, uint64(20), info.NetworkHeight)
}

func TestHTTPTransportGetWalletSyncDataRejectsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"FAILED"}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, nil)
	_, err := tr.GetWalletSyncData(context.Background(), SyncDataRequest{})
	require.Error(t, err)
	require.True(t, walleterr.Is(err, walleterr.Transport))
}

func TestHTTPTransportSendRawTransactionRejectsNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"FAILED","error":"bad signature"}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, nil)
	_, err := tr.SendRawTransaction(context.Background(), "deadbeef")
	require.Error(t, err)
	require.True(t, walleterr.Is(err, walleterr.Rejected))
}

func TestHTTPTransportSurfacesHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, nil)
	_, err := tr.Info(context.Background())
	require.Error(t, err)
	require.True(t, walleterr.Is(err, walleterr.Transport))
}

func TestHTTPTransportSendRawTransactionSuccessPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","transactionHash":"` + hex32(0x01) + `"}`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(srv.URL, nil)
	result, err := tr.SendRawTransaction(context.Background(), "deadbeef")
	require.NoError(t, err)
	require.Equal(t, "OK", result.Status)
}

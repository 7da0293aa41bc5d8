package noderpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"coinwallet/walleterr"
)

// HTTPTransport implements Transport against a CryptoNote-style JSON/HTTP
// node. Any non-2xx response or network error is surfaced as a Transport
// error (§6.1, §7).
type HTTPTransport struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPTransport builds a transport against baseURL using the given
// *http.Client, or http.DefaultClient if nil.
func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{BaseURL: baseURL, Client: client}
}

func (t *HTTPTransport) Info(ctx context.Context) (InfoResult, error) {
	var out wireInfo
	if err := t.doGET(ctx, "/info", &out); err != nil {
		return InfoResult{}, err
	}
	return out.normalize(), nil
}

func (t *HTTPTransport) GetWalletSyncData(ctx context.Context, req SyncDataRequest) (SyncDataResult, error) {
	var out wireSyncDataResponse
	if err := t.doPOST(ctx, "/getwalletsyncdata", buildWireRequest(req), &out); err != nil {
		return SyncDataResult{}, err
	}
	result, err := out.normalize()
	if err != nil {
		return SyncDataResult{}, err
	}
	if result.Status != "" && result.Status != "OK" {
		return SyncDataResult{}, walleterr.New(walleterr.Transport, "node returned non-OK status: "+result.Status)
	}
	return result, nil
}

func (t *HTTPTransport) SendRawTransaction(ctx context.Context, txHex string) (SendResult, error) {
	var out wireSendResponse
	if err := t.doPOST(ctx, "/sendrawtransaction", wireSendRequest{TxAsHex: txHex}, &out); err != nil {
		return SendResult{}, err
	}
	result, err := out.normalize()
	if err != nil {
		return SendResult{}, err
	}
	if result.Status != "" && result.Status != "OK" {
		return SendResult{}, walleterr.New(walleterr.Rejected, result.Error)
	}
	return result, nil
}

func (t *HTTPTransport) doGET(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+path, nil)
	if err != nil {
		return walleterr.Wrap(walleterr.Transport, "building request", err)
	}
	return t.do(req, out)
}

func (t *HTTPTransport) doPOST(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return walleterr.Wrap(walleterr.Transport, "encoding request body", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return walleterr.Wrap(walleterr.Transport, "building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return t.do(req, out)
}

func (t *HTTPTransport) do(req *http.Request, out interface{}) error {
	resp, err := t.Client.Do(req)
	if err != nil {
		return walleterr.Wrap(walleterr.Transport, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return walleterr.Wrap(walleterr.Transport, "reading response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return walleterr.New(walleterr.Transport, fmt.Sprintf("node returned HTTP %d: %s", resp.StatusCode, string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return walleterr.Wrap(walleterr.Transport, "decoding response", err)
	}
	return nil
}

package rpcledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

// gateway builds a stub JSON-RPC server answering each method from the
// given table. A nil entry produces an rpc error response.
func gateway(t *testing.T, results map[string]any, rpcErrs map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
			return
		}
		if msg, ok := rpcErrs[req.Method]; ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": -32000, "message": msg},
			})
			return
		}
		result, ok := results[req.Method]
		if !ok {
			t.Errorf("unexpected method %q", req.Method)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
	}))
}

func TestClient_GetAccount(t *testing.T) {
	srv := gateway(t, map[string]any{
		"getAccount": ports.Account{Address: "GWALLET", Sequence: 41},
	}, nil)
	defer srv.Close()

	client := New(srv.URL, time.Second, zerolog.Nop())
	account, err := client.GetAccount(context.Background(), "GWALLET")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Sequence != 41 {
		t.Fatalf("expected sequence 41, got %d", account.Sequence)
	}
}

func TestClient_GetAccountUnreachable(t *testing.T) {
	client := New("http://127.0.0.1:1", time.Second, zerolog.Nop())
	_, err := client.GetAccount(context.Background(), "GWALLET")
	if !errors.Is(err, domain.ErrAccountUnreachable) {
		t.Fatalf("expected ErrAccountUnreachable, got %v", err)
	}
}

func TestClient_SimulateRejectionCarriesReason(t *testing.T) {
	srv := gateway(t, nil, map[string]string{"simulateTransaction": "already checked in today"})
	defer srv.Close()

	client := New(srv.URL, time.Second, zerolog.Nop())
	_, err := client.Simulate(context.Background(), ports.UnsignedTx{})

	var simErr *domain.SimulationRejectedError
	if !errors.As(err, &simErr) {
		t.Fatalf("expected SimulationRejectedError, got %v", err)
	}
	if simErr.Reason != "already checked in today" {
		t.Fatalf("reason must pass through verbatim, got %q", simErr.Reason)
	}
}

func TestClient_Submit(t *testing.T) {
	srv := gateway(t, map[string]any{
		"sendTransaction": ports.SubmitReceipt{Hash: "abc123", Ledger: 777},
	}, nil)
	defer srv.Close()

	client := New(srv.URL, time.Second, zerolog.Nop())
	receipt, err := client.Submit(context.Background(), []byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Hash != "abc123" || receipt.Ledger != 777 {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
}

func TestClient_SubmitRejection(t *testing.T) {
	srv := gateway(t, nil, map[string]string{"sendTransaction": "bad sequence"})
	defer srv.Close()

	client := New(srv.URL, time.Second, zerolog.Nop())
	_, err := client.Submit(context.Background(), []byte(`{}`))

	var subErr *domain.SubmissionRejectedError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected SubmissionRejectedError, got %v", err)
	}
	if subErr.Reason != "bad sequence" {
		t.Fatalf("unexpected reason %q", subErr.Reason)
	}
}

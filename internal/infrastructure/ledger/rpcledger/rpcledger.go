// Package rpcledger talks JSON-RPC to the ledger gateway. It maps transport
// and gateway failures onto the domain taxonomy so the core never sees
// HTTP-level detail.
package rpcledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/worklock/worklock/internal/core/domain"
	"github.com/worklock/worklock/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client implements ports.Ledger against a JSON-RPC gateway.
type Client struct {
	url  string
	http *http.Client
	log  zerolog.Logger
}

// New builds a client for the gateway at url. A default timeout is applied
// when none is provided.
func New(url string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// call performs one round trip. A nil return with rpcErr set means the
// gateway answered with an application-level error.
func (c *Client) call(ctx context.Context, method string, params any, out any) (*rpcError, error) {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error, nil
	}
	if out != nil {
		if err := json.Unmarshal(rpcResp.Result, out); err != nil {
			return nil, fmt.Errorf("decode result: %w", err)
		}
	}
	return nil, nil
}

func (c *Client) GetAccount(ctx context.Context, address string) (ports.Account, error) {
	var account ports.Account
	rpcErr, err := c.call(ctx, "getAccount", map[string]string{"address": address}, &account)
	if err != nil {
		return ports.Account{}, fmt.Errorf("%w: %v", domain.ErrAccountUnreachable, err)
	}
	if rpcErr != nil {
		return ports.Account{}, fmt.Errorf("%w: %s", domain.ErrAccountUnreachable, rpcErr.Message)
	}
	return account, nil
}

func (c *Client) Simulate(ctx context.Context, tx ports.UnsignedTx) (ports.SimulationResult, error) {
	var result ports.SimulationResult
	rpcErr, err := c.call(ctx, "simulateTransaction", map[string]any{"tx": tx}, &result)
	if err != nil {
		return ports.SimulationResult{}, fmt.Errorf("simulate: %w", err)
	}
	if rpcErr != nil {
		// The gateway relays the contract-reported reason verbatim.
		return ports.SimulationResult{}, &domain.SimulationRejectedError{Reason: rpcErr.Message}
	}
	return result, nil
}

func (c *Client) Submit(ctx context.Context, signed []byte) (ports.SubmitReceipt, error) {
	var receipt ports.SubmitReceipt
	rpcErr, err := c.call(ctx, "sendTransaction", map[string]any{"envelope": signed}, &receipt)
	if err != nil {
		return ports.SubmitReceipt{}, &domain.SubmissionRejectedError{Reason: err.Error()}
	}
	if rpcErr != nil {
		return ports.SubmitReceipt{}, &domain.SubmissionRejectedError{Reason: rpcErr.Message}
	}
	c.log.Debug().Str("hash", receipt.Hash).Uint64("ledger", receipt.Ledger).Msg("transaction submitted")
	return receipt, nil
}

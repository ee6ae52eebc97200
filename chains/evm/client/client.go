// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog/log"
)

const DEFAULT_RPC_TIMEOUT = 5 * time.Second

var ErrNoEndpoints = errors.New("no rpc endpoints configured")

// RPC is the subset of the JSON-RPC client used for reads.
type RPC interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BlockNumber(ctx context.Context) (uint64, error)
	Close()
}

type Dialer func(ctx context.Context, url string) (RPC, error)

func DialEthClient(ctx context.Context, url string) (RPC, error) {
	c, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FallbackClient sends every read to the first endpoint that answers within
// the timeout, trying endpoints in configured order.
type FallbackClient struct {
	chainID   uint64
	endpoints []string
	timeout   time.Duration
	dial      Dialer

	lock    sync.Mutex
	clients map[string]RPC
}

func NewFallbackClient(chainID uint64, endpoints []string, timeout time.Duration, dial Dialer) (*FallbackClient, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("chain %d: %w", chainID, ErrNoEndpoints)
	}
	if timeout <= 0 {
		timeout = DEFAULT_RPC_TIMEOUT
	}
	if dial == nil {
		dial = DialEthClient
	}

	return &FallbackClient{
		chainID:   chainID,
		endpoints: endpoints,
		timeout:   timeout,
		dial:      dial,
		clients:   make(map[string]RPC),
	}, nil
}

func (c *FallbackClient) ChainID() uint64 {
	return c.chainID
}

func (c *FallbackClient) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	var res []byte
	err := c.try(ctx, "eth_call", func(ctx context.Context, rpc RPC) error {
		var err error
		res, err = rpc.CallContract(ctx, msg, blockNumber)
		return err
	})
	return res, err
}

func (c *FallbackClient) BlockNumber(ctx context.Context) (uint64, error) {
	var res uint64
	err := c.try(ctx, "eth_blockNumber", func(ctx context.Context, rpc RPC) error {
		var err error
		res, err = rpc.BlockNumber(ctx)
		return err
	})
	return res, err
}

func (c *FallbackClient) Close() {
	c.lock.Lock()
	defer c.lock.Unlock()

	for url, rpc := range c.clients {
		rpc.Close()
		delete(c.clients, url)
	}
}

func (c *FallbackClient) try(ctx context.Context, method string, call func(ctx context.Context, rpc RPC) error) error {
	var errs []error
	for _, url := range c.endpoints {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		err := c.attempt(ctx, url, call)
		if err == nil {
			return nil
		}

		log.Warn().Uint64("chainID", c.chainID).Str("method", method).Msgf("RPC endpoint %s failed: %s", url, err)
		errs = append(errs, fmt.Errorf("%s: %w", url, err))
	}

	return fmt.Errorf("chain %d: all rpc endpoints failed: %w", c.chainID, errors.Join(errs...))
}

func (c *FallbackClient) attempt(ctx context.Context, url string, call func(ctx context.Context, rpc RPC) error) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rpc, err := c.client(callCtx, url)
	if err != nil {
		return err
	}

	err = call(callCtx, rpc)
	if err != nil && callCtx.Err() != nil && ctx.Err() == nil {
		return fmt.Errorf("timed out after %s: %w", c.timeout, err)
	}
	return err
}

func (c *FallbackClient) client(ctx context.Context, url string) (RPC, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if rpc, ok := c.clients[url]; ok {
		return rpc, nil
	}

	rpc, err := c.dial(ctx, url)
	if err != nil {
		return nil, err
	}
	c.clients[url] = rpc
	return rpc, nil
}

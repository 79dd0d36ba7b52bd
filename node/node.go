// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node runs the solo block loop: every block pays the block reward,
// applies the queued actions in order and finalizes pending validator changes.
package node

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/action"
	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/builtin/blockreward"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/token"
	"github.com/chronobank/lxmint/kv"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/runtime"
	"github.com/chronobank/lxmint/state"
	"github.com/chronobank/lxmint/xenv"
)

var (
	logger = log.WithContext("pkg", "node")

	metricBlocks       = metrics.LazyLoadCounter("blocks_packed_total")
	metricBlockActions = metrics.LazyLoadHistogram("block_actions", []int64{0, 1, 5, 10, 50, 100, 500})
	metricCandidates   = metrics.LazyLoadGauge("author_candidates")
	metricHead         = metrics.LazyLoadGaugeVec("head", []string{"field"})
)

const (
	headBucket    = kv.Bucket("h")
	receiptBucket = kv.Bucket("r")
)

var headKey = []byte("head")

// Options of the block loop.
type Options struct {
	BlockInterval time.Duration
	// AutoClosePeriod closes the reward period at the end of every block
	// once its interval has elapsed.
	AutoClosePeriod  bool
	ReceiptCacheSize int
}

// Node packs blocks over a single state store.
type Node struct {
	builtin *builtin.Builtin
	stater  *state.Stater
	db      kv.Store
	pool    *Pool
	options Options
	now     func() time.Time

	lock     sync.RWMutex
	head     Head
	receipts *lru.Cache

	blockFeed event.Feed
}

// New creates a node over db, which must already hold the genesis state.
func New(b *builtin.Builtin, db kv.Store, pool *Pool, options Options) (*Node, error) {
	if options.BlockInterval <= 0 {
		options.BlockInterval = lx.BlockInterval
	}
	if options.ReceiptCacheSize <= 0 {
		options.ReceiptCacheSize = 4096
	}
	receipts, err := lru.New(options.ReceiptCacheSize)
	if err != nil {
		return nil, err
	}
	n := &Node{
		builtin:  b,
		stater:   state.NewStater(db),
		db:       db,
		pool:     pool,
		options:  options,
		now:      time.Now,
		receipts: receipts,
	}
	if err := n.loadHead(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Node) loadHead() error {
	data, err := headBucket.NewGetter(n.db).Get(headKey)
	if err != nil {
		if n.db.IsNotFound(err) {
			return nil
		}
		return errors.Wrap(err, "load head")
	}
	return errors.Wrap(rlp.DecodeBytes(data, &n.head), "decode head")
}

// saveBlock writes the head together with the receipts of its actions.
func (n *Node) saveBlock(blk *Block) error {
	bulk := n.db.Bulk()
	data, err := rlp.EncodeToBytes(&blk.Head)
	if err != nil {
		return err
	}
	if err := headBucket.NewPutter(bulk).Put(headKey, data); err != nil {
		return err
	}
	receipts := receiptBucket.NewPutter(bulk)
	for _, r := range blk.Receipts {
		data, err := rlp.EncodeToBytes(r)
		if err != nil {
			return err
		}
		if err := receipts.Put(r.ID.Bytes(), data); err != nil {
			return err
		}
	}
	return errors.Wrap(bulk.Write(), "save block")
}

func (n *Node) Builtin() *builtin.Builtin { return n.builtin }
func (n *Node) Pool() *Pool               { return n.pool }

// Submit queues a for the next block. Actions already queued or executed are
// rejected with ErrKnownAction.
func (n *Node) Submit(a *action.Action) (lx.Bytes32, error) {
	id, err := ActionID(a)
	if err != nil {
		return lx.Bytes32{}, err
	}
	// packing drains the pool and stores receipts under the write lock
	n.lock.RLock()
	defer n.lock.RUnlock()

	if _, ok := n.Receipt(id); ok {
		return id, ErrKnownAction
	}
	return n.pool.Add(a)
}

// Head returns the latest committed block.
func (n *Node) Head() Head {
	n.lock.RLock()
	defer n.lock.RUnlock()
	return n.head
}

// Receipt returns the outcome of an executed action.
func (n *Node) Receipt(id lx.Bytes32) (*Receipt, bool) {
	if v, ok := n.receipts.Get(id); ok {
		return v.(*Receipt), true
	}
	data, err := receiptBucket.NewGetter(n.db).Get(id.Bytes())
	if err != nil {
		if !n.db.IsNotFound(err) {
			logger.Warn("failed to load receipt", "id", id, "err", err)
		}
		return nil, false
	}
	var r Receipt
	if err := rlp.DecodeBytes(data, &r); err != nil {
		logger.Warn("failed to decode receipt", "id", id, "err", err)
		return nil, false
	}
	n.receipts.Add(id, &r)
	return &r, true
}

// View runs fn over the committed state. Changes fn makes are discarded.
func (n *Node) View(fn func(c *builtin.Contracts) error) error {
	n.lock.RLock()
	defer n.lock.RUnlock()
	return fn(n.builtin.WithState(n.stater.NewState()))
}

// Run packs a block every block interval until ctx is done. It returns the
// first error that leaves the state unusable.
func (n *Node) Run(ctx context.Context) error {
	logger.Info("prepared to pack block", "interval", n.options.BlockInterval)

	ticker := time.NewTicker(n.options.BlockInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("stopping interval packing service......")
			return nil
		case <-ticker.C:
			blk, err := n.Pack(uint64(n.now().Unix()))
			if err != nil {
				return errors.WithMessage(err, "pack block")
			}
			logger.Debug("📦 block packed", "number", blk.Number, "author", blk.Author, "actions", len(blk.Receipts), "hash", blk.Hash.AbbrevString())
		}
	}
}

// author picks the finalized validators in turn, falling back to the
// primary miner while the set is empty.
func (n *Node) author(c *builtin.Contracts, number uint32) (lx.Address, error) {
	vals, err := c.Validators.GetValidators()
	if err != nil {
		return lx.Address{}, err
	}
	metricCandidates().Set(int64(len(vals)))
	if len(vals) == 0 {
		return c.Deposits.PrimaryMiner()
	}
	return vals[int(number)%len(vals)], nil
}

// reward asks the block reward contract for the author's payout and mints it
// in the native asset.
func (n *Node) reward(rt *runtime.Runtime, author lx.Address) ([]Payout, error) {
	cfg := n.builtin.Config()
	method, _ := n.builtin.BlockReward.ABI.MethodByName("reward")
	input, err := method.EncodeInput([]common.Address{common.Address(author)}, []uint16{uint16(blockreward.Author)})
	if err != nil {
		return nil, err
	}
	out, err := rt.Call(cfg.System, cfg.BlockReward, input, false)
	if err != nil {
		return nil, err
	}
	if out.Failed() {
		return nil, errors.Wrap(out.Revert, "reward")
	}
	values, err := method.DecodeOutput(out.Data)
	if err != nil {
		return nil, err
	}
	recipients := values[0].([]common.Address)
	amounts := values[1].([]*big.Int)

	native := token.New(lx.NativeAsset, rt.State())
	var payouts []Payout
	for i, r := range recipients {
		if amounts[i].Sign() == 0 {
			continue
		}
		if err := native.Mint(lx.Address(r), amounts[i]); err != nil {
			return nil, err
		}
		payouts = append(payouts, Payout{lx.Address(r), amounts[i]})
	}
	return payouts, nil
}

func (n *Node) apply(rt *runtime.Runtime, number uint32, a *action.Action) (*Receipt, error) {
	id, err := ActionID(a)
	if err != nil {
		return nil, err
	}
	receipt := &Receipt{ID: id, Action: a, BlockNumber: number}
	out, err := action.Execute(rt, a)
	if err != nil {
		if !errors.Is(err, action.ErrInvalidAction) {
			return nil, err
		}
		receipt.Error = err.Error()
		return receipt, nil
	}
	receipt.Code = out.Code
	if out.Revert != nil {
		receipt.Reverted = true
		receipt.Error = out.Revert.Error()
	}
	return receipt, nil
}

// finalize adopts pending validator changes through the consensus-facing
// call, as the consensus client does at the end of a block.
func (n *Node) finalize(rt *runtime.Runtime) (bool, error) {
	pending, err := rt.Contracts().Validators.ChangePending()
	if err != nil || !pending {
		return false, err
	}
	cfg := n.builtin.Config()
	method, _ := n.builtin.ValidatorSet.ABI.MethodByName("finalizeChange")
	input, err := method.EncodeInput()
	if err != nil {
		return false, err
	}
	out, err := rt.Call(cfg.System, cfg.ValidatorSet, input, false)
	if err != nil {
		return false, err
	}
	if out.Failed() {
		return false, errors.Wrap(out.Revert, "finalizeChange")
	}
	return true, nil
}

// SubscribeBlocks delivers every packed block to ch, in order. A slow
// receiver delays packing.
func (n *Node) SubscribeBlocks(ch chan *Block) event.Subscription {
	return n.blockFeed.Subscribe(ch)
}

// Pack builds and commits the block following the head at time now.
func (n *Node) Pack(now uint64) (*Block, error) {
	blk, err := n.pack(now)
	if err != nil {
		return nil, err
	}
	n.blockFeed.Send(blk)
	return blk, nil
}

func (n *Node) pack(now uint64) (*Block, error) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if now <= n.head.Time {
		now = n.head.Time + 1
	}
	number := n.head.Number + 1
	st := n.stater.NewState()

	author, err := n.author(n.builtin.WithState(st), number)
	if err != nil {
		return nil, err
	}
	blk := &Block{Head: Head{Number: number, Time: now, Author: author}}
	rt := runtime.New(n.builtin, st, xenv.BlockContext{Number: number, Time: now, Author: author})

	if blk.Payouts, err = n.reward(rt, author); err != nil {
		return nil, err
	}

	actions := n.pool.Drain()
	for _, a := range actions {
		receipt, err := n.apply(rt, number, a)
		if err != nil {
			return nil, err
		}
		blk.Receipts = append(blk.Receipts, receipt)
	}

	if n.options.AutoClosePeriod {
		out, err := rt.Exec(func(c *builtin.Contracts) (errcode.Code, error) {
			return c.Rewards.ClosePeriod(now)
		})
		if err != nil {
			return nil, err
		}
		if !out.Failed() {
			logger.Info("reward period closed", "block", number)
		}
	}

	if blk.Finalized, err = n.finalize(rt); err != nil {
		return nil, err
	}

	if blk.Hash, err = st.Stage().Commit(); err != nil {
		return nil, err
	}
	if err := n.saveBlock(blk); err != nil {
		return nil, err
	}
	n.head = blk.Head
	for _, r := range blk.Receipts {
		n.receipts.Add(r.ID, r)
	}

	metricBlocks().Add(1)
	metricHead().SetWithLabel(int64(number), map[string]string{"field": "number"})
	metricHead().SetWithLabel(int64(now), map[string]string{"field": "time"})
	metricBlockActions().Observe(int64(len(actions)))
	return blk, nil
}

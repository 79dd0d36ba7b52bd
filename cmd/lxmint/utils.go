// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"syscall"
	"time"

	"github.com/beevik/ntp"
	"github.com/elastic/gosigar"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/fdlimit"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/chronobank/lxmint/genesis"
	"github.com/chronobank/lxmint/kv"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lvldb"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
)

const genesisBucket = kv.Bucket("g")

var genesisKey = []byte("hash")

func initLogger(ctx *cli.Context) {
	lvl := &slog.LevelVar{}
	lvl.Set(log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name))))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stdout, lvl)
	} else {
		useColor := (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stdout, lvl, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(configFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	gen, err := genesis.LoadCustomGenesis(path)
	if err != nil {
		return nil, err
	}
	return genesis.NewCustomNet(gen)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".org.chronobank.lxmint")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func openMainDB(ctx *cli.Context, gene *genesis.Genesis) (*lvldb.LevelDB, string, error) {
	if !ctx.Bool(persistFlag.Name) {
		db, err := lvldb.NewMem()
		return db, "memory", err
	}
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return nil, "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, "instance-"+gene.Name())
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		return nil, "", errors.Wrapf(err, "create data dir [%v]", instanceDir)
	}
	cacheMB := normalizeCacheSize(ctx.Int(cacheFlag.Name))
	log.Debug("cache size(MB)", "size", cacheMB)
	fdCache := suggestFDCache()
	log.Debug("fd cache", "n", fdCache)

	dir := filepath.Join(instanceDir, "main.db")
	db, err := lvldb.New(dir, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: fdCache,
	})
	if err != nil {
		return nil, "", errors.Wrapf(err, "open main database [%v]", dir)
	}
	return db, instanceDir, nil
}

func normalizeCacheSize(sizeMB int) int {
	sizeMB = max(sizeMB, 16)

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		log.Warn("failed to get total mem", "err", err)
		return sizeMB
	}
	// at most a quarter of physical memory
	if limitMB := int(mem.Total / 1024 / 1024 / 4); sizeMB > limitMB {
		log.Warn("cache size(MB) limited", "limit", limitMB)
		sizeMB = limitMB
	}
	return sizeMB
}

func suggestFDCache() int {
	limit, err := fdlimit.Current()
	if err != nil {
		log.Warn("failed to get fd limit", "err", err)
		return 64
	}
	if limit <= 1024 {
		log.Warn("low fd limit, increase it if possible", "limit", limit)
	}
	return min(limit/2, 5000)
}

// initGenesis builds the genesis state on a fresh database and records its
// hash. An existing database is left untouched.
func initGenesis(gene *genesis.Genesis, db kv.Store) (lx.Bytes32, error) {
	data, err := genesisBucket.NewGetter(db).Get(genesisKey)
	if err == nil {
		return lx.BytesToBytes32(data), nil
	}
	if !db.IsNotFound(err) {
		return lx.Bytes32{}, errors.Wrap(err, "load genesis")
	}
	hash, err := gene.Build(state.NewStater(db))
	if err != nil {
		return lx.Bytes32{}, errors.Wrap(err, "build genesis")
	}
	if err := genesisBucket.NewPutter(db).Put(genesisKey, hash.Bytes()); err != nil {
		return lx.Bytes32{}, errors.Wrap(err, "save genesis")
	}
	return hash, nil
}

func checkClockOffset(interval time.Duration) {
	resp, err := ntp.Query("pool.ntp.org")
	if err != nil {
		log.Debug("failed to access NTP", "err", err)
		return
	}
	if resp.ClockOffset > interval/2 {
		log.Warn("clock offset detected", "offset", common.PrettyDuration(resp.ClockOffset))
	}
}

func startAPIServer(addr string, handler http.Handler) (*http.Server, net.Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	return srv, listener, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)
		sig := <-exitSignalCh
		log.Info("exit for signal", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gene *genesis.Genesis, genesisHash lx.Bytes32, head uint32, dataDir, apiURL string) {
	fmt.Printf(`Starting %v
    Network     [ %v %v ]
    Best block  [ %v ]
    Data dir    [ %v ]
    API portal  [ %v ]
`,
		"lxmint",
		gene.Name(), genesisHash,
		head,
		dataDir,
		apiURL)
}

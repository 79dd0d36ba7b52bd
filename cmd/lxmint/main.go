// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/chronobank/lxmint/api"
	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/node"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "lxmint",
		Usage:     "Node of the LX deposit and reward ledger",
		Copyright: "2018 Chronobank <https://chronobank.io/>",
		Flags: []cli.Flag{
			configFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			enableAPILogsFlag,
			blockIntervalFlag,
			autoClosePeriodFlag,
			poolLimitFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			skipNTPFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	initLogger(ctx)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	gene, err := selectGenesis(ctx)
	if err != nil {
		return errors.Wrap(err, "select genesis")
	}

	mainDB, dataDir, err := openMainDB(ctx, gene)
	if err != nil {
		return err
	}
	defer func() { log.Info("closing main database..."); mainDB.Close() }()

	genesisHash, err := initGenesis(gene, mainDB)
	if err != nil {
		return err
	}

	interval := time.Duration(ctx.Uint64(blockIntervalFlag.Name)) * time.Second
	n, err := node.New(builtin.New(gene.Config()), mainDB, node.NewPool(ctx.Int(poolLimitFlag.Name)), node.Options{
		BlockInterval:   interval,
		AutoClosePeriod: ctx.Bool(autoClosePeriodFlag.Name),
	})
	if err != nil {
		return err
	}

	if !ctx.Bool(skipNTPFlag.Name) {
		go checkClockOffset(interval)
	}

	handler := api.New(n, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	srv, listener, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}

	printStartupMessage(gene, genesisHash, n.Head().Number, dataDir, "http://"+listener.Addr().String()+"/")

	group, groupCtx := errgroup.WithContext(exitSignal)
	group.Go(func() error {
		return n.Run(groupCtx)
	})
	group.Go(func() error {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("stopping API server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

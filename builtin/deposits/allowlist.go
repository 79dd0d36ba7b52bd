// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposits

import (
	"math/big"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/lx"
)

// IsAllowed reports whether asset can be deposited. The stake token is
// always allowed.
func (d *Deposits) IsAllowed(asset lx.Address) (bool, error) {
	if asset == d.shares {
		return true, nil
	}
	return d.allowList.Exists(asset)
}

// Limit returns the deposit ceiling of asset. Zero means no ceiling.
func (d *Deposits) Limit(asset lx.Address) (*big.Int, error) {
	entry, err := d.allowList.Get(asset)
	if err != nil {
		return nil, err
	}
	if entry.Limit == nil {
		return new(big.Int), nil
	}
	return entry.Limit, nil
}

// AllowShares puts assets on the allow-list with the matching ceilings.
func (d *Deposits) AllowShares(caller lx.Address, assets []lx.Address, limits []*big.Int) (errcode.Code, error) {
	if err := d.checkOwner(caller, "allowShares"); err != nil {
		return errcode.Unauthorized, err
	}
	if len(assets) != len(limits) {
		return errcode.OK, reverts.New("deposits: assets and limits length mismatch")
	}
	for i, asset := range assets {
		limit := limits[i]
		if limit == nil || limit.Sign() < 0 {
			limit = new(big.Int)
		}
		if err := d.allowList.Set(asset, &allowance{Limit: limit}); err != nil {
			return errcode.OK, err
		}
		logger.Info("asset allowed", "asset", asset, "limit", limit)
	}
	return count("allowShares", errcode.OK), nil
}

// DenyShares removes assets from the allow-list. Existing deposits stay
// withdrawable.
func (d *Deposits) DenyShares(caller lx.Address, assets []lx.Address) (errcode.Code, error) {
	if err := d.checkOwner(caller, "denyShares"); err != nil {
		return errcode.Unauthorized, err
	}
	for _, asset := range assets {
		d.allowList.Delete(asset)
		logger.Info("asset denied", "asset", asset)
	}
	return count("denyShares", errcode.OK), nil
}

// checkCeiling reports whether amount more of asset may be deposited. The
// stake token is only capped once explicitly listed.
func (d *Deposits) checkCeiling(asset lx.Address, amount *big.Int) (bool, error) {
	listed, err := d.allowList.Exists(asset)
	if err != nil {
		return false, err
	}
	if !listed {
		return asset == d.shares, nil
	}
	limit, err := d.Limit(asset)
	if err != nil {
		return false, err
	}
	if limit.Sign() == 0 {
		return true, nil
	}
	total, err := d.totals.Get(asset)
	if err != nil {
		return false, err
	}
	return total.Add(total, amount).Cmp(limit) <= 0, nil
}

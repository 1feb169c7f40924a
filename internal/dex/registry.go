package dex

import (
	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/model"
)

// Mainnet router deployments.
var (
	V2RouterAddress = common.HexToAddress("0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D")
	V3RouterAddress = common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564")

	UniversalRouterAddresses = []common.Address{
		common.HexToAddress("0x3fC91A3afd70395Cd496C647d5a6CC9D4B2b7FAD"),
		common.HexToAddress("0xEf1c6E67703c7BD7107eed8303Fbe6EC2554BF6B"),
	}
)

// RegistryConfig overrides the default router addresses, e.g. for other
// networks. Empty fields fall back to the mainnet deployments.
type RegistryConfig struct {
	V2Router         string
	V3Router         string
	UniversalRouters []string
}

// Registry classifies transaction destinations against the known routers.
type Registry struct {
	v2        common.Address
	v3        common.Address
	universal map[common.Address]struct{}
}

// NewRegistry builds a Registry from cfg, falling back to mainnet defaults.
func NewRegistry(cfg RegistryConfig) *Registry {
	r := &Registry{
		v2:        V2RouterAddress,
		v3:        V3RouterAddress,
		universal: make(map[common.Address]struct{}),
	}
	if cfg.V2Router != "" && common.IsHexAddress(cfg.V2Router) {
		r.v2 = common.HexToAddress(cfg.V2Router)
	}
	if cfg.V3Router != "" && common.IsHexAddress(cfg.V3Router) {
		r.v3 = common.HexToAddress(cfg.V3Router)
	}
	if len(cfg.UniversalRouters) > 0 {
		for _, addr := range cfg.UniversalRouters {
			if common.IsHexAddress(addr) {
				r.universal[common.HexToAddress(addr)] = struct{}{}
			}
		}
	} else {
		for _, addr := range UniversalRouterAddresses {
			r.universal[addr] = struct{}{}
		}
	}
	return r
}

// Classify maps a destination address to a router kind. The second return
// is false for destinations that are not a known router; that is a normal
// outcome for almost every mempool transaction, not an error.
func (r *Registry) Classify(to common.Address) (model.RouterKind, bool) {
	switch {
	case to == r.v2:
		return model.RouterV2, true
	case to == r.v3:
		return model.RouterV3, true
	default:
		if _, ok := r.universal[to]; ok {
			return model.RouterUniversal, true
		}
		return "", false
	}
}

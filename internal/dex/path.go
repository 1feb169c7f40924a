package dex

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// V3 multi-hop paths are packed as token(20) [fee(3) token(20)]*, fees
// big-endian. Exact-output paths arrive reversed (output token first).

const (
	pathAddrLen = common.AddressLength
	pathFeeLen  = 3
	pathHopLen  = pathFeeLen + pathAddrLen
)

// EncodePath packs tokens and per-hop fees into the V3 path layout.
// len(fees) must equal len(tokens)-1.
func EncodePath(tokens []common.Address, fees []uint32) ([]byte, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("path needs at least 2 tokens, got %d", len(tokens))
	}
	if len(fees) != len(tokens)-1 {
		return nil, fmt.Errorf("path needs %d fees, got %d", len(tokens)-1, len(fees))
	}

	out := make([]byte, 0, pathAddrLen+len(fees)*pathHopLen)
	out = append(out, tokens[0].Bytes()...)
	for i, fee := range fees {
		if fee > 0xffffff {
			return nil, fmt.Errorf("fee tier %d exceeds uint24", fee)
		}
		out = append(out, byte(fee>>16), byte(fee>>8), byte(fee))
		out = append(out, tokens[i+1].Bytes()...)
	}
	return out, nil
}

// DecodePath unpacks a V3 path into lowercase token addresses and fee
// tiers. With exactOutput set, the decoded lists are reversed so callers
// always see canonical input->output ordering.
func DecodePath(path []byte, exactOutput bool) ([]string, []uint32, bool) {
	if len(path) < pathAddrLen+pathHopLen {
		return nil, nil, false
	}
	if (len(path)-pathAddrLen)%pathHopLen != 0 {
		return nil, nil, false
	}

	hops := (len(path) - pathAddrLen) / pathHopLen
	tokens := make([]string, 0, hops+1)
	fees := make([]uint32, 0, hops)

	tokens = append(tokens, lowerHex(common.BytesToAddress(path[:pathAddrLen])))
	for i := pathAddrLen; i < len(path); i += pathHopLen {
		fee := uint32(path[i])<<16 | uint32(path[i+1])<<8 | uint32(path[i+2])
		fees = append(fees, fee)
		tokens = append(tokens, lowerHex(common.BytesToAddress(path[i+pathFeeLen:i+pathHopLen])))
	}

	if exactOutput {
		reverseStrings(tokens)
		reverseFees(fees)
	}
	return tokens, fees, true
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseFees(s []uint32) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

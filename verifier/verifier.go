package verifier

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

var (
	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

	// REASONABLE_AMOUNT_CEILING is one billion tokens with 18 decimals
	REASONABLE_AMOUNT_CEILING = new(big.Int).Exp(big.NewInt(10), big.NewInt(27), nil)
	MAX_WEIGHT                = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 112), big.NewInt(1))
	MAX_TIMESTAMP             = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 48), big.NewInt(1))
	NATIVE_TOKEN              = common.HexToAddress("0x000000000000000000000000000000000000EEEe")
)

// Verifier checks transaction arguments before they are encoded and corrects
// near-miss contract addresses against a registry of canonical ones.
type Verifier struct {
	registry        *Registry
	supportedChains map[uint64]struct{}
	now             func() time.Time
}

func NewVerifier(registry *Registry, supportedChains []uint64) *Verifier {
	chains := make(map[uint64]struct{})
	for _, c := range supportedChains {
		chains[c] = struct{}{}
	}

	return &Verifier{
		registry:        registry,
		supportedChains: chains,
		now:             time.Now,
	}
}

// Verify never fails; problems are reported as doubts on the returned result.
func (v *Verifier) Verify(kind Kind, params Params) *Result {
	r := newResult()

	rules, ok := operationRules[kind]
	if !ok {
		r.critical("operation", "unknown operation %s", kind)
		return r.finish()
	}

	for _, rule := range rules {
		raw, ok := params[rule.name]
		if !ok || isEmpty(raw) {
			if rule.required {
				r.critical(rule.name, "missing required field")
			}
			continue
		}

		v.check(r, rule, raw)
	}

	return r.finish()
}

func (v *Verifier) check(r *Result, rule rule, raw any) {
	switch rule.field {
	case identifierField:
		v.checkIdentifier(r, rule, raw)
	case userAddressField:
		v.checkAddress(r, rule, raw, false)
	case contractAddressField, tokenField:
		v.checkAddress(r, rule, raw, true)
	case amountField:
		v.checkAmount(r, rule, raw)
	case percentField:
		v.checkPercent(r, rule, raw)
	case weightField:
		v.checkWeight(r, rule, raw)
	case timestampField:
		v.checkTimestamp(r, rule, raw)
	case chainsField:
		v.checkChains(r, rule, raw)
	case textField:
		v.checkText(r, rule, raw)
	}
}

func (v *Verifier) checkIdentifier(r *Result, rule rule, raw any) {
	n, err := toBigInt(raw)
	if err != nil {
		r.critical(rule.name, "not an integer: %s", err)
		return
	}
	r.VerifiedParams[rule.name] = n.String()

	if n.Sign() <= 0 {
		r.critical(rule.name, "must be a positive integer, got %s", n)
		return
	}
	if !n.IsUint64() {
		r.critical(rule.name, "%s is out of range", n)
	}
}

func (v *Verifier) checkAddress(r *Result, rule rule, raw any, correctable bool) {
	address, ok := toAddressString(raw)
	if !ok {
		r.critical(rule.name, "address must be a hex string")
		return
	}

	if correctable && v.registry != nil {
		if c, ok := v.registry.Correct(address); ok {
			r.Corrections = append(r.Corrections, c)
			r.warn(rule.name, "corrected %s to %s (%s)", c.OriginalAddress, c.CorrectedAddress, c.MatchedContract)
			address = c.CorrectedAddress
		}
	}
	r.VerifiedParams[rule.name] = address

	if !addressPattern.MatchString(address) {
		r.critical(rule.name, "invalid address %s", address)
		return
	}

	a := common.HexToAddress(address)
	r.VerifiedParams[rule.name] = a.Hex()
	if a != (common.Address{}) {
		return
	}

	if rule.field == tokenField {
		r.warn(rule.name, "zero token address, the native token is %s", NATIVE_TOKEN.Hex())
		return
	}
	r.critical(rule.name, "zero address")
}

func (v *Verifier) checkAmount(r *Result, rule rule, raw any) {
	n, err := toBigInt(raw)
	if err != nil {
		r.critical(rule.name, "not an integer: %s", err)
		return
	}
	r.VerifiedParams[rule.name] = n.String()

	if n.Sign() < 0 {
		r.critical(rule.name, "amount cannot be negative")
		return
	}
	if _, overflow := uint256.FromBig(n); overflow {
		r.critical(rule.name, "amount exceeds maximum uint256")
		return
	}
	if n.Sign() == 0 {
		if !rule.zeroOK {
			r.warn(rule.name, "amount is zero")
		}
		return
	}
	if n.Cmp(REASONABLE_AMOUNT_CEILING) > 0 {
		r.warn(rule.name, "amount %s is unusually large, check decimals", n)
	}
}

func (v *Verifier) checkPercent(r *Result, rule rule, raw any) {
	n, err := toBigInt(raw)
	if err != nil {
		r.critical(rule.name, "not an integer: %s", err)
		return
	}
	r.VerifiedParams[rule.name] = n.String()

	if n.Sign() < 0 {
		r.critical(rule.name, "percent cannot be negative")
		return
	}
	switch c := n.Cmp(rule.scale); {
	case c > 0:
		r.critical(rule.name, "%s exceeds maximum %s", n, rule.scale)
	case c == 0:
		r.warn(rule.name, "%s", rule.disabledMsg)
	case n.Cmp(new(big.Int).Quo(rule.scale, big.NewInt(2))) > 0:
		r.warn(rule.name, "%s is above 50%%", n)
	}
}

func (v *Verifier) checkWeight(r *Result, rule rule, raw any) {
	n, err := toBigInt(raw)
	if err != nil {
		r.critical(rule.name, "not an integer: %s", err)
		return
	}
	r.VerifiedParams[rule.name] = n.String()

	if n.Sign() < 0 {
		r.critical(rule.name, "weight cannot be negative")
		return
	}
	if n.Cmp(MAX_WEIGHT) > 0 {
		r.critical(rule.name, "weight exceeds uint112 maximum")
		return
	}
	if n.Sign() == 0 {
		r.warn(rule.name, "zero weight issues no tokens")
	}
}

func (v *Verifier) checkTimestamp(r *Result, rule rule, raw any) {
	n, err := toBigInt(raw)
	if err != nil {
		r.critical(rule.name, "not an integer: %s", err)
		return
	}
	r.VerifiedParams[rule.name] = n.String()

	if n.Sign() < 0 || n.Cmp(MAX_TIMESTAMP) > 0 {
		r.critical(rule.name, "timestamp %s out of range", n)
		return
	}
	// zero means "as soon as possible"
	if n.Sign() > 0 && n.Int64() < v.now().Unix() {
		r.warn(rule.name, "timestamp %s is in the past", n)
	}
}

func (v *Verifier) checkChains(r *Result, rule rule, raw any) {
	chains, err := toChainIDs(raw)
	if err != nil {
		r.critical(rule.name, "invalid chain list: %s", err)
		return
	}
	if len(chains) == 0 {
		if rule.required {
			r.critical(rule.name, "missing required field")
		}
		return
	}

	seen := make(map[uint64]struct{})
	parts := make([]string, 0, len(chains))
	for _, c := range chains {
		parts = append(parts, strconv.FormatUint(c, 10))
		if _, ok := seen[c]; ok {
			r.warn(rule.name, "duplicate chain %d", c)
			continue
		}
		seen[c] = struct{}{}

		if len(v.supportedChains) == 0 {
			continue
		}
		if _, ok := v.supportedChains[c]; !ok {
			r.warn(rule.name, "chain %d not supported", c)
		}
	}
	r.VerifiedParams[rule.name] = strings.Join(parts, ",")
}

func (v *Verifier) checkText(r *Result, rule rule, raw any) {
	s, ok := raw.(string)
	if !ok {
		r.critical(rule.name, "must be a string")
		return
	}
	s = strings.TrimSpace(s)
	r.VerifiedParams[rule.name] = s

	if s == "" {
		if rule.required {
			r.critical(rule.name, "missing required field")
		}
		return
	}
	if rule.name == "symbol" && len(s) > 11 {
		r.warn(rule.name, "symbol %s is longer than 11 characters", s)
	}
}

func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case *big.Int:
		return v == nil
	}
	return false
}

func toAddressString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case common.Address:
		return v.Hex(), true
	case *common.Address:
		if v == nil {
			return "", false
		}
		return v.Hex(), true
	}
	return "", false
}

func toBigInt(raw any) (*big.Int, error) {
	switch v := raw.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%v is not a whole number", v)
		}
		n, _ := big.NewFloat(v).Int(nil)
		return n, nil
	case json.Number:
		return parseBigInt(v.String())
	case string:
		return parseBigInt(v)
	}
	return nil, fmt.Errorf("unsupported type %T", raw)
}

func parseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	n := new(big.Int)
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		_, ok = n.SetString(s[2:], 16)
	} else {
		_, ok = n.SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("cannot parse %q", s)
	}
	return n, nil
}

func toChainIDs(raw any) ([]uint64, error) {
	switch v := raw.(type) {
	case []uint64:
		return v, nil
	case string:
		out := make([]uint64, 0)
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			c, err := strconv.ParseUint(p, 10, 64)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	case []any:
		out := make([]uint64, 0, len(v))
		for _, item := range v {
			n, err := toBigInt(item)
			if err != nil {
				return nil, err
			}
			if n.Sign() <= 0 || !n.IsUint64() {
				return nil, fmt.Errorf("invalid chain id %s", n)
			}
			out = append(out, n.Uint64())
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type %T", raw)
}

// SortedChains returns a copy of chains in ascending order without duplicates.
func SortedChains(chains []uint64) []uint64 {
	seen := make(map[uint64]struct{})
	out := make([]uint64, 0, len(chains))
	for _, c := range chains {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

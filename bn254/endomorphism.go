package bn254

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
)

// omega is a primitive cube root of unity in Fp. Since BN254 has
// j-invariant 0, (x, y) -> (omega*x, y) maps the curve to itself.
var omega fp.Element

func init() {
	e := new(big.Int).Sub(fp.Modulus(), big.NewInt(1))
	e.Div(e, big.NewInt(3))
	for base := uint64(2); ; base++ {
		var w, b fp.Element
		b.SetUint64(base)
		w.Exp(b, e)
		if !w.IsOne() {
			omega = w
			return
		}
	}
}

package ipa

import (
	"bytes"
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/f3rmion/ipa/bjj"
	"github.com/f3rmion/ipa/bn254"
	"github.com/f3rmion/ipa/commitment"
	"github.com/f3rmion/ipa/group"
	"github.com/f3rmion/ipa/polynomial"
	"github.com/f3rmion/ipa/srs"
	"github.com/f3rmion/ipa/transcript"
)

var testDomain = []byte("IPA-TEST-SRS")

type fixture struct {
	g  group.Group
	ck *commitment.CommitmentKey
	vk *commitment.VerifierKey
}

func newFixture(t *testing.T, g group.Group, size int, paired bool) *fixture {
	t.Helper()
	s, err := srs.Generate(g, size, testDomain, nil)
	if err != nil {
		t.Fatal(err)
	}
	if paired {
		if s, err = srs.PairWithEndomorphism(g, s); err != nil {
			t.Fatal(err)
		}
	}
	ck, err := commitment.NewCommitmentKey(g, s)
	if err != nil {
		t.Fatal(err)
	}
	vk, err := commitment.NewVerifierKey(g, s)
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{g: g, ck: ck, vk: vk}
}

// prove commits to poly, opens it at beta and returns the claim and proof.
func (f *fixture) prove(t *testing.T, p *IPA, poly polynomial.Polynomial, beta group.Scalar, opts ...transcript.Option) (commitment.OpeningClaim, *transcript.Proof) {
	t.Helper()
	c, err := f.ck.Commit(poly)
	if err != nil {
		t.Fatal(err)
	}
	pair := commitment.OpeningPair{Challenge: beta, Evaluation: poly.Evaluate(f.g, beta)}
	tr := transcript.New(f.g, opts...)
	if err := p.ComputeOpeningProof(f.ck, pair, poly, tr); err != nil {
		t.Fatal(err)
	}
	return commitment.OpeningClaim{Commitment: c, Pair: pair}, tr.Proof()
}

func (f *fixture) verify(p *IPA, claim commitment.OpeningClaim, proof *transcript.Proof, opts ...transcript.Option) (bool, error) {
	return p.Verify(f.vk, claim, transcript.NewVerifier(f.g, proof, opts...))
}

func randomOpening(t *testing.T, g group.Group, d int) (polynomial.Polynomial, group.Scalar) {
	t.Helper()
	poly, err := polynomial.Random(g, d, rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	beta, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	if beta.IsZero() {
		beta.SetUint64(1)
	}
	return poly, beta
}

func TestCompleteness(t *testing.T) {
	cases := []struct {
		name   string
		g      group.Group
		paired bool
		maxK   int
	}{
		{"bn254", &bn254.G1{}, false, 7},
		{"bn254-paired", &bn254.G1{}, true, 7},
		{"bjj", &bjj.BJJ{}, false, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, tc.g, 1<<tc.maxK, tc.paired)
			p := New(tc.g)
			for k := 0; k <= tc.maxK; k++ {
				poly, beta := randomOpening(t, tc.g, 1<<k)
				claim, proof := f.prove(t, p, poly, beta)
				ok, err := f.verify(p, claim, proof)
				if err != nil {
					t.Fatalf("k=%d: %v", k, err)
				}
				if !ok {
					t.Fatalf("k=%d: valid proof rejected", k)
				}
			}
		})
	}
}

func TestRoundCount(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 32, false)
	p := New(g)

	for k := 0; k <= 5; k++ {
		poly, beta := randomOpening(t, g, 1<<k)
		_, proof := f.prove(t, p, poly, beta)

		var ls, rs int
		for _, e := range proof.Entries {
			switch {
			case strings.HasPrefix(e.Label, "IPA:L_"):
				ls++
			case strings.HasPrefix(e.Label, "IPA:R_"):
				rs++
			}
		}
		if ls != k || rs != k || Rounds(1<<k) != k {
			t.Errorf("d=%d: %d L and %d R entries, want %d", 1<<k, ls, rs, k)
		}
		if proof.Len() != 2*k+2 {
			t.Errorf("d=%d: proof has %d entries, want %d", 1<<k, proof.Len(), 2*k+2)
		}
	}
}

func TestTranscriptLayout(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 4, false)
	poly, beta := randomOpening(t, g, 4)

	pair := commitment.OpeningPair{Challenge: beta, Evaluation: poly.Evaluate(g, beta)}
	tr := transcript.New(g)
	if err := New(g).ComputeOpeningProof(f.ck, pair, poly, tr); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"IPA:poly_degree_plus_1",
		"IPA:generator_challenge",
		"IPA:L_0", "IPA:R_0", "IPA:round_challenge_0",
		"IPA:L_1", "IPA:R_1", "IPA:round_challenge_1",
		"IPA:a_0",
	}
	m := tr.Manifest()
	if len(m) != len(want) {
		t.Fatalf("manifest has %d entries, want %d", len(m), len(want))
	}
	for i, label := range want {
		if m[i].Label != label {
			t.Errorf("entry %d: got %q, want %q", i, m[i].Label, label)
		}
	}
}

func TestDegenerate(t *testing.T) {
	groups := []group.Group{&bn254.G1{}, &bjj.BJJ{}}

	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			f := newFixture(t, g, 1, false)
			p := New(g)
			poly, beta := randomOpening(t, g, 1)
			claim, proof := f.prove(t, p, poly, beta)

			if proof.Len() != 2 {
				t.Fatalf("proof has %d entries, want 2", proof.Len())
			}
			if !bytes.Equal(proof.Entries[1].Data, poly[0].Bytes()) {
				t.Error("a_0 should be the constant coefficient")
			}
			ok, err := f.verify(p, claim, proof)
			if err != nil || !ok {
				t.Fatalf("ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestConcreteOpening(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 4, false)
	p := New(g, WithEvaluationCheck(true))

	poly := polynomial.FromUint64(g, 3, 1, 4, 1)
	c, err := f.ck.Commit(poly)
	if err != nil {
		t.Fatal(err)
	}
	pair := commitment.OpeningPair{
		Challenge:  g.NewScalar().SetUint64(2),
		Evaluation: g.NewScalar().SetUint64(29),
	}

	tr := transcript.New(g)
	if err := p.ComputeOpeningProof(f.ck, pair, poly, tr); err != nil {
		t.Fatal(err)
	}
	if tr.Proof().Index("IPA:L_1") < 0 || tr.Proof().Index("IPA:L_2") >= 0 {
		t.Error("expected exactly two rounds")
	}

	ok, err := p.Verify(f.vk, commitment.OpeningClaim{Commitment: c, Pair: pair}, tr.ToVerifier())
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}

	wrong := commitment.OpeningPair{Challenge: pair.Challenge, Evaluation: g.NewScalar().SetUint64(30)}
	ok, err = p.Verify(f.vk, commitment.OpeningClaim{Commitment: c, Pair: wrong}, tr.ToVerifier())
	if err != nil || ok {
		t.Errorf("wrong evaluation: ok=%v err=%v", ok, err)
	}

	fresh := transcript.New(g)
	if err := p.ComputeOpeningProof(f.ck, wrong, poly, fresh); !errors.Is(err, ErrEvaluationMismatch) {
		t.Errorf("expected ErrEvaluationMismatch, got %v", err)
	}
	if fresh.Proof().Len() != 0 {
		t.Error("rejected proof wrote to the transcript")
	}
}

// tamper returns a copy of proof with entry i replaced by a different
// valid value of the same kind.
func tamper(t *testing.T, g group.Group, proof *transcript.Proof, i int) *transcript.Proof {
	t.Helper()
	out := proof.Clone()
	e := &out.Entries[i]
	switch e.Kind {
	case transcript.KindPoint:
		pt, err := g.NewPoint().SetBytes(e.Data)
		if err != nil {
			t.Fatal(err)
		}
		e.Data = pt.Add(pt, g.Generator()).Bytes()
	case transcript.KindScalar:
		s, err := g.NewScalar().SetBytes(e.Data)
		if err != nil {
			t.Fatal(err)
		}
		e.Data = s.Add(s, g.NewScalar().SetUint64(1)).Bytes()
	default:
		t.Fatalf("cannot tamper with %v entry", e.Kind)
	}
	return out
}

func TestSoundnessUnderTampering(t *testing.T) {
	groups := []group.Group{&bn254.G1{}, &bjj.BJJ{}}

	for _, g := range groups {
		t.Run(g.Name(), func(t *testing.T) {
			f := newFixture(t, g, 8, false)
			p := New(g)
			poly, beta := randomOpening(t, g, 8)
			claim, proof := f.prove(t, p, poly, beta)

			for i, e := range proof.Entries {
				if e.Kind == transcript.KindUint32 {
					continue
				}
				ok, err := f.verify(p, claim, tamper(t, g, proof, i))
				if err != nil {
					t.Errorf("%s: unexpected error %v", e.Label, err)
				}
				if ok {
					t.Errorf("%s: tampered proof accepted", e.Label)
				}
			}

			badEval := claim
			badEval.Pair.Evaluation = g.NewScalar().Add(claim.Pair.Evaluation, g.NewScalar().SetUint64(1))
			if ok, _ := f.verify(p, badEval, proof); ok {
				t.Error("wrong evaluation accepted")
			}

			badPoint := claim
			badPoint.Pair.Challenge = g.NewScalar().Add(claim.Pair.Challenge, g.NewScalar().SetUint64(1))
			if ok, _ := f.verify(p, badPoint, proof); ok {
				t.Error("wrong opening point accepted")
			}

			badCommit := claim
			badCommit.Commitment = g.NewPoint().Add(claim.Commitment, g.Generator())
			if ok, _ := f.verify(p, badCommit, proof); ok {
				t.Error("wrong commitment accepted")
			}
		})
	}
}

func TestDesync(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 8, false)
	p := New(g)
	poly, beta := randomOpening(t, g, 8)
	claim, proof := f.prove(t, p, poly, beta)

	cases := []struct {
		name   string
		mutate func(*transcript.Proof)
	}{
		{"RenamedLabel", func(pr *transcript.Proof) {
			pr.Entries[pr.Index("IPA:R_1")].Label = "IPA:R_one"
		}},
		{"SwappedRound", func(pr *transcript.Proof) {
			i, j := pr.Index("IPA:L_0"), pr.Index("IPA:R_0")
			pr.Entries[i], pr.Entries[j] = pr.Entries[j], pr.Entries[i]
		}},
		{"WrongKind", func(pr *transcript.Proof) {
			pr.Entries[pr.Index("IPA:a_0")].Kind = transcript.KindPoint
		}},
		{"Truncated", func(pr *transcript.Proof) {
			pr.Entries = pr.Entries[:len(pr.Entries)-1]
		}},
		{"Trailing", func(pr *transcript.Proof) {
			pr.Entries = append(pr.Entries, pr.Entries[len(pr.Entries)-1])
		}},
		{"GarbledPoint", func(pr *transcript.Proof) {
			pr.Entries[pr.Index("IPA:L_2")].Data = []byte{1, 2, 3}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pr := proof.Clone()
			tc.mutate(pr)
			ok, err := f.verify(p, claim, pr)
			if ok {
				t.Error("desynchronised proof accepted")
			}
			if !errors.Is(err, transcript.ErrDesync) {
				t.Errorf("expected ErrDesync, got %v", err)
			}
		})
	}

	t.Run("EmptyProof", func(t *testing.T) {
		ok, err := f.verify(p, claim, &transcript.Proof{})
		if ok || !errors.Is(err, transcript.ErrDesync) {
			t.Errorf("ok=%v err=%v", ok, err)
		}
	})
}

func TestMalformedDegree(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 8, false)
	p := New(g)
	poly, beta := randomOpening(t, g, 8)
	claim, proof := f.prove(t, p, poly, beta)

	for _, d := range []uint32{0, 3, 6, 16, 1 << 31} {
		pr := proof.Clone()
		data := make([]byte, 32)
		data[28], data[29], data[30], data[31] = byte(d>>24), byte(d>>16), byte(d>>8), byte(d)
		pr.Entries[0].Data = data

		ok, err := f.verify(p, claim, pr)
		if ok || !errors.Is(err, ErrMalformedProof) {
			t.Errorf("d=%d: ok=%v err=%v", d, ok, err)
		}
	}

	if ok, err := p.Verify(f.vk, commitment.OpeningClaim{}, transcript.NewVerifier(g, proof)); ok || !errors.Is(err, ErrIncompleteClaim) {
		t.Errorf("empty claim: ok=%v err=%v", ok, err)
	}
}

func TestPreconditions(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 4, false)
	p := New(g)
	one := g.NewScalar().SetUint64(1)

	cases := []struct {
		name string
		poly polynomial.Polynomial
		beta group.Scalar
		want error
	}{
		{"ZeroChallenge", polynomial.FromUint64(g, 1, 2), g.NewScalar(), ErrZeroChallenge},
		{"Empty", polynomial.Polynomial{}, one, ErrDegreeNotPowerOfTwo},
		{"NotPowerOfTwo", polynomial.FromUint64(g, 1, 2, 3), one, ErrDegreeNotPowerOfTwo},
		{"SRSTooShort", polynomial.FromUint64(g, 1, 2, 3, 4, 5, 6, 7, 8), one, commitment.ErrSRSTooShort},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := transcript.New(g)
			pair := commitment.OpeningPair{Challenge: tc.beta, Evaluation: tc.poly.Evaluate(g, tc.beta)}
			err := p.ComputeOpeningProof(f.ck, pair, tc.poly, tr)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
			if len(tr.Manifest()) != 0 {
				t.Error("transcript was written before the precondition check")
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 64, true)
	poly, beta := randomOpening(t, g, 64)
	orig := poly.Clone(g)

	_, first := f.prove(t, New(g), poly, beta)
	_, second := f.prove(t, New(g, WithWorkers(1)), poly, beta)

	a, err := first.Encode()
	if err != nil {
		t.Fatal(err)
	}
	b, err := second.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different proofs")
	}

	for i := range poly {
		if !poly[i].Equal(orig[i]) {
			t.Fatal("prover modified the input polynomial")
		}
	}
	fresh, _ := f.ck.BasePoints(64)
	plain, _ := srs.Generate(g, 64, testDomain, nil)
	for i := range fresh {
		if !fresh[i].Equal(plain.Points[i]) {
			t.Fatal("prover modified the SRS")
		}
	}
}

func TestHashers(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 16, false)
	p := New(g)
	poly, beta := randomOpening(t, g, 16)

	for _, name := range []string{"sha256", "blake2b", "keccak256"} {
		t.Run(name, func(t *testing.T) {
			h, err := transcript.HasherByName(name)
			if err != nil {
				t.Fatal(err)
			}
			claim, proof := f.prove(t, p, poly, beta, transcript.WithHasher(h))
			ok, err := f.verify(p, claim, proof, transcript.WithHasher(h))
			if err != nil || !ok {
				t.Fatalf("ok=%v err=%v", ok, err)
			}

			other := transcript.Hasher(transcript.SHA256Hasher{})
			if name == "sha256" {
				other = transcript.Keccak256Hasher{}
			}
			ok, err = f.verify(p, claim, proof, transcript.WithHasher(other))
			if err != nil || ok {
				t.Errorf("mismatched hasher: ok=%v err=%v", ok, err)
			}
		})
	}
}

func TestConcurrentProofs(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 32, true)
	p := New(g)

	type job struct {
		poly polynomial.Polynomial
		beta group.Scalar
	}
	jobs := make([]job, 8)
	for i := range jobs {
		poly, beta := randomOpening(t, g, 32)
		jobs[i] = job{poly, beta}
	}

	results := make([]bool, len(jobs))
	var wg sync.WaitGroup
	for i, j := range jobs {
		i, j := i, j
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := f.ck.Commit(j.poly)
			if err != nil {
				return
			}
			pair := commitment.OpeningPair{Challenge: j.beta, Evaluation: j.poly.Evaluate(g, j.beta)}
			tr := transcript.New(g)
			if err := p.ComputeOpeningProof(f.ck, pair, j.poly, tr); err != nil {
				return
			}
			ok, err := p.Verify(f.vk, commitment.OpeningClaim{Commitment: c, Pair: pair}, tr.ToVerifier())
			results[i] = ok && err == nil
		}()
	}
	wg.Wait()

	for i, ok := range results {
		if !ok {
			t.Errorf("proof %d failed", i)
		}
	}
}

func TestLogging(t *testing.T) {
	g := &bn254.G1{}
	f := newFixture(t, g, 4, false)

	var buf bytes.Buffer
	p := New(g, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	poly, beta := randomOpening(t, g, 4)
	claim, proof := f.prove(t, p, poly, beta)
	if !strings.Contains(buf.String(), "computed opening proof") {
		t.Errorf("prover did not log: %q", buf.String())
	}

	buf.Reset()
	claim.Pair.Evaluation = g.NewScalar().Add(claim.Pair.Evaluation, g.NewScalar().SetUint64(1))
	if ok, _ := f.verify(p, claim, proof); ok {
		t.Fatal("wrong evaluation accepted")
	}
	if !strings.Contains(buf.String(), "rejected") {
		t.Errorf("verifier did not log the rejection: %q", buf.String())
	}
}

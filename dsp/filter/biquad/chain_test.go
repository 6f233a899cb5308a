package biquad

import (
	"math"
	"testing"
)

func TestChainMatchesSerialSections(t *testing.T) {
	coeffs := []Coefficients{smoother(), {B0: 0.5, B1: 0.5}}
	chain := NewChain(coeffs)

	s1 := NewSection(coeffs[0])
	s2 := NewSection(coeffs[1])

	input := []float64{1, 0.5, -0.25, 0, 0.75, -1}
	buf := append([]float64(nil), input...)
	chain.ProcessBlock(buf)

	for i, x := range input {
		want := s2.ProcessSample(s1.ProcessSample(x))
		if !almostEqual(buf[i], want, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, buf[i], want)
		}
	}
}

func TestChainOrder(t *testing.T) {
	chain := NewChain([]Coefficients{passthrough(), passthrough()})

	if chain.Order() != 4 {
		t.Fatalf("Order = %d, want 4", chain.Order())
	}
	if y := chain.ProcessSample(2); y != 2 {
		t.Fatalf("ProcessSample = %v, want 2", y)
	}
}

func TestChainPrime(t *testing.T) {
	norm := smoother()
	g := norm.DCGain()
	norm.B0 /= g
	norm.B1 /= g
	norm.B2 /= g

	chain := NewChain([]Coefficients{norm, norm})
	chain.Prime(3)

	for i := range 8 {
		if y := chain.ProcessSample(3); !almostEqual(y, 3, 1e-12) {
			t.Fatalf("sample %d: got %v, want 3", i, y)
		}
	}
}

func TestChainResponse(t *testing.T) {
	chain := NewChain([]Coefficients{smoother(), smoother()})
	c := smoother()

	got := chain.MagnitudeDB(0.1, 1)
	want := 2 * c.MagnitudeDB(0.1, 1)
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("MagnitudeDB = %v, want %v", got, want)
	}

	h := c.Response(0.1, 1)
	if !almostEqual(real(h)*real(h)+imag(h)*imag(h), c.MagnitudeSquared(0.1, 1), 1e-12) {
		t.Fatal("Response and MagnitudeSquared disagree")
	}
}

func TestChainImpulseResponsePreservesState(t *testing.T) {
	chain := NewChain([]Coefficients{smoother()})
	chain.ProcessSample(1)

	ref := NewChain([]Coefficients{smoother()})
	ref.ProcessSample(1)

	ir := chain.ImpulseResponse(4)
	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i := range want {
		if !almostEqual(ir[i], want[i], eps) {
			t.Fatalf("ir[%d] = %v, want %v", i, ir[i], want[i])
		}
	}
	if got, want := chain.ProcessSample(0.5), ref.ProcessSample(0.5); got != want {
		t.Fatalf("after ImpulseResponse: got %v, want %v", got, want)
	}
	if chain.ImpulseResponse(0) != nil {
		t.Fatal("ImpulseResponse(0) should be nil")
	}
}

func TestChainIsStable(t *testing.T) {
	if !NewChain([]Coefficients{smoother()}).IsStable() {
		t.Fatal("expected stable chain")
	}
	if NewChain([]Coefficients{smoother(), {B0: 1, A1: 0, A2: 1.5}}).IsStable() {
		t.Fatal("expected unstable chain")
	}
	if math.IsNaN(NewChain(nil).MagnitudeDB(0.1, 1)) {
		t.Fatal("empty chain response should be 0 dB")
	}
}

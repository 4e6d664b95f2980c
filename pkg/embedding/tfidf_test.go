package embedding

import (
	"math"
	"reflect"
	"testing"
)

func preparedProvider(t *testing.T) *TFIDF {
	t.Helper()
	provider := NewTFIDF()
	corpus := []string{
		"statistical methodology for experiment design",
		"experiment results and findings",
		"acknowledgements and references",
	}
	if err := provider.Prepare(corpus); err != nil {
		t.Fatalf("Prepare error: %v", err)
	}
	return provider
}

func TestTFIDFUnpreparedIsUnavailable(t *testing.T) {
	provider := NewTFIDF()
	if provider.Available() {
		t.Error("fresh provider reports available")
	}
	if _, err := provider.Embed("anything"); err == nil {
		t.Error("Embed before Prepare did not error")
	}
}

func TestTFIDFPrepareErrors(t *testing.T) {
	tests := []struct {
		name   string
		corpus []string
	}{
		{name: "empty corpus", corpus: nil},
		{name: "only stop words", corpus: []string{"the and of", "a an the"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewTFIDF().Prepare(tt.corpus); err == nil {
				t.Error("Prepare accepted unusable corpus")
			}
		})
	}
}

func TestTFIDFEmbedDeterministic(t *testing.T) {
	provider := preparedProvider(t)
	if !provider.Available() {
		t.Fatal("prepared provider reports unavailable")
	}

	a, err := provider.Embed("experiment methodology")
	if err != nil {
		t.Fatal(err)
	}
	b, err := provider.Embed("experiment methodology")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated Embed of identical text differs")
	}
	if len(a) != provider.Dimension() {
		t.Errorf("vector length = %d, want %d", len(a), provider.Dimension())
	}

	var norm float64
	for _, v := range a {
		norm += v * v
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-9 {
		t.Errorf("vector not L2 normalized, norm = %v", math.Sqrt(norm))
	}
}

func TestTFIDFEmbedOutOfVocabulary(t *testing.T) {
	provider := preparedProvider(t)
	vec, err := provider.Embed("zebra quasar")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vec {
		if v != 0 {
			t.Fatalf("out-of-vocabulary embed has nonzero component at %d", i)
		}
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical", a: []float64{1, 0}, b: []float64{1, 0}, want: 1},
		{name: "orthogonal", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "opposed clamps to zero", a: []float64{1, 0}, b: []float64{-1, 0}, want: 0},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 1}, want: 0},
		{name: "length mismatch", a: []float64{1}, b: []float64{1, 0}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarTextsScoreHigher(t *testing.T) {
	provider := preparedProvider(t)
	query, err := provider.Embed("experiment methodology design")
	if err != nil {
		t.Fatal(err)
	}
	near, err := provider.Embed("statistical methodology for experiment design")
	if err != nil {
		t.Fatal(err)
	}
	far, err := provider.Embed("acknowledgements and references")
	if err != nil {
		t.Fatal(err)
	}
	if Cosine(query, near) <= Cosine(query, far) {
		t.Errorf("near similarity %v not above far similarity %v",
			Cosine(query, near), Cosine(query, far))
	}
}

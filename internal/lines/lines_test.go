package lines

import (
	"math"
	"testing"

	"github.com/lox/streetbook/internal/randutil"
)

func TestTrueLineAlwaysOnHalfPointGrid(t *testing.T) {
	t.Parallel()
	rng := randutil.New(7)

	for i := 0; i < 1000; i++ {
		home := randutil.Between(rng, 55, 90)
		away := randutil.Between(rng, 55, 90)
		line := TrueLine(home, away)

		if math.Mod(line*2, 1) != 0 {
			t.Fatalf("TrueLine(%f, %f) = %f, not a multiple of 0.5", home, away, line)
		}
	}
}

func TestTrueLineIncludesHomeAdvantage(t *testing.T) {
	t.Parallel()
	// Equal power teams should differ only by home advantage.
	if got := TrueLine(75, 75); got != HomeAdvantage {
		t.Errorf("equal teams: got %f, want %f", got, HomeAdvantage)
	}
}

func TestRoundHalf(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in, want float64
	}{
		{3.3, 3.5},
		{3.2, 3.0},
		{-1.3, -1.5},
		{0, 0},
		{7.75, 8.0},
		{7.5, 7.5},
	}
	for _, c := range cases {
		if got := RoundHalf(c.in); got != c.want {
			t.Errorf("RoundHalf(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestGradeAntiSymmetric(t *testing.T) {
	t.Parallel()
	rng := randutil.New(11)

	for i := 0; i < 2000; i++ {
		home := rng.IntN(50)
		away := rng.IntN(50)
		line := RoundHalf(randutil.Between(rng, -14, 14))

		h := Grade(home, away, Home, line)
		a := Grade(home, away, Away, line)

		if h == Win && a == Win {
			t.Fatalf("both sides won: %d-%d line %f", home, away, line)
		}
		if h == Push != (a == Push) {
			t.Fatalf("push must hold for both sides: %d-%d line %f => %s/%s", home, away, line, h, a)
		}
		if h != Push && h == a {
			t.Fatalf("non-push outcomes must oppose: %d-%d line %f => %s/%s", home, away, line, h, a)
		}
	}
}

func TestGradePushOnExactCover(t *testing.T) {
	t.Parallel()
	// Home wins by 7, line gives home -7: margin + line == 0.
	if got := Grade(27, 20, Home, -7); got != Push {
		t.Errorf("expected push, got %s", got)
	}
	if got := Grade(27, 20, Away, -7); got != Push {
		t.Errorf("expected push for away side too, got %s", got)
	}
}

func TestFindValue(t *testing.T) {
	t.Parallel()

	if v := FindValue(3, 3); v != nil {
		t.Errorf("no value expected on a fair line, got %+v", v)
	}
	if v := FindValue(4.5, 3); v != nil {
		t.Errorf("1.5 points off is still inside the band, got %+v", v)
	}

	v := FindValue(5.5, 3)
	if v == nil || v.Side != Away || v.Points != 2.5 {
		t.Errorf("line too high should favor away: got %+v", v)
	}

	v = FindValue(0.5, 3)
	if v == nil || v.Side != Home || v.Points != 2.5 {
		t.Errorf("line too low should favor home: got %+v", v)
	}
}

func TestFormatSpread(t *testing.T) {
	t.Parallel()
	cases := []struct {
		line        float64
		perspective Side
		want        string
	}{
		{7, Home, "-7"},
		{7, Away, "+7"},
		{-3.5, Home, "+3.5"},
		{0, Home, "PK"},
		{0, Away, "PK"},
	}
	for _, c := range cases {
		if got := FormatSpread(c.line, c.perspective); got != c.want {
			t.Errorf("FormatSpread(%f, %s) = %q, want %q", c.line, c.perspective, got, c.want)
		}
	}
}

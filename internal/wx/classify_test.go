package wx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestFourTierClassify(t *testing.T) {
	cases := []struct {
		name    string
		ceiling *int
		visib   string
		want    Category
	}{
		{"low ceiling is LIFR", intPtr(400), "10", CatLIFR},
		{"low visibility is IFR", intPtr(1500), "2", CatIFR},
		{"high ceiling good visibility is VFR", intPtr(3500), "10", CatVFR},
		{"ceiling at 3000 is MVFR", intPtr(3000), "10", CatMVFR},
		{"ceiling just above 3000 is VFR", intPtr(3001), "10", CatVFR},
		{"visibility at 5 is MVFR", nil, "5", CatMVFR},
		{"visibility just below 1 is LIFR", nil, "0.5", CatLIFR},
		{"plus notation lifts the boundary", nil, "5+", CatVFR},
		{"worst axis wins", intPtr(400), "0.5", CatLIFR},
		{"nothing reported is VFR", nil, "", CatVFR},
		{"unparseable visibility contributes nothing", intPtr(5000), "M1/4SM", CatVFR},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FourTier.Classify(tc.ceiling, Vis(tc.visib)))
		})
	}
}

func TestTwoTierClassify(t *testing.T) {
	cases := []struct {
		name    string
		ceiling *int
		visib   string
		want    Category
	}{
		{"ceiling at 1500 is IFR", intPtr(1500), "10", CatIFR},
		{"ceiling above 1500 is VFR", intPtr(1600), "10", CatVFR},
		// 3 SM is 4.83 km, at or below the 5 km threshold.
		{"three miles is IFR", nil, "3", CatIFR},
		// 4 SM is 6.44 km, above it.
		{"four miles is VFR", nil, "4", CatVFR},
		{"nothing reported is VFR", nil, "", CatVFR},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TwoTier.Classify(tc.ceiling, Vis(tc.visib)))
		})
	}
}

func TestSchemeByName(t *testing.T) {
	s, err := SchemeByName("")
	require.NoError(t, err)
	assert.Equal(t, "fourtier", s.Name())

	s, err = SchemeByName("twotier")
	require.NoError(t, err)
	assert.Equal(t, "twotier", s.Name())

	_, err = SchemeByName("threetier")
	assert.Error(t, err)
}

func TestWorseOrdering(t *testing.T) {
	assert.Equal(t, CatLIFR, Worse(CatVFR, CatLIFR))
	assert.Equal(t, CatIFR, Worse(CatIFR, CatMVFR))
	// CatNone is the identity.
	assert.Equal(t, CatMVFR, Worse(CatNone, CatMVFR))
	assert.Equal(t, CatNone, Worse(CatNone, CatNone))
}

package translate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		want    Pair
		wantErr bool
	}{
		{in: "en-es", want: Pair{Source: "en", Target: "es"}},
		{in: "fr-en", want: Pair{Source: "fr", Target: "en"}},
		{in: "en", wantErr: true},
		{in: "-es", wantErr: true},
		{in: "en-", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePair(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogSupports(t *testing.T) {
	catalog, err := NewCatalog([]string{"en-es", "es-en", "en-fr"})
	require.NoError(t, err)

	require.True(t, catalog.Supports(Pair{Source: "en", Target: "es"}))
	require.True(t, catalog.Supports(Pair{Source: "es", Target: "en"}))
	require.False(t, catalog.Supports(Pair{Source: "fr", Target: "en"}), "pairs are directional")
	require.False(t, catalog.Supports(Pair{Source: "en", Target: "de"}))
}

func TestCatalogListIsSorted(t *testing.T) {
	catalog, err := NewCatalog([]string{"es-en", "en-fr", "en-es"})
	require.NoError(t, err)

	require.Equal(t, []string{"en-es", "en-fr", "es-en"}, catalog.List())
}

func TestNewCatalogRejectsMalformedPackages(t *testing.T) {
	_, err := NewCatalog([]string{"en-es", "bogus"})
	require.Error(t, err)
}

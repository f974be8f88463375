package pricing

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowrent/internal/domain"
)

func TestDefault_HasExpectedShape(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	assert.Len(t, table.Adult.Tiers, 3)
	assert.Len(t, table.Child.Tiers, 1)
	assert.Equal(t, 3000, table.CrossStoreSurcharge)

	_, ok := table.Child.Main(domain.TierAdvanced, domain.BundleFullSet)
	assert.False(t, ok)
	r, ok := table.Adult.Main(domain.TierPowder, domain.BundleBoardOnly)
	require.True(t, ok)
	assert.Equal(t, 6500, r[5])
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1500, table.Helmet[0])
}

func TestLoad_Override(t *testing.T) {
	data, err := os.ReadFile("default_table.yaml")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "prices.yaml")
	require.NoError(t, os.WriteFile(path, bytes.Replace(data, []byte("cross_store_surcharge: 3000"), []byte("cross_store_surcharge: 2500"), 1), 0o600))

	table, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2500, table.CrossStoreSurcharge)
	assert.Equal(t, 12000, table.Adult.Tiers[domain.TierStandard][domain.BundleFullSet][0])
}

func TestLoad_RejectsUnknownTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	raw := "adult:\n  tiers:\n    extreme:\n      full_set: [1, 2, 3, 4, 5, 6]\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown board tier")
}

func validTable(t *testing.T) *Table {
	t.Helper()
	table, err := Default()
	require.NoError(t, err)
	return table
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Table)
		wantErr string
	}{
		{
			name:    "short rate list",
			mutate:  func(tb *Table) { tb.Helmet = Rates{1, 2, 3} },
			wantErr: "helmet: expected 6 rates, got 3",
		},
		{
			name: "negative rate",
			mutate: func(tb *Table) {
				tb.Child.Boots = Rates{1, 2, 3, 4, -5, 6}
			},
			wantErr: "child.boots: negative rate -5",
		},
		{
			name:    "missing standard tier",
			mutate:  func(tb *Table) { delete(tb.Child.Tiers, domain.TierStandard) },
			wantErr: "child: standard tier is required",
		},
		{
			name:    "negative surcharge",
			mutate:  func(tb *Table) { tb.CrossStoreSurcharge = -1 },
			wantErr: "cross_store_surcharge",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := validTable(t)
			tt.mutate(table)

			err := table.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want Location
	}{
		{
			raw:  "out/SKU_MASTER_v2.parquet",
			want: Location{Raw: "out/SKU_MASTER_v2.parquet", Kind: KindFile, Path: "out/SKU_MASTER_v2.parquet", Format: FormatParquet},
		},
		{
			raw:  "file:///data/events.CSV",
			want: Location{Raw: "file:///data/events.CSV", Kind: KindFile, Path: "/data/events.CSV", Format: FormatCSV},
		},
		{
			raw:  "s3://recon/snapshots/sku.parquet",
			want: Location{Raw: "s3://recon/snapshots/sku.parquet", Kind: KindS3, Bucket: "recon", Path: "snapshots/sku.parquet", Format: FormatParquet},
		},
		{
			raw:  "https://cdn.example.com/data/exceptions.parquet?v=3",
			want: Location{Raw: "https://cdn.example.com/data/exceptions.parquet?v=3", Kind: KindHTTP, URL: "https://cdn.example.com/data/exceptions.parquet?v=3", Path: "/data/exceptions.parquet", Format: FormatParquet},
		},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseLocation(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocation_Invalid(t *testing.T) {
	_, err := ParseLocation("")
	assert.Error(t, err)

	_, err = ParseLocation("s3://bucket-only")
	assert.ErrorContains(t, err, "want s3://bucket/key")

	_, err = ParseLocation("data/sku.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

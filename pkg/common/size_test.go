package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	t.Parallel()

	const gib = 1 << 30

	cases := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "200GB", want: 200 * gib},
		{input: "200G", want: 200 * gib},
		{input: "1TiB", want: 1 << 40},
		{input: " 512MB ", want: 512 << 20},
		{input: "200", want: 200 * gib},
		{input: "200gb", want: 200 * gib},
		{input: "1tib", want: 1 << 40},
		{input: "64Mb", want: 64 << 20},
		{input: "1MB", want: MinSize},
		{input: "512KB", wantErr: true},
		{input: "4096B", wantErr: true},
		{input: "-5GB", wantErr: true},
		{input: "0", wantErr: true},
		{input: "5XB", wantErr: true},
		{input: "0GB", wantErr: true},
		{input: "lots", wantErr: true},
		{input: "", wantErr: true},
	}

	for i := range cases {
		tcase := &cases[i]
		t.Run(tcase.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSize(tcase.input)
			if tcase.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tcase.want, got)
			}
		})
	}
}

func TestFormatSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "200GB", FormatSize(200<<30))
	assert.Equal(t, "1TB", FormatSize(1<<40))
	assert.Equal(t, "1536MB", FormatSize(1536<<20))
	assert.Equal(t, "3KB", FormatSize(3<<10))
	assert.Equal(t, "100B", FormatSize(100))
	assert.Equal(t, "50GB", GigaBytes(50))
}

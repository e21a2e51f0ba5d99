package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oddlzenie/intake/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  []slug.Option
		want  string
	}{
		{
			name:  "basic lowercase",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "slovak surname keeps case",
			input: "Nováková",
			opts:  []slug.Option{slug.Lowercase(false)},
			want:  "Novakova",
		},
		{
			name:  "full slovak alphabet folds",
			input: "ľščťžýáíéďĺňôŕ",
			want:  "lsctzyaiedlnor",
		},
		{
			name:  "uppercase diacritics",
			input: "ŠKODA Ďábel",
			opts:  []slug.Option{slug.Separator("_"), slug.Lowercase(false)},
			want:  "SKODA_Dabel",
		},
		{
			name:  "special runs collapse to one separator",
			input: "a  -- b",
			want:  "a-b",
		},
		{
			name:  "custom separator",
			input: "Ján Novák",
			opts:  []slug.Option{slug.Separator("_"), slug.Lowercase(false)},
			want:  "Jan_Novak",
		},
		{
			name:  "trailing specials trimmed",
			input: "meno!!!",
			want:  "meno",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.input, tt.opts...))
		})
	}
}

package langcode

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "en", want: "en"},
		{in: "en-US", want: "en"},
		{in: "hi-IN", want: "hi"},
		{in: "es_ES", want: "es"},
		{in: "zh-CN", want: "zh-CN"},
		{in: "zh-tw", want: "zh-TW"},
		{in: "pt-PT", want: "pt-PT"},
		{in: "pt-BR", want: "pt"},
		{in: "auto", want: "auto"},
		{in: "AUTO", want: "auto"},
		{in: " fr ", want: "fr"},
		{in: "not a language", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

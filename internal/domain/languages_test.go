package domain

import (
	"reflect"
	"testing"
)

func TestParseLanguages(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr bool
	}{
		{"single", []string{"en"}, []string{"en"}, false},
		{"comma list", []string{"es, en"}, []string{"es", "en"}, false},
		{"mixed args", []string{"es", "en,fr"}, []string{"es", "en", "fr"}, false},
		{"dedup keeps first", []string{"en", "es", "en"}, []string{"en", "es"}, false},
		{"region kept verbatim", []string{"pt-BR", "zh-Hans"}, []string{"pt-BR", "zh-Hans"}, false},
		{"empty entries skipped", []string{",en,,"}, []string{"en"}, false},
		{"invalid tag", []string{"not a tag"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLanguages(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLanguages() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if KindOf(err) != KindInvalidInput {
					t.Errorf("KindOf() = %s, want %s", KindOf(err), KindInvalidInput)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLanguages() = %v, want %v", got, tt.want)
			}
		})
	}
}

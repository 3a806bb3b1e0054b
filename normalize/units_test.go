package normalize

import "testing"

func TestVocabulary_Contains(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		token string
		want  bool
	}{
		{"PZA", true},
		{"pza.", true},
		{"Kg", true},
		{"Galón", true},
		{"M2", true},
		{"(ROLLO)", true},
		{"gris", false},
		{"cemento", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := v.Contains(tt.token); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

func TestVocabulary_Match(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"Cemento gris SACOS", "SACOS", true},
		{"Cable THW PZA. rojo", "PZA", true},
		{"Arena fina", "", false},
		{"Tubo con un codo", "", false},
		{"Guantes un par PZA", "PZA", true},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := v.Match(tt.text)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestVocabulary_Empty(t *testing.T) {
	var v *Vocabulary
	if v.Contains("kg") {
		t.Error("nil vocabulary should recognize nothing")
	}
	if _, ok := NewVocabulary(nil).Match("10 kg"); ok {
		t.Error("empty vocabulary should recognize nothing")
	}
}

func TestVocabulary_Custom(t *testing.T) {
	v := NewVocabulary([]string{"Bolsa", " tramo "})
	if v.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", v.Len())
	}
	if !v.Contains("BOLSA") || !v.Contains("Tramo") {
		t.Error("custom units not recognized")
	}
}

func TestVocabulary_Standalone(t *testing.T) {
	v := NewVocabularyWithStandalone([]string{"un", "kg"}, []string{"UN", "bolsa"})

	if !v.Contains("un") {
		t.Error("standalone unit should still be contained")
	}
	if _, ok := v.Match("con un empaque"); ok {
		t.Error("standalone unit matched inside a line")
	}
	if got, ok := v.Match("un saco 5 kg"); !ok || got != "kg" {
		t.Errorf("Match() = (%q, %v), want (kg, true)", got, ok)
	}
	if v.Contains("bolsa") {
		t.Error("standalone entry outside the unit list was added")
	}
	if got, ok := NewVocabulary([]string{"un"}).Match("con un empaque"); !ok || got != "un" {
		t.Errorf("plain vocabulary Match() = (%q, %v), want (un, true)", got, ok)
	}
}

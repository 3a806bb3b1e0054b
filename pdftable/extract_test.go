package pdftable

import (
	"testing"

	"github.com/tsawler/lineitems/columns"
	"github.com/tsawler/lineitems/layout"
	"github.com/tsawler/lineitems/model"
	"github.com/tsawler/lineitems/text"
)

type cell struct {
	x float64
	s string
}

// page builds one fragment per cell; rows are listed top to bottom.
func page(rows ...[]text.Fragment) []text.Fragment {
	var out []text.Fragment
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

func row(y float64, cells ...cell) []text.Fragment {
	out := make([]text.Fragment, 0, len(cells))
	for _, c := range cells {
		out = append(out, text.Fragment{Text: c.s, X: c.x, Y: y, Width: float64(len(c.s)) * 5, FontSize: 10})
	}
	return out
}

func header(y float64) []text.Fragment {
	return row(y, cell{20, "No."}, cell{50, "Material"}, cell{300, "Unidad"}, cell{400, "Cantidad"})
}

func assertItems(t *testing.T, got, want []model.LineItem) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d items %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExtractPage(t *testing.T) {
	frags := page(
		row(760, cell{50, "Requisición de compra 2024"}),
		header(700),
		row(680, cell{20, "1"}, cell{50, "Cemento gris"}, cell{300, "SACOS"}, cell{400, "10"}),
		row(665, cell{20, "2"}, cell{50, "Varilla corrugada 3/8"}, cell{300, "PZA"}, cell{400, "1.234,5"}),
		row(650, cell{20, "3"}, cell{50, "Arena fina"}, cell{400, "12,5"}),
		row(635, cell{50, "de río lavada"}),
		row(620, cell{20, "4"}, cell{50, "Tubo PVC"}, cell{300, "Unidad métrica"}, cell{400, "3"}),
		row(605, cell{50, "Observaciones: entregar en obra"}),
		row(590, cell{20, "5"}, cell{50, "Grava"}, cell{300, "M3"}, cell{400, "5"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)

	if !res.HeaderFound {
		t.Fatal("header not found")
	}
	if res.FallbackBounds {
		t.Error("unexpected fallback bounds")
	}
	if got := res.Bounds[columns.Unidad]; got != (columns.Interval{Min: 298, Max: 398}) {
		t.Errorf("unit bounds = %v", got)
	}

	assertItems(t, res.Items, []model.LineItem{
		{Material: "Cemento gris", MetricUnit: "SACOS", Quantity: "10"},
		{Material: "Varilla corrugada 3/8", MetricUnit: "PZA", Quantity: "1234.5"},
		{Material: "Arena fina de río lavada", MetricUnit: "", Quantity: "12.5"},
		{Material: "Tubo PVC", MetricUnit: "", Quantity: "3"},
	})
}

func TestExtractPage_HeaderLabels(t *testing.T) {
	tests := []struct {
		label string
		found bool
	}{
		{"Material", true},
		{"MATERIALES", true},
		{"Materiales solicitados", true},
		{"Descripción del material", true},
		{"Materia prima", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			frags := page(
				row(700, cell{50, tt.label}, cell{300, "Unidad"}, cell{400, "Cantidad"}),
				row(680, cell{50, "Clavo"}, cell{300, "KG"}, cell{400, "2"}),
			)

			res := NewExtractor(DefaultConfig()).ExtractPage(frags)
			if res.HeaderFound != tt.found {
				t.Fatalf("HeaderFound = %v, want %v", res.HeaderFound, tt.found)
			}
			if !tt.found {
				return
			}
			assertItems(t, res.Items, []model.LineItem{
				{Material: "Clavo", MetricUnit: "KG", Quantity: "2"},
			})
		})
	}
}

func TestExtractPage_NoHeader(t *testing.T) {
	frags := page(
		row(700, cell{50, "Factura"}),
		row(680, cell{50, "Cemento gris"}, cell{300, "SACOS"}, cell{400, "10"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	if res.HeaderFound {
		t.Error("HeaderFound = true, want false")
	}
	if len(res.Items) != 0 {
		t.Errorf("got %d items, want 0", len(res.Items))
	}
	if res.Items == nil {
		t.Error("Items should be an empty slice, not nil")
	}
}

func TestExtractPage_FallbackBounds(t *testing.T) {
	frags := page(
		row(700, cell{50, "Materiales"}),
		row(680, cell{50, "Cemento"}, cell{300, "KG"}, cell{380, "25"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	if !res.FallbackBounds {
		t.Error("FallbackBounds = false, want true")
	}
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Cemento", MetricUnit: "KG", Quantity: "25"},
	})
}

func TestExtractPage_MultiLineHeader(t *testing.T) {
	frags := page(
		row(700, cell{50, "Material"}, cell{300, "Unidad"}),
		row(688, cell{400, "Cantidad"}),
		row(670, cell{50, "Clavo"}, cell{300, "KG"}, cell{400, "2"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	if res.FallbackBounds {
		t.Fatal("labels across the header block should be combined")
	}
	if got := res.Bounds[columns.Cantidad].Min; got != 398 {
		t.Errorf("quantity bound Min = %v, want 398", got)
	}
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Clavo", MetricUnit: "KG", Quantity: "2"},
	})
}

func TestExtractPage_LookaheadLimit(t *testing.T) {
	frags := page(
		header(700),
		row(680, cell{50, "Cable"}, cell{300, "ROLLO"}, cell{400, "4"}),
		row(665, cell{50, "de cobre"}),
		row(650, cell{50, "forrado"}),
		row(635, cell{50, "color negro"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Cable de cobre forrado", MetricUnit: "ROLLO", Quantity: "4"},
	})
}

func TestExtractPage_UnitAfterQuantity(t *testing.T) {
	frags := page(
		row(700, cell{50, "Material"}, cell{300, "Cantidad"}, cell{400, "Unidad"}),
		row(680, cell{50, "Cinta aislante"}, cell{300, "4"}, cell{400, "ROLLOS"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Cinta aislante", MetricUnit: "ROLLOS", Quantity: "4"},
	})
}

func TestExtractPage_UnitFromBand(t *testing.T) {
	frags := page(
		header(700),
		row(680, cell{50, "Pintura vinílica"}, cell{300, "Cubo"}, cell{400, "6"}),
		row(665, cell{50, "Moldura"}, cell{300, "Tramo recto"}, cell{400, "20"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Pintura vinílica", MetricUnit: "Cubo", Quantity: "6"},
		{Material: "Moldura", MetricUnit: "Tramo recto", Quantity: "20"},
	})
}

func TestExtractPage_SkipsLines(t *testing.T) {
	frags := page(
		header(700),
		row(680, cell{50, "Sin cantidad"}, cell{300, "PZA"}),
		row(665, cell{20, "9"}, cell{300, "PZA"}, cell{400, "4"}),
		row(650, cell{50, "Codo"}, cell{400, "8"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Codo", MetricUnit: "", Quantity: "8"},
	})
}

func TestExtractPage_KeepsDescriptiveWords(t *testing.T) {
	frags := page(
		header(700),
		row(680, cell{50, "Cemento gris"}, cell{400, "120"}),
		row(665, cell{50, "Tubo PVC"}, cell{400, "7"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Cemento gris", MetricUnit: "", Quantity: "120"},
		{Material: "Tubo PVC", MetricUnit: "", Quantity: "7"},
	})
}

func TestExtractPage_StandaloneUnits(t *testing.T) {
	frags := page(
		header(700),
		row(680, cell{50, "Tubo con un codo"}, cell{400, "5"}),
		row(665, cell{50, "Valvula"}, cell{300, "PZA"}, cell{400, "2"}),
		row(650, cell{50, "con un empaque"}),
		row(635, cell{50, "Tornillo"}, cell{300, "UN"}, cell{400, "12"}),
	)

	res := NewExtractor(DefaultConfig()).ExtractPage(frags)
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Tubo con un codo", MetricUnit: "", Quantity: "5"},
		{Material: "Valvula con un empaque", MetricUnit: "PZA", Quantity: "2"},
		{Material: "Tornillo", MetricUnit: "UN", Quantity: "12"},
	})
}

func TestExtractPage_PeelAnyWord(t *testing.T) {
	frags := page(
		header(700),
		row(680, cell{50, "Cemento gris"}, cell{400, "120"}),
		row(665, cell{50, "Tubo PVC"}, cell{400, "7"}),
		row(650, cell{50, "Varilla 3/8"}, cell{400, "9"}),
	)

	cfg := DefaultConfig()
	cfg.PeelAnyWord = true

	res := NewExtractor(cfg).ExtractPage(frags)
	assertItems(t, res.Items, []model.LineItem{
		{Material: "Cemento", MetricUnit: "gris", Quantity: "120"},
		{Material: "Tubo", MetricUnit: "PVC", Quantity: "7"},
		{Material: "Varilla 3/8", MetricUnit: "", Quantity: "9"},
	})
}

func TestLeftOfUnit(t *testing.T) {
	cfg := DefaultConfig()
	r := rowReader{cfg: &cfg, bounds: columns.Bounds{
		columns.Numero: {Min: 18, Max: 48},
		columns.Unidad: {Min: 298, Max: 398},
	}}

	tests := []struct {
		name     string
		cells    []layout.Cell
		quantity string
		want     string
	}{
		{
			name:     "keeps an earlier equal token",
			cells:    []layout.Cell{{X: 20, Text: "1"}, {X: 50, Text: "Tubo 10"}, {X: 200, Text: "10"}, {X: 400, Text: "PZA"}},
			quantity: "10",
			want:     "Tubo 10",
		},
		{
			name:     "drops the quantity",
			cells:    []layout.Cell{{X: 50, Text: "Codo"}, {X: 200, Text: "4"}},
			quantity: "4",
			want:     "Codo",
		},
		{
			name:     "quantity absent",
			cells:    []layout.Cell{{X: 50, Text: "Codo largo"}},
			quantity: "10",
			want:     "Codo largo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := layout.Line{Y: 600, Cells: tt.cells}
			if got := r.leftOfUnit(line, tt.quantity); got != tt.want {
				t.Errorf("leftOfUnit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtract_PageOrder(t *testing.T) {
	p1 := page(header(700), row(680, cell{50, "Arena"}, cell{300, "M3"}, cell{400, "3"}))
	p2 := page(row(700, cell{50, "Sin tabla"}))
	p3 := page(header(700), row(680, cell{50, "Grava"}, cell{300, "M3"}, cell{400, "5"}))

	items := NewExtractor(DefaultConfig()).Extract([][]text.Fragment{p1, p2, p3})
	assertItems(t, items, []model.LineItem{
		{Material: "Arena", MetricUnit: "M3", Quantity: "3"},
		{Material: "Grava", MetricUnit: "M3", Quantity: "5"},
	})
}

func TestExtract_Empty(t *testing.T) {
	items := NewExtractor(DefaultConfig()).Extract(nil)
	if items == nil || len(items) != 0 {
		t.Errorf("Extract(nil) = %v, want empty slice", items)
	}
}

func TestUnitShaped(t *testing.T) {
	tests := []struct {
		w    string
		want bool
	}{
		{"PZA", true},
		{"pza.", true},
		{"M3", false},
		{"3/8", false},
		{"abcdefghijkl", true},
		{"abcdefghijklm", false},
		{"abcdefghijkls", true},
		{"abcdefghijkles", true},
		{".", false},
	}
	for _, tt := range tests {
		if got := unitShaped(tt.w, 12); got != tt.want {
			t.Errorf("unitShaped(%q) = %v, want %v", tt.w, got, tt.want)
		}
	}
}

package cards

import (
	"reflect"
	"testing"
)

func TestBuildIndex(t *testing.T) {
	cs := []Card{
		{Type: "Magic", Cost: "10", Gem: "x", CColor: " Red "},
		{Type: "Avatar", Cost: "2", Gem: "1"},
		{Type: "Avatar", Cost: "n/a", Gem: "0"},
		{Type: " ", Cost: "2.5", Symbol: "เทพ"},
		{Type: "Construct", Cost: "", CColor: "Blue"},
	}
	idx := BuildIndex(cs)

	tests := []struct {
		cat  Category
		want []string
	}{
		{CategoryType, []string{"Avatar", "Construct", "Magic"}},
		{CategoryCost, []string{"2", "2.5", "10"}},
		{CategoryGem, []string{"0", "1"}},
		{CategoryCColor, []string{"Blue", "Red"}},
		{CategorySymbol, []string{"เทพ"}},
		{CategoryGColor, []string{}},
	}
	for _, tt := range tests {
		if got := idx[tt.cat]; !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.cat, got, tt.want)
		}
	}
}

func TestBuildIndexEmptyCatalog(t *testing.T) {
	idx := BuildIndex(nil)
	for _, cat := range Categories {
		if v, ok := idx[cat]; !ok || len(v) != 0 {
			t.Errorf("%s = %v", cat, v)
		}
	}
}

package query

import (
	"reflect"
	"testing"

	"github.com/pdiddy/profile-curator/pkg/types"
)

func TestPrimary(t *testing.T) {
	tests := []struct {
		name        string
		kind        types.SourceKind
		provider    string
		affiliation string
		want        string
	}{
		{
			"pubmed name only",
			types.SourcePubMed, "Smith J", "",
			"Smith J[Author]",
		},
		{
			"pubmed with affiliation",
			types.SourcePubMed, "Smith J", "Mayo Clinic",
			"Smith J[Author] AND Mayo Clinic[Affiliation]",
		},
		{
			"trials name only",
			types.SourceTrials, "Jane Smith", "",
			`AREA[OverallOfficialName] "Jane Smith"`,
		},
		{
			"trials with affiliation",
			types.SourceTrials, "Jane Smith", "Mayo Clinic",
			`AREA[OverallOfficialName] "Jane Smith" AND AREA[LocationFacility] "Mayo Clinic"`,
		},
		{
			"media quoted phrases",
			types.SourceMedia, "Jane Smith", "Mayo Clinic",
			`"Jane Smith" "Mayo Clinic"`,
		},
		{
			"whitespace trimmed",
			types.SourcePubMed, "  Smith J ", " ",
			"Smith J[Author]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Primary(tt.kind, tt.provider, tt.affiliation)
			if got != tt.want {
				t.Errorf("Primary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggest(t *testing.T) {
	got := Suggest("Jane Smith", []string{"Mayo Clinic", "Johns Hopkins"})
	want := []string{
		"Jane Smith",
		`"Jane Smith"`,
		"Jane Smith Mayo Clinic",
		"Jane Smith Johns Hopkins",
		"Smith J",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggestDeterministic(t *testing.T) {
	a := Suggest("Jane Smith", []string{"Mayo Clinic"})
	b := Suggest("Jane Smith", []string{"Mayo Clinic"})
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Suggest not deterministic: %v vs %v", a, b)
	}
}

func TestSuggestSingleToken(t *testing.T) {
	got := Suggest("Cher", nil)
	want := []string{"Cher", `"Cher"`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest() = %v, want %v", got, want)
	}
}

func TestSuggestCap(t *testing.T) {
	affs := []string{"A Hosp", "B Hosp", "C Hosp", "D Hosp", "E Hosp", "F Hosp"}
	got := Suggest("Jane Smith", affs)
	if len(got) > 6 {
		t.Errorf("len(Suggest()) = %d, want <= 6", len(got))
	}
}

func TestSuggestEmptyName(t *testing.T) {
	if got := Suggest("  ", nil); got != nil {
		t.Errorf("Suggest(blank) = %v, want nil", got)
	}
}

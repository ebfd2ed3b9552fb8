package normalize

import (
	"testing"

	"github.com/pdiddy/profile-curator/internal/source"
)

const sampleStudyJSON = `{
  "protocolSection": {
    "identificationModule": {
      "nctId": "NCT04368728",
      "briefTitle": "Valve Repair Versus Replacement",
      "organization": {"fullName": "Mayo Clinic"}
    },
    "statusModule": {
      "overallStatus": "RECRUITING",
      "startDateStruct": {"date": "2023-01"}
    },
    "descriptionModule": {"briefSummary": "A comparison study."},
    "conditionsModule": {
      "conditions": ["Mitral Valve Insufficiency"],
      "keywords": ["cardiac surgery"]
    },
    "designModule": {
      "phases": ["PHASE2", "PHASE3"],
      "enrollmentInfo": {"count": 240}
    },
    "contactsLocationsModule": {"locations": [{}, {}, {}]},
    "outcomesModule": {"primaryOutcomes": [{"measure": "mortality"}]}
  }
}`

func TestNormalizeTrialStudy(t *testing.T) {
	rec, err := Normalize(source.RawRecord{Kind: source.RawTrialStudy, Data: []byte(sampleStudyJSON)})
	if err != nil {
		t.Fatalf("Normalize() err = %v", err)
	}

	if rec.ExternalID != "NCT04368728" {
		t.Errorf("ExternalID = %q", rec.ExternalID)
	}
	if rec.Title != "Valve Repair Versus Replacement" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.SourceName != "Mayo Clinic" {
		t.Errorf("SourceName = %q", rec.SourceName)
	}
	if got := rec.PublishedAt.String(); got != "2023-01" {
		t.Errorf("PublishedAt = %q, want 2023-01", got)
	}
	if rec.Classification != "PHASE2/PHASE3" {
		t.Errorf("Classification = %q", rec.Classification)
	}
	if rec.FreeText.Summary != "A comparison study." {
		t.Errorf("Summary = %q", rec.FreeText.Summary)
	}
	if len(rec.FreeText.Keywords) != 2 {
		t.Errorf("Keywords = %v", rec.FreeText.Keywords)
	}
	if rec.Extra["enrollment"] != "240" || rec.Extra["locations"] != "3" || rec.Extra["primary_outcomes"] != "1" {
		t.Errorf("Extra = %v", rec.Extra)
	}
	if rec.Locator != "https://clinicaltrials.gov/study/NCT04368728" {
		t.Errorf("Locator = %q", rec.Locator)
	}
}

func TestNormalizeTrialStudyNoPhases(t *testing.T) {
	doc := `{"protocolSection": {
		"identificationModule": {"nctId": "NCT00000001", "briefTitle": "Observational"},
		"statusModule": {"overallStatus": "COMPLETED"}
	}}`

	rec, err := Normalize(source.RawRecord{Kind: source.RawTrialStudy, Data: []byte(doc)})
	if err != nil {
		t.Fatalf("Normalize() err = %v", err)
	}
	if rec.Classification != "COMPLETED" {
		t.Errorf("Classification = %q, want status fallback", rec.Classification)
	}
	if !rec.PublishedAt.IsZero() {
		t.Errorf("PublishedAt = %v, want zero", rec.PublishedAt)
	}
}

func TestNormalizeTrialStudyMissingTitle(t *testing.T) {
	doc := `{"protocolSection": {"identificationModule": {"nctId": "NCT00000001"}}}`
	if _, err := Normalize(source.RawRecord{Kind: source.RawTrialStudy, Data: []byte(doc)}); err == nil {
		t.Fatal("study without a title was not rejected")
	}
}

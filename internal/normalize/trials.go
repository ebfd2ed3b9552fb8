// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/profile-curator/pkg/types"
)

// trialStudy captures the ClinicalTrials.gov v2 study fields we map.
type trialStudy struct {
	Protocol struct {
		Identification struct {
			NCTID        string `json:"nctId"`
			BriefTitle   string `json:"briefTitle"`
			Organization struct {
				FullName string `json:"fullName"`
			} `json:"organization"`
		} `json:"identificationModule"`
		Status struct {
			OverallStatus string `json:"overallStatus"`
			StartDate     struct {
				Date string `json:"date"`
			} `json:"startDateStruct"`
		} `json:"statusModule"`
		Description struct {
			BriefSummary string `json:"briefSummary"`
		} `json:"descriptionModule"`
		Conditions struct {
			Conditions []string `json:"conditions"`
			Keywords   []string `json:"keywords"`
		} `json:"conditionsModule"`
		Design struct {
			Phases     []string `json:"phases"`
			Enrollment struct {
				Count int `json:"count"`
			} `json:"enrollmentInfo"`
		} `json:"designModule"`
		Locations struct {
			Locations []json.RawMessage `json:"locations"`
		} `json:"contactsLocationsModule"`
		Outcomes struct {
			Primary []json.RawMessage `json:"primaryOutcomes"`
		} `json:"outcomesModule"`
	} `json:"protocolSection"`
}

func normalizeTrialStudy(data []byte) (types.CanonicalRecord, error) {
	var s trialStudy
	if err := json.Unmarshal(data, &s); err != nil {
		return types.CanonicalRecord{}, fmt.Errorf("parsing study: %w", err)
	}

	p := s.Protocol
	startDate, _ := types.ParsePartialDate(p.Status.StartDate.Date)

	rec := types.CanonicalRecord{
		Source:         types.SourceTrials,
		ExternalID:     strings.TrimSpace(p.Identification.NCTID),
		Title:          strings.TrimSpace(p.Identification.BriefTitle),
		SourceName:     strings.TrimSpace(p.Identification.Organization.FullName),
		PublishedAt:    startDate,
		Classification: trialClassification(p.Design.Phases, p.Status.OverallStatus),
		FreeText: types.FreeText{
			Summary:  strings.TrimSpace(p.Description.BriefSummary),
			Keywords: trimAll(append(append([]string{}, p.Conditions.Conditions...), p.Conditions.Keywords...)),
		},
	}

	extra := make(map[string]string)
	if p.Design.Enrollment.Count > 0 {
		extra["enrollment"] = strconv.Itoa(p.Design.Enrollment.Count)
	}
	if n := len(p.Locations.Locations); n > 0 {
		extra["locations"] = strconv.Itoa(n)
	}
	if n := len(p.Outcomes.Primary); n > 0 {
		extra["primary_outcomes"] = strconv.Itoa(n)
	}
	if len(extra) > 0 {
		rec.Extra = extra
	}

	if rec.ExternalID != "" {
		rec.Locator = "https://clinicaltrials.gov/study/" + rec.ExternalID
	}
	return validate(rec)
}

// trialClassification prefers the phase list and falls back to the overall
// status when a study reports no phases (observational studies).
func trialClassification(phases []string, status string) string {
	if clean := trimAll(phases); len(clean) > 0 {
		return strings.Join(clean, "/")
	}
	return strings.TrimSpace(status)
}

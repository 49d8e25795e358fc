package diagfmt

import (
	"encoding/json"
	"io"

	"oplint/internal/diag"
	"oplint/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID                   string          `json:"id"`
	ShortDescription     sarifMessage    `json:"shortDescription"`
	FullDescription      *sarifMessage   `json:"fullDescription,omitempty"`
	DefaultConfiguration sarifRuleConfig `json:"defaultConfiguration"`
	Properties           map[string]any  `json:"properties,omitempty"`
}

type sarifRuleConfig struct {
	Level   string `json:"level"`
	Enabled bool   `json:"enabled"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
	Message          *sarifMessage         `json:"message,omitempty"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn"`
	EndLine     uint32 `json:"endLine"`
	EndColumn   uint32 `json:"endColumn"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func makeSarifLocation(span source.Span, fs *source.FileSet, msg string) sarifLocation {
	start, end := fs.Resolve(span)
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{URI: formatPath(fs, span.File, PathModeAuto)},
			Region: sarifRegion{
				StartLine:   start.Line,
				StartColumn: start.Col,
				EndLine:     end.Line,
				EndColumn:   end.Col,
			},
		},
	}
	if msg != "" {
		loc.Message = &sarifMessage{Text: msg}
	}
	return loc
}

// Sarif serializes diagnostics as a SARIF 2.1.0 log with one run. The
// descriptors populate the driver's rule metadata; results reference
// them by index.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, descriptors []*diag.Descriptor, meta SarifMeta) error {
	rules := make([]sarifRule, 0, len(descriptors))
	ruleIndex := make(map[diag.RuleID]int, len(descriptors))
	for i, desc := range descriptors {
		ruleIndex[desc.ID] = i
		rule := sarifRule{
			ID:               string(desc.ID),
			ShortDescription: sarifMessage{Text: desc.Title},
			DefaultConfiguration: sarifRuleConfig{
				Level:   sarifLevel(desc.DefaultSeverity),
				Enabled: desc.EnabledByDefault,
			},
		}
		if desc.Description != "" {
			rule.FullDescription = &sarifMessage{Text: desc.Description}
		}
		props := map[string]any{}
		if desc.Category != "" {
			props["category"] = desc.Category
		}
		if len(desc.Tags) > 0 {
			props["tags"] = desc.Tags
		}
		if len(props) > 0 {
			rule.Properties = props
		}
		rules = append(rules, rule)
	}

	results := make([]sarifResult, 0, bag.Len())
	for _, d := range bag.Items() {
		idx, ok := ruleIndex[d.Rule]
		if !ok {
			idx = -1
		}
		result := sarifResult{
			RuleID:    string(d.Rule),
			RuleIndex: idx,
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
			Locations: []sarifLocation{makeSarifLocation(d.Primary, fs, "")},
		}
		for _, note := range d.Notes {
			result.RelatedLocations = append(result.RelatedLocations, makeSarifLocation(note.Span, fs, note.Msg))
		}
		results = append(results, result)
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:    meta.ToolName,
				Version: meta.ToolVersion,
				Rules:   rules,
			}},
			Results: results,
		}},
	}
	if len(meta.InvocationArgs) > 0 {
		log.Runs[0].Invocations = []sarifInvocation{{
			Arguments:           meta.InvocationArgs,
			ExecutionSuccessful: true,
		}}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(log)
}

package sarif

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Result struct {
	RuleID              string            `json:"ruleId"`
	Message             Message           `json:"message"`
	Level               string            `json:"level"` // error, warning, note
	Locations           []Location        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
}

// Export recebe os findings canônicos e gera um arquivo .sarif 2.1.0.
// Cada finding agrupado vira um result com todas as suas locations.
func Export(findings []model.Finding, outDir, fileBase, toolName, toolVersion string) (string, error) {
	results := make([]Result, 0, len(findings))
	for _, f := range findings {
		level := sevToLevel(f.Severity)

		locations := make([]Location, 0, len(f.Locations))
		for _, l := range f.Locations {
			fileURI := toURI(l.Path)
			if strings.TrimSpace(fileURI) == "" {
				fileURI = "UNKNOWN"
			}
			start := l.StartLine
			if start <= 0 {
				start = 1
			}
			locations = append(locations, Location{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{URI: fileURI},
					Region: Region{
						StartLine:   start,
						StartColumn: l.StartColumn,
						EndLine:     l.EndLine,
					},
				},
			})
		}

		results = append(results, Result{
			RuleID:    f.RuleID,
			Level:     level,
			Message:   Message{Text: strings.TrimSpace(f.Message)},
			Locations: locations,
			PartialFingerprints: map[string]string{
				"vibecop/v1": f.Fingerprint,
			},
		})
	}

	log := Log{
		Version: "2.1.0",
		// schema RTM reconhecido por GitHub/VSCode
		Schema: "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json",
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    toolName,
						Version: toolVersion,
					},
				},
				Results: results,
			},
		},
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("criar dir sarif: %w", err)
	}
	outPath := filepath.Join(outDir, fileBase+".sarif")

	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal sarif: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("escrever sarif: %w", err)
	}
	return outPath, nil
}

// SortFindings ordena por path/linha/regra para saída determinística.
func SortFindings(fs []model.Finding) {
	sort.Slice(fs, func(i, j int) bool {
		pi, pj := fs[i].Primary(), fs[j].Primary()
		if pi.Path == pj.Path {
			if pi.StartLine == pj.StartLine {
				return fs[i].RuleID < fs[j].RuleID
			}
			return pi.StartLine < pj.StartLine
		}
		return pi.Path < pj.Path
	})
}

func sevToLevel(s model.Severity) string {
	switch s {
	case model.SevCritical, model.SevHigh:
		return "error"
	case model.SevMedium:
		return "warning"
	default:
		return "note"
	}
}

func toURI(p string) string {
	p = strings.TrimSpace(p)
	p = filepath.ToSlash(p)
	for strings.HasPrefix(p, "../") {
		p = strings.TrimPrefix(p, "../")
	}
	return strings.TrimPrefix(p, "./")
}

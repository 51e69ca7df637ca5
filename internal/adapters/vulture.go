package adapters

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/actions-marketplace-validations/WolffM-vibecop-sub001/internal/model"
)

// vulture só emite texto plano, uma ocorrência por linha:
//
//	src/app.py:42: unused function 'helper' (60% confidence)
var vultureLineRe = regexp.MustCompile(`^(.+?):(\d+): unused (\w+) '([^']+)' \((\d+)% confidence\)$`)

func ParseVultureBytes(b []byte) ([]model.Finding, error) {
	var out []model.Finding

	sc := bufio.NewScanner(bytes.NewReader(b))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		m := vultureLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lineNo, _ := strconv.Atoi(m[2])
		pct, _ := strconv.Atoi(m[5])
		kind := m[3] // function | class | variable | import | ...

		out = append(out, model.Finding{
			Tool:       "vulture",
			RuleID:     "unused-" + kind,
			Confidence: vultureConfidence(pct),
			Title:      fmt.Sprintf("unused %s '%s'", kind, m[4]),
			Message:    fmt.Sprintf("%s '%s' aparenta não ser usado (%d%% de confiança)", kind, m[4], pct),
			Symbol:     m[4],
			Locations: []model.Location{{
				Path:      toSlash(m[1]),
				StartLine: safeLine(lineNo),
			}},
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func vultureConfidence(pct int) model.Confidence {
	switch {
	case pct >= 90:
		return model.ConfHigh
	case pct >= 60:
		return model.ConfMedium
	default:
		return model.ConfLow
	}
}

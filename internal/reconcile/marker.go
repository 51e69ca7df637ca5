package reconcile

import (
	"fmt"
	"regexp"
	"strconv"
)

// O fingerprint e os metadados de run ficam embutidos no corpo da issue num
// comentário HTML recuperável: escrever e ler de volta devolve exatamente o
// mesmo fingerprint e run.
var markerRe = regexp.MustCompile(`<!-- vibecop fingerprint=(\S+) run=(\d+) misses=(\d+) -->`)

// Marker renderiza o marcador embutido no corpo do registro.
func Marker(fingerprint string, run, misses int) string {
	return fmt.Sprintf("<!-- vibecop fingerprint=%s run=%d misses=%d -->", fingerprint, run, misses)
}

// ParseMarker extrai fingerprint, run e misses de um corpo de issue.
// ok=false quando o corpo não carrega marcador (issue não gerenciada).
func ParseMarker(body string) (fingerprint string, run, misses int, ok bool) {
	m := markerRe.FindStringSubmatch(body)
	if m == nil {
		return "", 0, 0, false
	}
	run, _ = strconv.Atoi(m[2])
	misses, _ = strconv.Atoi(m[3])
	return m[1], run, misses, true
}

// ReplaceMarker troca o marcador existente no corpo pelo novo. Se o corpo
// não tem marcador, o novo é anexado ao final.
func ReplaceMarker(body, fingerprint string, run, misses int) string {
	marker := Marker(fingerprint, run, misses)
	if markerRe.MatchString(body) {
		return markerRe.ReplaceAllString(body, marker)
	}
	return body + "\n\n" + marker
}

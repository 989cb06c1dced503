package normalize

import (
	"encoding/json"
	"reflect"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return v
}

func TestLegacyCasingResolvesCanonicalKey(t *testing.T) {
	record := Map(decode(t, `{"IdChamado": 7, "Titulo": "Impressora parada"}`))

	if got := record["id_chamado"]; got != float64(7) {
		t.Fatalf("id_chamado = %v, want 7", got)
	}
	if got := record["titulo"]; got != "Impressora parada" {
		t.Fatalf("titulo = %v", got)
	}
}

func TestCanonicalKeyWinsOverAliases(t *testing.T) {
	record := Map(decode(t, `{"id_chamado": 3, "IdChamado": 99, "id": 42}`))

	if got := record["id_chamado"]; got != float64(3) {
		t.Fatalf("canonical key was overwritten: id_chamado = %v", got)
	}
}

func TestAliasPrecedenceOrder(t *testing.T) {
	// The case-folded ticket id precedes the generic "id" key.
	record := Map(decode(t, `{"idChamado": 7, "id": 42}`))
	if got := record["id_chamado"]; got != float64(7) {
		t.Fatalf("id_chamado = %v, want 7 (idChamado before id)", got)
	}

	record = Map(decode(t, `{"id": 42}`))
	if got := record["id_chamado"]; got != float64(42) {
		t.Fatalf("id_chamado = %v, want 42", got)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	payload := `[{"IdChamado": 1, "Titulo": "a", "Anexos": [{"NomeArquivo": "x.png", "Url": "http://e/x"}]},
	             {"idUsuario": "u2", "DataAbertura": "2025-03-01"}]`

	once := Normalize(decode(t, payload))
	twice := Normalize(decode(t, payload))
	twice = Normalize(twice)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("normalization is not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestAttachmentsDropEntriesWithoutContent(t *testing.T) {
	record := Map(decode(t, `{
		"ChamadoAnexos": [
			{"Nome": "laudo.pdf", "Url": "http://files/laudo.pdf"},
			{"nome": "so-nome.txt"},
			{"dados": "QUJD"}
		]
	}`))

	list, ok := record["anexos"].([]any)
	if !ok {
		t.Fatalf("anexos missing or wrong type: %T", record["anexos"])
	}
	if len(list) != 2 {
		t.Fatalf("want 2 usable attachments, got %d", len(list))
	}

	first := list[0].(map[string]any)
	if first["nome"] != "laudo.pdf" || first["url"] != "http://files/laudo.pdf" {
		t.Fatalf("first attachment wrong: %#v", first)
	}

	second := list[1].(map[string]any)
	if second["nome"] != DefaultAttachmentName {
		t.Fatalf("default name = %v, want %q", second["nome"], DefaultAttachmentName)
	}
	if second["dados"] != "QUJD" {
		t.Fatalf("second attachment data: %v", second["dados"])
	}
}

func TestAttachmentContainerAbsentLeavesRecordUntouched(t *testing.T) {
	record := Map(decode(t, `{"NomeCompleto": "Ana"}`))
	if _, present := record["anexos"]; present {
		t.Fatalf("anexos must not appear without a source container")
	}
	if record["nomecompleto"] != "Ana" {
		t.Fatalf("nomecompleto = %v", record["nomecompleto"])
	}
}

func TestNormalizeAppliesToNestedLists(t *testing.T) {
	payload := Normalize(decode(t, `[{"IdInteracao": 5, "Comentario": "ok", "DataHora": "2025-01-02T10:00:00"}]`))

	list := payload.([]any)
	record := list[0].(map[string]any)
	if record["id_interacao"] != float64(5) || record["comentario"] != "ok" {
		t.Fatalf("comment not normalized: %#v", record)
	}
}

func TestScalarsPassThrough(t *testing.T) {
	if got := Normalize("texto"); got != "texto" {
		t.Fatalf("scalar changed: %v", got)
	}
	if got := Map("texto"); got != nil {
		t.Fatalf("Map of a scalar should be nil, got %#v", got)
	}
}

// Package normalize maps the helpdesk API's inconsistently cased and
// aliased JSON keys onto one canonical lower-snake field set before any
// other code touches the data.
//
// The remote service returns the same field under several spellings
// depending on the endpoint and payload age (idChamado, IdChamado,
// id...). Instead of per-field fallback chains at every call site, a
// single alias table drives one generic routine. Normalization is
// idempotent: canonical keys are checked first and left untouched.
package normalize

import "strings"

// candidate is one acceptable source spelling for a canonical field.
// Exact candidates match the key as-is; folded candidates match after
// lowercasing every key in the record.
type candidate struct {
	key    string
	folded bool
}

func exact(key string) candidate  { return candidate{key: key} }
func folded(key string) candidate { return candidate{key: key, folded: true} }

// fieldAlias binds a canonical key to its ordered source candidates.
// The first present, non-nil candidate wins. When defaultEmpty is set
// and no candidate is found, the canonical key is written as "".
type fieldAlias struct {
	canonical    string
	candidates   []candidate
	defaultEmpty bool
}

// aliasTable covers every canonical field the screens consume. Order
// within a candidate list follows the remote's observed precedence:
// exact legacy casings first, then the case-folded lookup.
var aliasTable = []fieldAlias{
	// Tickets.
	{canonical: "id_chamado", candidates: []candidate{folded("idchamado"), exact("id")}},
	{canonical: "id_usuario", candidates: []candidate{folded("idusuario")}},
	{canonical: "titulo", candidates: []candidate{folded("titulo")}},
	{canonical: "descricao", candidates: []candidate{folded("descricao")}},
	{canonical: "status", candidates: []candidate{folded("status")}},
	{canonical: "prioridade", candidates: []candidate{folded("prioridade")}},
	{canonical: "data_abertura", candidates: []candidate{folded("dataabertura")}},
	{canonical: "data_fechamento", candidates: []candidate{folded("datafechamento")}},
	{canonical: "id_categoria", candidates: []candidate{folded("idcategoria")}},
	{canonical: "resolucaoia_sugerida", candidates: []candidate{
		exact("ResolucaoIA_Sugerida"), exact("resolucaoIA_Sugerida"), folded("resolucaoia_sugerida"),
	}, defaultEmpty: true},

	// Knowledge-base articles.
	{canonical: "id_artigo", candidates: []candidate{folded("idartigo"), exact("IdArtigo"), exact("id")}},
	{canonical: "conteudo", candidates: []candidate{folded("conteudo")}},
	{canonical: "palavraschave", candidates: []candidate{folded("palavraschave")}, defaultEmpty: true},
	{canonical: "datacriacao", candidates: []candidate{folded("datacriacao")}},

	// Comments.
	{canonical: "comentario", candidates: []candidate{exact("Comentario"), folded("comentario")}},
	{canonical: "data_hora", candidates: []candidate{exact("DataHora"), folded("datahora")}},
	{canonical: "id_interacao", candidates: []candidate{exact("IdInteracao"), folded("idinteracao")}},

	// Users.
	{canonical: "nomecompleto", candidates: []candidate{exact("NomeCompleto"), folded("nomecompleto")}},
	{canonical: "id_perfil", candidates: []candidate{exact("IdPerfil"), folded("idperfil")}},
	{canonical: "ativo", candidates: []candidate{exact("Ativo"), folded("ativo")}},
	{canonical: "email", candidates: []candidate{folded("email")}},

	// Reports.
	{canonical: "metricas", candidates: []candidate{exact("Metricas"), folded("metricas")}},
	{canonical: "periodo", candidates: []candidate{exact("Periodo"), folded("periodo")}},
	{canonical: "porCategoria", candidates: []candidate{exact("PorCategoria"), folded("porcategoria")}},
}

// attachmentContainers are the keys under which the remote nests a
// ticket's attachment list, in precedence order.
var attachmentContainers = []candidate{
	exact("ChamadoAnexos"),
	exact("chamadoAnexos"),
	exact("Anexos"),
	exact("anexos"),
	folded("anexos"),
}

// DefaultAttachmentName is used when an attachment entry carries
// content but no name under any known spelling.
const DefaultAttachmentName = "anexo.dat"

// Normalize returns the value with every map, recursively, rewritten
// to the canonical field set. Lists are normalized element-wise.
// Scalars pass through unchanged. Maps are modified in place and
// returned, matching how callers hand over freshly decoded payloads.
func Normalize(value any) any {
	switch typed := value.(type) {
	case []any:
		for i, item := range typed {
			typed[i] = Normalize(item)
		}
		return typed
	case map[string]any:
		return normalizeRecord(typed)
	default:
		return value
	}
}

// Map normalizes value and returns it as a map, or nil when the
// payload is not a keyed record.
func Map(value any) map[string]any {
	m, _ := Normalize(value).(map[string]any)
	return m
}

func normalizeRecord(record map[string]any) map[string]any {
	loweredKeys := make(map[string]any, len(record))
	for key, v := range record {
		loweredKeys[strings.ToLower(key)] = v
	}

	for _, alias := range aliasTable {
		if existing, ok := record[alias.canonical]; ok && existing != nil {
			continue
		}
		found := false
		for _, c := range alias.candidates {
			var v any
			var ok bool
			if c.folded {
				v, ok = loweredKeys[c.key]
			} else {
				v, ok = record[c.key]
			}
			if ok && v != nil {
				record[alias.canonical] = v
				found = true
				break
			}
		}
		if !found && alias.defaultEmpty {
			record[alias.canonical] = ""
		}
	}

	normalizeAttachments(record, loweredKeys)

	// Recurse into nested containers after the key rewrite so children
	// (attachment entries, report sub-maps, comment lists) get the same
	// treatment.
	for key, v := range record {
		switch v.(type) {
		case map[string]any, []any:
			record[key] = Normalize(v)
		}
	}
	return record
}

// normalizeAttachments collects the attachment list from its possible
// container keys and rewrites it as canonical entries. Entries with
// neither a URL nor inline data are unusable and are dropped here, at
// the data-layer boundary, so no rendering code ever sees them.
func normalizeAttachments(record map[string]any, loweredKeys map[string]any) {
	var raw any
	found := false
	for _, c := range attachmentContainers {
		var v any
		var ok bool
		if c.folded {
			v, ok = loweredKeys[c.key]
		} else {
			v, ok = record[c.key]
		}
		if ok && v != nil {
			raw = v
			found = true
			break
		}
	}
	if !found {
		return
	}

	list, ok := raw.([]any)
	if !ok {
		return
	}

	normalized := make([]any, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := firstString(entry, "Nome", "nome", "NomeArquivo")
		if name == "" {
			name = DefaultAttachmentName
		}
		url := firstString(entry, "Url", "url", "UrlArquivo")
		data := firstString(entry, "Dados", "dados", "DadosBase64")
		if url == "" && data == "" {
			continue
		}
		normalized = append(normalized, map[string]any{
			"nome":  name,
			"url":   url,
			"dados": data,
		})
	}
	record["anexos"] = normalized
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

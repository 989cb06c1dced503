package models

import (
	"fmt"
	"strconv"
)

// Constructors from canonical maps. The gateway normalizes every
// payload (see internal/normalize) before these run, so only the
// canonical lower-snake keys are read here. JSON numbers arrive as
// float64; ids occasionally arrive as strings, hence the coercions.

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int:
		return int64(n)
	case int64:
		return n
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func asInt(v any) int {
	return int(asInt64(v))
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case float64:
		return b != 0
	case string:
		return b == "true" || b == "1"
	default:
		return false
	}
}

func mapField(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

// UserFromMap builds a User from a canonical map. Role is left unset:
// the login path resolves it once via RoleFromID.
func UserFromMap(m map[string]any) User {
	user := User{
		ID:        asString(mapField(m, "id")),
		FullName:  asString(mapField(m, "nomecompleto")),
		Email:     asString(mapField(m, "email")),
		ProfileID: asInt(mapField(m, "id_perfil")),
		Active:    asBool(mapField(m, "ativo")),
	}
	if user.ID == "" {
		user.ID = asString(mapField(m, "id_usuario"))
	}
	return user
}

// TicketFromMap builds a Ticket from a canonical map, including the
// already-filtered attachment list.
func TicketFromMap(m map[string]any) Ticket {
	ticket := Ticket{
		ID:                  asInt64(mapField(m, "id_chamado")),
		OwnerID:             asString(mapField(m, "id_usuario")),
		Title:               asString(mapField(m, "titulo")),
		Description:         asString(mapField(m, "descricao")),
		Status:              asString(mapField(m, "status")),
		Priority:            asString(mapField(m, "prioridade")),
		CategoryID:          asInt(mapField(m, "id_categoria")),
		OpenedAt:            asString(mapField(m, "data_abertura")),
		ClosedAt:            asString(mapField(m, "data_fechamento")),
		SuggestedResolution: asString(mapField(m, "resolucaoia_sugerida")),
	}
	if raw, ok := mapField(m, "anexos").([]any); ok {
		for _, entry := range raw {
			attachment, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			ticket.Attachments = append(ticket.Attachments, Attachment{
				Name: asString(mapField(attachment, "nome")),
				URL:  asString(mapField(attachment, "url")),
				Data: asString(mapField(attachment, "dados")),
			})
		}
	}
	return ticket
}

// CommentFromMap builds a Comment from a canonical map.
func CommentFromMap(m map[string]any) Comment {
	return Comment{
		ID:              asInt64(mapField(m, "id_interacao")),
		TicketID:        asInt64(mapField(m, "id_chamado")),
		AuthorID:        asString(mapField(m, "id_usuario")),
		AuthorName:      asString(mapField(m, "nomecompleto")),
		AuthorProfileID: asInt(mapField(m, "id_perfil")),
		Text:            asString(mapField(m, "comentario")),
		CreatedAt:       asString(mapField(m, "data_hora")),
	}
}

// ArticleFromMap builds an Article from a canonical map.
func ArticleFromMap(m map[string]any) Article {
	return Article{
		ID:         asInt64(mapField(m, "id_artigo")),
		Title:      asString(mapField(m, "titulo")),
		Content:    asString(mapField(m, "conteudo")),
		CategoryID: asInt(mapField(m, "id_categoria")),
		Keywords:   asString(mapField(m, "palavraschave")),
		CreatedAt:  asString(mapField(m, "datacriacao")),
	}
}

// ReportFromMap builds a Report from a canonical map.
func ReportFromMap(m map[string]any) Report {
	var report Report
	if period, ok := mapField(m, "periodo").(map[string]any); ok {
		report.Period.Start = asString(firstOf(period, "inicio", "Inicio"))
		report.Period.End = asString(firstOf(period, "fim", "Fim"))
	}
	if metrics, ok := mapField(m, "metricas").(map[string]any); ok {
		report.Metrics.Total = asInt(firstOf(metrics, "totalChamados", "TotalChamados"))
		report.Metrics.Open = asInt(firstOf(metrics, "totalAbertos", "TotalAbertos"))
		report.Metrics.Resolved = asInt(firstOf(metrics, "totalResolvidos", "TotalResolvidos"))
	}
	if rows, ok := mapField(m, "porCategoria").([]any); ok {
		for _, entry := range rows {
			row, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			id := firstOf(row, "categoriaId", "CategoriaId", "id")
			report.ByCategory = append(report.ByCategory, CategoryCount{
				CategoryID: asInt(id),
				Count:      asInt(firstOf(row, "quantidade", "Quantidade")),
			})
		}
	}
	return report
}

// firstOf returns the first present non-nil value among the keys. The
// nested report maps keep the remote's mixed casing because the
// normalizer canonicalizes the outer container keys only.
func firstOf(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

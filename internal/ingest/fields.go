package ingest

import "strings"

// Row is one decoded spreadsheet/CSV line, keyed by the raw header text.
type Row map[string]string

// Field resolves a logical field against header-name drift: aliases are
// tried in order with a case-insensitive match on the trimmed header, and
// the first non-empty value wins. Missing everywhere returns "".
func Field(row Row, aliases ...string) string {
	for _, alias := range aliases {
		for header, value := range row {
			if strings.EqualFold(strings.TrimSpace(header), alias) {
				if v := strings.TrimSpace(value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// Field alias tables per logical field. Vendors rename columns across
// export versions; new spellings go here, not into the call sites.
var (
	AliasesName        = []string{"Pessoa", "PESSOA", "Nome", "NOME", "Nome_Pessoa", "Visitante"}
	AliasesGroup       = []string{"Grupo de pessoas", "GRUPO DE PESSOAS", "Grupo", "GRUPO", "Empresa", "EMPRESA"}
	AliasesEventType   = []string{"Tipo de evento", "TIPO DE EVENTO", "Evento", "EVENTO", "Tipo"}
	AliasesAccessPoint = []string{"Ambiente", "AMBIENTE", "Ponto de acesso", "PONTO DE ACESSO", "Leitor", "Local"}
	AliasesDate        = []string{"Data", "DATA", "Data do evento", "Date"}
	AliasesTime        = []string{"Hora", "HORA", "Horário", "Horario", "Hora do evento"}

	AliasesDeviceID    = []string{"ID", "Id", "Codigo", "Código", "CODIGO"}
	AliasesDeviceName  = []string{"Nome", "NOME", "Nome_Camera", "NOME_CAMERA", "Dispositivo", "Equipamento"}
	AliasesLocation    = []string{"Localização", "Localizacao", "LOCALIZACAO", "Local", "LOCAL", "Endereço"}
	AliasesModule      = []string{"Módulo", "Modulo", "MODULO"}
	AliasesStatus      = []string{"Status", "STATUS", "Situação", "Situacao", "Estado", "Online"}
	AliasesResponsible = []string{"Responsável", "Responsavel", "RESPONSAVEL"}
)

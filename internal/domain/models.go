package domain

// Nomes das abas persistidas no armazenamento externo.
const (
	SheetComissoes      = "Comissoes"
	SheetAproveitamento = "Aproveitamento"
	SheetConsolidado    = "Consolidado"
	SheetConfig         = "Config"
	SheetGlossario      = "Glossario"
)

// Cabeçalhos de cada aba. A ordem é a ordem das colunas gravadas.
var (
	HeaderComissoes      = []string{"Data Processamento", "Nome do Arquivo", "Sigla Técnico", "Horas Vendidas"}
	HeaderAproveitamento = []string{"Data", "Arquivo", "Técnico", "Disp", "TP", "TG"}
	HeaderConsolidado    = []string{"Data", "Técnico", "Horas Vendidas", "Disp", "TP", "TG"}
)

// Colunas lidas da aba Glossario (sigla do técnico -> nome completo). A aba só é lida.
const (
	GlossarioSigla = "Sigla"
	GlossarioNome  = "Nome_Completo"
)

// HeaderExportacao é o cabeçalho dos arquivos baixados: o consolidado com o nome do técnico.
var HeaderExportacao = []string{"Data", "Técnico", "Nome", "Horas Vendidas", "Disp", "TP", "TG"}

// Colunas que formam a chave composta (data, técnico) de cada aba.
var (
	KeyComissoes      = []string{"Data Processamento", "Sigla Técnico"}
	KeyAproveitamento = []string{"Data", "Técnico"}
)

// CommissionRecord é uma linha extraída do relatório de comissões.
// HorasVendidas mantém o texto original (vírgula decimal).
type CommissionRecord struct {
	DataRelatorio string `json:"data_relatorio"`
	Arquivo       string `json:"arquivo"`
	Tecnico       string `json:"tecnico"`
	HorasVendidas string `json:"horas_vendidas"`
}

// Row devolve a linha na ordem de HeaderComissoes.
func (r CommissionRecord) Row() []string {
	return []string{r.DataRelatorio, r.Arquivo, r.Tecnico, r.HorasVendidas}
}

// UtilizationRecord é uma linha diária extraída do relatório de aproveitamento.
type UtilizationRecord struct {
	Data    string `json:"data"`
	Arquivo string `json:"arquivo"`
	Tecnico string `json:"tecnico"`
	Disp    string `json:"disp"`
	TP      string `json:"tp"`
	TG      string `json:"tg"`
}

// Row devolve a linha na ordem de HeaderAproveitamento.
func (r UtilizationRecord) Row() []string {
	return []string{r.Data, r.Arquivo, r.Tecnico, r.Disp, r.TP, r.TG}
}

// ConsolidatedRecord é o resultado do cruzamento das duas fontes por (data, técnico).
// Nome vem do Glossario (ou é a própria sigla) e não é gravado na aba Consolidado.
type ConsolidatedRecord struct {
	Data          string  `json:"data"`
	Tecnico       string  `json:"tecnico"`
	Nome          string  `json:"nome"`
	HorasVendidas float64 `json:"horas_vendidas"`
	Disp          float64 `json:"disp"`
	TP            float64 `json:"tp"`
	TG            float64 `json:"tg"`
}

// ReportKind identifica a família do relatório.
type ReportKind string

const (
	ReportComissao       ReportKind = "comissao"
	ReportAproveitamento ReportKind = "aproveitamento"
)

// StatusCode define o resultado do processamento de um arquivo do lote.
// O frontend usa o número para decidir como exibir a mensagem.
type StatusCode int

const (
	StatusOK          StatusCode = 0 // Registros extraídos.
	StatusSemDados    StatusCode = 1 // Arquivo lido, nenhum registro encontrado.
	StatusErroLeitura StatusCode = 2 // Não foi possível decodificar ou interpretar o arquivo.
)

// FileResult descreve o que aconteceu com um arquivo do lote.
type FileResult struct {
	Arquivo    string     `json:"arquivo"`
	Registros  int        `json:"registros"`
	StatusCode StatusCode `json:"status_code"`
	Mensagem   string     `json:"mensagem"`
}

// BatchResult é o retorno de um envio de arquivos.
type BatchResult struct {
	LoteID      string       `json:"lote_id"`
	Tipo        ReportKind   `json:"tipo"`
	Arquivos    []FileResult `json:"arquivos"`
	Registros   int          `json:"registros"`
	TotalNaAba  int          `json:"total_na_aba"`
	Consolidado bool         `json:"consolidado"`
	Aviso       string       `json:"aviso,omitempty"`
}

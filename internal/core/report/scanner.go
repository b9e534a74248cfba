package report

// Estado do leitor: ou não há técnico ativo, ou há um técnico com código conhecido.
// Registros só são montados a partir de technicianActive, então não existe caminho
// que emita linha sem técnico.
type scanState interface {
	scanState()
}

type noTechnician struct{}

type technicianActive struct {
	code string
}

func (noTechnician) scanState()     {}
func (technicianActive) scanState() {}

// Gatilhos de transição produzidos pela classificação de cada linha.
type trigger int

const (
	triggerNone          trigger = iota // linha comum, candidata a dado
	triggerSectionHeader                // marcador que abre o bloco de um técnico
	triggerBoundaryReset                // fim do bloco do técnico
	triggerTerminal                     // totais de filial/empresa: para a leitura
)

// outcome é o resultado da extração do código após um marcador.
type outcome int

const (
	noMatch outcome = iota
	matched
	malformed
)

type extraction struct {
	outcome outcome
	value   string
}

// rowEvent é a classificação de uma linha.
type rowEvent struct {
	trigger trigger
	header  extraction
	marker  string
}

// machine guarda o técnico corrente durante a leitura de um documento.
type machine struct {
	state scanState
}

func newMachine() *machine {
	return &machine{state: noTechnician{}}
}

// apply aplica o evento e informa se a leitura deve parar.
// Cabeçalho malformado não altera o estado.
func (m *machine) apply(ev rowEvent) (stop bool) {
	switch ev.trigger {
	case triggerTerminal:
		m.state = noTechnician{}
		return true
	case triggerSectionHeader:
		if ev.header.outcome == matched {
			m.state = technicianActive{code: ev.header.value}
		}
	case triggerBoundaryReset:
		m.state = noTechnician{}
	}
	return false
}

func (m *machine) active() (technicianActive, bool) {
	t, ok := m.state.(technicianActive)
	return t, ok
}

package grid

// DangerLevel grades how close the stack is to topping out.
type DangerLevel int

const (
	DangerNone DangerLevel = iota
	DangerWarning
	DangerCritical
)

func (l DangerLevel) String() string {
	switch l {
	case DangerNone:
		return "none"
	case DangerWarning:
		return "warning"
	case DangerCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// DangerState is the full danger picture for one frame: which columns have
// tiles inside the danger zone, the overall level, and a 0..1 intensity for
// presentation effects (flash rate, panic music, AI panic).
type DangerState struct {
	Columns   []bool
	Level     DangerLevel
	Intensity float64
}

// DangerManager watches the top rows of the board and reports transitions
// to its sink. Column flags and the overall level are edge-triggered so the
// presentation layer only hears about changes.
type DangerManager struct {
	board *Board
	rows  int
	sink  DangerSink
	state DangerState

	// graceActive, when wired, marks the critical level; without it the
	// manager falls back to checking the top row directly.
	graceActive func() bool
}

func NewDangerManager(b *Board, dangerRows int) *DangerManager {
	if dangerRows < 1 {
		dangerRows = 1
	}
	return &DangerManager{
		board: b,
		rows:  dangerRows,
		sink:  NopDangerSink{},
		state: DangerState{Columns: make([]bool, b.Width())},
	}
}

// SetGraceProvider ties the critical level to the riser's grace period.
func (d *DangerManager) SetGraceProvider(f func() bool) {
	d.graceActive = f
}

func (d *DangerManager) SetSink(sink DangerSink) {
	if sink == nil {
		sink = NopDangerSink{}
	}
	d.sink = sink
}

// State returns the result of the last Update. The Columns slice is shared;
// callers must not mutate it.
func (d *DangerManager) State() DangerState { return d.state }

// Update recomputes danger from the current board and fires the sink for
// every column or level transition since the previous frame.
func (d *DangerManager) Update() {
	w := d.board.Width()
	level := DangerNone
	intensity := 0.0

	for x := 0; x < w; x++ {
		top := d.board.TopOccupiedRow(x)
		inZone := top < d.rows
		if inZone != d.state.Columns[x] {
			d.state.Columns[x] = inZone
			d.sink.OnColumnDanger(x, inZone)
		}
		if !inZone {
			continue
		}
		level = DangerWarning
		colIntensity := float64(d.rows-top) / float64(d.rows)
		if colIntensity > intensity {
			intensity = colIntensity
		}
	}
	critical := d.board.TopRowOccupied()
	if d.graceActive != nil {
		critical = d.graceActive()
	}
	if critical {
		level = DangerCritical
		intensity = 1.0
	}

	if level != d.state.Level {
		d.state.Level = level
		d.sink.OnDangerLevel(level)
	}
	d.state.Intensity = intensity
}

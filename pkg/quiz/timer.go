package quiz

import "time"

// TimerState estado del contador de una pregunta
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerExpired
)

func (s TimerState) String() string {
	switch s {
	case TimerRunning:
		return "running"
	case TimerExpired:
		return "expired"
	default:
		return "idle"
	}
}

// Scheduler programa una función a futuro. La función devuelta la cancela
// y reporta si todavía estaba pendiente.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (cancel func() bool)
}

// RealScheduler usa time.AfterFunc
type RealScheduler struct{}

// AfterFunc implementa Scheduler
func (RealScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	t := time.AfterFunc(d, f)
	return t.Stop
}

// Timer cuenta regresiva de una pregunta con un único tick pendiente a la vez.
// No es seguro para uso concurrente: el Scheduler debe serializar los ticks
// con el resto de las operaciones.
type Timer struct {
	sched    Scheduler
	interval time.Duration
	limit    int

	state     TimerState
	remaining int
	gen       uint64
	cancel    func() bool

	onTick   func(remaining int)
	onExpire func()
}

// NewTimer crea un contador de limit segundos
func NewTimer(sched Scheduler, limit int, onTick func(remaining int), onExpire func()) *Timer {
	return &Timer{
		sched:     sched,
		interval:  time.Second,
		limit:     limit,
		remaining: limit,
		onTick:    onTick,
		onExpire:  onExpire,
	}
}

// State estado actual
func (t *Timer) State() TimerState { return t.state }

// Remaining segundos restantes
func (t *Timer) Remaining() int { return t.remaining }

// Start reinicia el contador. Si había uno corriendo, lo cancela primero.
func (t *Timer) Start() {
	t.Stop()
	t.remaining = t.limit
	t.state = TimerRunning
	t.schedule()
}

// Stop cancela el tick pendiente. Un contador vencido queda vencido
// hasta el próximo Start.
func (t *Timer) Stop() {
	t.gen++
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if t.state == TimerRunning {
		t.state = TimerIdle
	}
}

func (t *Timer) schedule() {
	gen := t.gen
	t.cancel = t.sched.AfterFunc(t.interval, func() { t.tick(gen) })
}

func (t *Timer) tick(gen uint64) {
	// tick de un contador ya detenido o reiniciado
	if gen != t.gen || t.state != TimerRunning {
		return
	}
	t.cancel = nil
	t.remaining--
	if t.onTick != nil {
		t.onTick(t.remaining)
		if gen != t.gen {
			return
		}
	}
	if t.remaining <= 0 {
		t.remaining = 0
		t.state = TimerExpired
		if t.onExpire != nil {
			t.onExpire()
		}
		return
	}
	t.schedule()
}

package quiz

import "time"

type fakeTask struct {
	d        time.Duration
	f        func()
	canceled bool
	fired    bool
}

// fakeScheduler guarda las funciones programadas para dispararlas a mano
type fakeScheduler struct {
	tasks []*fakeTask
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	task := &fakeTask{d: d, f: f}
	s.tasks = append(s.tasks, task)
	return func() bool {
		if task.canceled || task.fired {
			return false
		}
		task.canceled = true
		return true
	}
}

func (s *fakeScheduler) pending() []*fakeTask {
	var out []*fakeTask
	for _, t := range s.tasks {
		if !t.canceled && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fireNext dispara la tarea pendiente más antigua
func (s *fakeScheduler) fireNext() bool {
	p := s.pending()
	if len(p) == 0 {
		return false
	}
	p[0].fired = true
	p[0].f()
	return true
}

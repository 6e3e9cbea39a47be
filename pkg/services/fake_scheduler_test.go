package services

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

func (s *fakeScheduler) pending(d time.Duration) []*fakeTask {
	var out []*fakeTask
	for _, t := range s.tasks {
		if !t.canceled && !t.fired && t.d == d {
			out = append(out, t)
		}
	}
	return out
}

// fire dispara la tarea pendiente más antigua con esa demora
func (s *fakeScheduler) fire(d time.Duration) bool {
	p := s.pending(d)
	if len(p) == 0 {
		return false
	}
	p[0].fired = true
	p[0].f()
	return true
}

package engine

import (
	"container/heap"
	"time"

	"github.com/sirupsen/logrus"

	"skirmish-server/internal/battle"
	"skirmish-server/pkg/logger"
)

// Scheduler - очередь отложенных команд на виртуальных часах.
// Ядро боя не знает о времени: оно только просит "выполни это через Delay".
// Тесты и симулятор двигают часы сами, живой сервис - по реальному таймеру.
type Scheduler struct {
	queue  TaskQueue
	now    time.Duration
	nextID uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{queue: make(TaskQueue, 0)}
}

// Schedule ставит команду на now+delay и возвращает ID задачи.
func (s *Scheduler) Schedule(delay time.Duration, kind battle.EffectKind, cmd battle.Command) uint64 {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	task := &Task{ID: s.nextID, Due: s.now + delay, Kind: kind, Command: cmd}
	item := &TaskItem{Value: task, Priority: task.Due, Seq: task.ID}

	heap.Push(&s.queue, item)

	logger.Log.WithFields(logrus.Fields{
		"component": "scheduler",
		"task_id":   task.ID,
		"kind":      kind.String(),
		"due":       task.Due,
	}).Debug("Task scheduled")
	return task.ID
}

// Next возвращает ближайшую задачу, не снимая ее.
func (s *Scheduler) Next() *Task {
	if s.queue.Len() == 0 {
		return nil
	}
	return s.queue[0].Value
}

// UntilNext - сколько виртуального времени до ближайшей задачи.
func (s *Scheduler) UntilNext() (time.Duration, bool) {
	next := s.Next()
	if next == nil {
		return 0, false
	}
	if next.Due <= s.now {
		return 0, true
	}
	return next.Due - s.now, true
}

// Advance сдвигает часы на d и снимает все задачи, срок которых наступил, по порядку.
func (s *Scheduler) Advance(d time.Duration) []Task {
	if d > 0 {
		s.now += d
	}
	var due []Task
	for s.queue.Len() > 0 && s.queue[0].Priority <= s.now {
		due = append(due, s.pop())
	}
	return due
}

// PopNext переводит часы на ближайшую задачу и снимает ее.
func (s *Scheduler) PopNext() (Task, bool) {
	if s.queue.Len() == 0 {
		return Task{}, false
	}
	if due := s.queue[0].Priority; due > s.now {
		s.now = due
	}
	return s.pop(), true
}

// Drain снимает все задачи в порядке срабатывания, часы встают на последнюю.
func (s *Scheduler) Drain() []Task {
	var out []Task
	for {
		task, ok := s.PopNext()
		if !ok {
			return out
		}
		out = append(out, task)
	}
}

// Clear снимает все задачи. Часы не трогаются.
func (s *Scheduler) Clear() {
	s.queue = make(TaskQueue, 0)
}

func (s *Scheduler) Now() time.Duration { return s.now }

func (s *Scheduler) Len() int {
	return s.queue.Len()
}

func (s *Scheduler) pop() Task {
	item := heap.Pop(&s.queue).(*TaskItem)
	return *item.Value
}

// DebugDump возвращает снимок очереди для отладки
func (s *Scheduler) DebugDump() []map[string]interface{} {
	// Пустой слайс, а не nil: в JSON будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	for _, item := range s.queue {
		result = append(result, map[string]interface{}{
			"id":      item.Value.ID,
			"kind":    item.Value.Kind.String(),
			"command": item.Value.Command.Type.String(),
			"due_ms":  item.Priority.Milliseconds(),
			"index":   item.Index,
		})
	}
	return result
}

package engine

import (
	"time"

	"skirmish-server/internal/battle"
)

// Task - отложенная команда боя (ход противника, новый раунд).
type Task struct {
	ID      uint64
	Due     time.Duration // момент срабатывания на виртуальных часах
	Kind    battle.EffectKind
	Command battle.Command
}

// TaskItem обертка для элемента очереди приоритетов
type TaskItem struct {
	Value    *Task
	Priority time.Duration // Due. Чем меньше, тем раньше.
	Seq      uint64        // порядок постановки, при равном Due - FIFO
	Index    int           // Индекс в куче
}

// TaskQueue реализует heap.Interface и хранит TaskItems
type TaskQueue []*TaskItem

func (pq TaskQueue) Len() int { return len(pq) }

func (pq TaskQueue) Less(i, j int) bool {
	if pq[i].Priority != pq[j].Priority {
		return pq[i].Priority < pq[j].Priority
	}
	return pq[i].Seq < pq[j].Seq
}

func (pq TaskQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *TaskQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*TaskItem)
	item.Index = n
	*pq = append(*pq, item)
}

func (pq *TaskQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*pq = old[0 : n-1]
	return item
}

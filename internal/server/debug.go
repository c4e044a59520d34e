package server

import (
	"encoding/json"
	"net/http"

	"skirmish-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/session", h.handleSession)
	mux.HandleFunc("/debug/schedule", h.handleSchedule)
	mux.HandleFunc("/debug/replay", h.handleReplay)
}

// /debug/session - полный снимок боя и армии (как его видит клиент)
func (h *DebugHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Snapshot())
}

// /debug/schedule - очередь отложенных команд (ходы противника, новый раунд).
// Куча: порядок в слайсе не обязан совпадать с порядком срабатывания.
func (h *DebugHandler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.ScheduleDump())
}

// /debug/replay - записанные команды текущего боя
func (h *DebugHandler) handleReplay(w http.ResponseWriter, r *http.Request) {
	rs := h.Service.Replay()
	if rs == nil {
		http.Error(w, "No battle in progress", http.StatusNotFound)
		return
	}
	writeJSON(w, rs)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}

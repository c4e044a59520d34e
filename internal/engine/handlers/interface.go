package handlers

import (
	"encoding/json"
	"errors"

	"skirmish-server/internal/battle"
	"skirmish-server/internal/domain"
)

// ErrNoBattle - боевая команда пришла, когда бой не запущен.
var ErrNoBattle = errors.New("no battle in progress")

// Lifecycle - операции сервиса, которые хендлер может запросить.
// Service неявно реализует этот интерфейс.
type Lifecycle interface {
	RestartBattle()
	SaveArmy() error
}

// Context передает хендлеру состояние боя и армии.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Session   *battle.Session // nil, пока бой не начат
	Army      *domain.Army
	Party     *domain.Party
	Lifecycle Lifecycle
}

// Applied - команда, переданная машине состояний боя, и ее итог.
type Applied struct {
	Command battle.Command
	Result  battle.Result
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string   // Текст лога
	MsgType string   // Тип лога (INFO, COMBAT, SYSTEM, ERROR)
	Battle  *Applied // Заполнен для боевых команд
}

// HandlerFunc - это контракт для любой команды (SELECT_TILE, PASS, ADD_XP...).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// ApplyBattle прогоняет команду через сессию боя.
func ApplyBattle(ctx Context, cmd battle.Command) (Result, error) {
	if ctx.Session == nil {
		return Result{}, ErrNoBattle
	}
	res := ctx.Session.Apply(cmd)
	return Result{Battle: &Applied{Command: cmd, Result: res}}, nil
}

package service

import (
	"fmt"
	"time"

	"boardTracker/internal/models/task"
)

// Окно выборки свипа: двое суток назад ловим пропущенные дедлайны
// (например после простоя), вперёд смотрим только на шаг опроса.
const ReminderLookback = 48 * time.Hour
const ReminderLookahead = 6 * time.Minute

// ClassifyDueTask решает, наступило ли условие напоминания задачи,
// и если да — возвращает текст уведомления.
func ClassifyDueTask(t *task.Task, now time.Time) (string, bool) {
	if t.EndDate == nil {
		return "", false
	}

	switch t.Reminder.Kind {
	case task.ReminderDueDate:
		if sameCalendarDay(now, *t.EndDate) {
			return fmt.Sprintf("La tarea %s, finaliza el día de hoy a las %s",
				t.Title, t.CreatedAt.Format("3:04 PM")), true
		}

	case task.ReminderLead:
		switch t.Reminder.Unit {
		case task.UnitMinutes:
			// разница в целых минутах, без округления вверх; может уйти в минус
			diff := int(t.EndDate.Sub(now).Minutes())
			if diff <= t.Reminder.Amount {
				return fmt.Sprintf("La tarea %s, finaliza en %d minutos", t.Title, diff), true
			}

		case task.UnitHours:
			diff := int(t.EndDate.Sub(now).Hours())
			if diff <= t.Reminder.Amount {
				word := "horas"
				if t.Reminder.Amount == 1 {
					word = "hora"
				}
				return fmt.Sprintf("La tarea %s, finaliza en %d %s", t.Title, diff, word), true
			}

		case task.UnitDays:
			diff := int(t.EndDate.Sub(now).Hours() / 24)
			if diff <= t.Reminder.Amount {
				word := "días"
				if t.Reminder.Amount == 1 {
					word = "día"
				}
				// в дневном сообщении фигурирует настроенный лид, а не остаток
				return fmt.Sprintf("La tarea %s finaliza en %d %s", t.Title, t.Reminder.Amount, word), true
			}
		}
	}

	return "", false
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

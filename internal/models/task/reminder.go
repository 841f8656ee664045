package task

import (
	"encoding/json"
	"fmt"
)

// Напоминание хранится в БД строкой из закрытого словаря
// (NONE, DUE_DATE, MINS_5 ... DAYS_2), но внутри кода живёт как
// размеченный вариант: разбор строки происходит один раз на границе данных.

type ReminderKind int

const (
	ReminderNone ReminderKind = iota
	ReminderDueDate
	ReminderLead
)

type LeadUnit int

const (
	UnitMinutes LeadUnit = iota
	UnitHours
	UnitDays
)

type Reminder struct {
	Kind   ReminderKind
	Unit   LeadUnit
	Amount int
}

var reminderCodes = map[string]Reminder{
	"NONE":     {Kind: ReminderNone},
	"DUE_DATE": {Kind: ReminderDueDate},
	"MINS_5":   {Kind: ReminderLead, Unit: UnitMinutes, Amount: 5},
	"MINS_10":  {Kind: ReminderLead, Unit: UnitMinutes, Amount: 10},
	"MINS_15":  {Kind: ReminderLead, Unit: UnitMinutes, Amount: 15},
	"MINS_30":  {Kind: ReminderLead, Unit: UnitMinutes, Amount: 30},
	"HOUR_1":   {Kind: ReminderLead, Unit: UnitHours, Amount: 1},
	"HOURS_2":  {Kind: ReminderLead, Unit: UnitHours, Amount: 2},
	"DAY_1":    {Kind: ReminderLead, Unit: UnitDays, Amount: 1},
	"DAYS_2":   {Kind: ReminderLead, Unit: UnitDays, Amount: 2},
}

func ParseReminder(code string) (Reminder, error) {
	r, ok := reminderCodes[code]
	if !ok {
		return Reminder{}, fmt.Errorf("неизвестное значение напоминания: %q", code)
	}
	return r, nil
}

func (r Reminder) String() string {
	switch r.Kind {
	case ReminderDueDate:
		return "DUE_DATE"
	case ReminderLead:
		switch r.Unit {
		case UnitMinutes:
			return fmt.Sprintf("MINS_%d", r.Amount)
		case UnitHours:
			if r.Amount == 1 {
				return "HOUR_1"
			}
			return fmt.Sprintf("HOURS_%d", r.Amount)
		case UnitDays:
			if r.Amount == 1 {
				return "DAY_1"
			}
			return fmt.Sprintf("DAYS_%d", r.Amount)
		}
	}
	return "NONE"
}

func (r Reminder) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Reminder) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}

	parsed, err := ParseReminder(code)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

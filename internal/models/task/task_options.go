package task

import (
	"time"
)

type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	if title == "" {
		return nil
	}
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description *string) TaskOption {
	if description == nil {
		return nil
	}
	return func(task *Task) {
		task.Description = *description
	}
}

func WithStatus(status Status) TaskOption {
	if !ValidStatus(status) {
		return nil
	}
	return func(task *Task) {
		task.Status = status
	}
}

func WithStartDate(startDate *time.Time) TaskOption {
	if startDate == nil {
		return nil
	}
	return func(task *Task) {
		task.StartDate = startDate
	}
}

func WithEndDate(endDate *time.Time) TaskOption {
	if endDate == nil {
		return nil
	}
	return func(task *Task) {
		task.EndDate = endDate
	}
}

func WithReminder(reminder *Reminder) TaskOption {
	if reminder == nil {
		return nil
	}
	return func(task *Task) {
		task.Reminder = *reminder
	}
}

func WithIsActive(isActive *bool) TaskOption {
	if isActive == nil {
		return nil
	}
	return func(task *Task) {
		task.IsActive = *isActive
	}
}

package service

import "fmt"

// здесь происходит проверка ошибок бизнес-логики

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func NewNotFound(resource, id string) *BusinessError {
	return &BusinessError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %s не найден(а)", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewUnauthorized(message string) *BusinessError {
	return &BusinessError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Details: map[string]any{},
	}
}

func NewAlreadyExists(resource, name string) *BusinessError {
	return &BusinessError{
		Code:    "ALREADY_EXISTS",
		Message: fmt.Sprintf("%s %s уже существует", resource, name),
		Details: map[string]any{
			"resource": resource,
			"name":     name,
		},
	}
}

func NewInternal(err error) *BusinessError {
	return &BusinessError{
		Code:    "INTERNAL",
		Message: "Внутренняя ошибка",
		Details: map[string]any{},
		Err:     err,
	}
}

// Package validation проверяет пользовательский ввод, общий для клиента и сервера
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxTextLen максимальная длина текста цитаты в символах
	MaxTextLen = 2000
	// MaxCategoryLen максимальная длина категории в символах
	MaxCategoryLen = 64
)

// SubjectPattern определяет допустимый формат subject токена (имя клиента)
// Латинские буквы, цифры, '_', '-', '.'; длина 1-64 символа
var SubjectPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,64}$`)

// ErrInvalidInput is wrapped by every validation error
var ErrInvalidInput = errors.New("invalid input")

// ValidateText проверяет текст цитаты
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text cannot be empty", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLen {
		return fmt.Errorf("%w: text must not exceed %d characters, got %d", ErrInvalidInput, MaxTextLen, n)
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("%w: text is not valid UTF-8", ErrInvalidInput)
	}
	return nil
}

// ValidateCategory проверяет категорию. Пустая категория допустима:
// ее заменяет категория по умолчанию.
func ValidateCategory(category string) error {
	if n := utf8.RuneCountInString(category); n > MaxCategoryLen {
		return fmt.Errorf("%w: category must not exceed %d characters, got %d", ErrInvalidInput, MaxCategoryLen, n)
	}
	if strings.IndexFunc(category, unicode.IsControl) >= 0 {
		return fmt.Errorf("%w: category cannot contain control characters", ErrInvalidInput)
	}
	return nil
}

// ValidateSubject проверяет имя клиента, записываемое в токен
func ValidateSubject(subject string) error {
	if subject == "" {
		return fmt.Errorf("%w: subject cannot be empty", ErrInvalidInput)
	}
	if !SubjectPattern.MatchString(subject) {
		return fmt.Errorf("%w: subject can only contain letters, numbers, '_', '-' and '.' (max 64)", ErrInvalidInput)
	}
	return nil
}

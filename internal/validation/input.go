package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
)

// Константы валидации
const (
	MaxViolationTypeLength = 64
	MaxSeverityLength      = 32
	MaxEvidenceBytes       = 16 * 1024
	MaxReasonLength        = 500
	MaxFieldNameLength     = 64
)

var tagPattern = regexp.MustCompile(`^[a-z0-9_.:-]+$`)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateTag проверяет машинный тег: тип нарушения, серьёзность, имя поля.
// Значение из фиксированного списка не требуется.
func ValidateTag(fieldName, value string, max int) error {
	if err := ValidateLength(fieldName, value, 1, max); err != nil {
		return err
	}
	if !tagPattern.MatchString(value) {
		return fmt.Errorf("%s содержит недопустимые символы", fieldName)
	}
	return nil
}

// ValidateEvidence ограничивает размер доказательств; содержимое не разбирается.
func ValidateEvidence(evidence []byte) error {
	if len(evidence) > MaxEvidenceBytes {
		return fmt.Errorf("evidence должен быть не более %d байт", MaxEvidenceBytes)
	}
	return nil
}

// ValidateVisibility проверяет значение видимости.
func ValidateVisibility(fieldName, value string) error {
	if _, ok := models.ValidVisibilities[value]; !ok {
		return fmt.Errorf("неверное значение %s: %q", fieldName, value)
	}
	return nil
}

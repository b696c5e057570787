package usecase

import (
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/asaskevich/govalidator"
	"github.com/microcosm-cc/bluemonday"
)

// Ограничения полей форм
const (
	MinLoginLen    = 3
	MaxLoginLen    = 45
	MinPasswordLen = 8
	MaxPasswordLen = 32
	MinMailLen     = 3
	MaxMailLen     = 128
	MaxNameLen     = 45
	MinTitleLen    = 3
	MaxTitleLen    = 45
	MinTagLen      = 3
	MaxTagLen      = 45
	MaxCommentLen  = 1000

	// MaxPhotoSize — предельный размер загружаемого файла, 1 MiB
	MaxPhotoSize = 1 << 20
)

// AllowedImageTypes — MIME-типы, которые принимаются при загрузке фото
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// ValidationError описывает некорректное поле; errors.Is(err, domain.ErrValidation) == true.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		if min == 0 {
			return invalid(field, "must be at most %d characters", max)
		}
		return invalid(field, "must be between %d and %d characters", min, max)
	}
	return nil
}

func checkMail(mail string) error {
	if err := checkLength("mail", mail, MinMailLen, MaxMailLen); err != nil {
		return err
	}
	if !govalidator.IsEmail(mail) {
		return invalid("mail", "must be a valid e-mail address")
	}
	return nil
}

var textPolicy = bluemonday.StrictPolicy()

// textEntities возвращает символы, которые bluemonday экранирует в обычном тексте.
// &lt; и &gt; остаются экранированными.
var textEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

// cleanText убирает из пользовательского текста HTML-разметку и крайние пробелы.
// Сущности раскрываются до очистки, поэтому &lt;script&gt; тоже удаляется.
func cleanText(s string) string {
	return strings.TrimSpace(textEntities.Replace(textPolicy.Sanitize(html.UnescapeString(s))))
}

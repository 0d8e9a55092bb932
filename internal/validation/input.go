package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/snipstash-backend/internal/models"
)

// Константы валидации
const (
	MinTitleLength       = 1
	MaxTitleLength       = 200
	MaxCodeLength        = 100000
	MaxDescriptionLength = 2000
	MaxNotesLength       = 5000
	MaxLanguageLength    = 50
	MaxTagLength         = 50
	MaxTagsCount         = 30
	MaxURLLength         = 2000
	OTPLength            = 6
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	otpRegex         = regexp.MustCompile(`^[0-9]{6}$`)
)

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

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart, domainPart := parts[0], parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateOTP проверяет формат одноразового кода: ровно шесть цифр.
func ValidateOTP(code string) error {
	if !otpRegex.MatchString(code) {
		return fmt.Errorf("код должен состоять из %d цифр", OTPLength)
	}
	return nil
}

// ValidateTitle проверяет заголовок сниппета или закладки.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("заголовок обязателен")
	}
	return ValidateLength("заголовок", title, MinTitleLength, MaxTitleLength)
}

// ValidateCode проверяет текст сниппета.
func ValidateCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("код сниппета обязателен")
	}
	return ValidateLength("код сниппета", code, 1, MaxCodeLength)
}

// ValidateLanguage проверяет заявленный язык сниппета.
func ValidateLanguage(language string) error {
	language = strings.TrimSpace(language)
	if language == "" {
		return fmt.Errorf("язык обязателен")
	}
	return ValidateLength("язык", language, 1, MaxLanguageLength)
}

// ValidateURL проверяет ссылку закладки.
func ValidateURL(link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("ссылка обязательна")
	}

	if err := ValidateLength("ссылка", link, 1, MaxURLLength); err != nil {
		return err
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("некорректный формат URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("ссылка должна начинаться с http:// или https://")
	}
	if parsed.Host == "" {
		return fmt.Errorf("ссылка должна содержать доменное имя")
	}

	return nil
}

// ValidateCategory проверяет категорию закладки по фиксированному списку.
func ValidateCategory(category string) error {
	if category == "" {
		return nil
	}
	if !models.IsValidBlogCategory(category) {
		return fmt.Errorf("категория должна быть одной из: %s", strings.Join(models.BlogCategories, ", "))
	}
	return nil
}

// ValidateTags проверяет массив тегов.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("количество тегов не может превышать %d", MaxTagsCount)
	}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return fmt.Errorf("тег не может быть длиннее %d символов", MaxTagLength)
		}
	}

	return nil
}

// ValidateDescription проверяет необязательное описание.
func ValidateDescription(description *string) error {
	if description != nil && *description != "" {
		return ValidateLength("описание", strings.TrimSpace(*description), 0, MaxDescriptionLength)
	}
	return nil
}

// ValidateNotes проверяет необязательные заметки закладки.
func ValidateNotes(notes *string) error {
	if notes != nil && *notes != "" {
		return ValidateLength("заметки", strings.TrimSpace(*notes), 0, MaxNotesLength)
	}
	return nil
}

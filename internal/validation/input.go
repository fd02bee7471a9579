package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Константы валидации
const (
	MinUsernameLength     = 3
	MaxUsernameLength     = 30
	MinDisplayNameLength  = 2
	MaxDisplayNameLength  = 100
	MinCampaignNameLength = 3
	MaxCampaignNameLength = 200
	MaxDescriptionLength  = 5000
	MaxCompanyNameLength  = 200
	MaxBioLength          = 1000
	MaxLocationLength     = 100
	MaxTagLength          = 50
	MaxTagsCount          = 30
	MaxMessageLength      = 5000
	MaxExternalLinkLength = 500
)

// AmountScale число знаков после запятой в денежных колонках.
const AmountScale = 2

// MaxAmount верхняя граница денежных полей (NUMERIC(10,2)).
var MaxAmount = decimal.RequireFromString("99999999.99")

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

	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	// Базовая проверка формата
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email должен содержать символ @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !strings.Contains(domainPart, ".") {
		return fmt.Errorf("доменная часть email должна содержать точку")
	}

	// Проверка на валидные символы в локальной части
	emailRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !emailRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	// Проверка на валидные символы в доменной части
	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("имя пользователя обязательно")
	}

	username = strings.TrimSpace(username)

	// Проверка длины
	if err := ValidateLength("имя пользователя", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	// Проверка на допустимые символы (только буквы, цифры и подчеркивание)
	usernameRegex := regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("имя пользователя может содержать только буквы, цифры и подчеркивание")
	}

	// Проверка, что не начинается с цифры
	if len(username) > 0 && unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("имя пользователя не может начинаться с цифры")
	}

	return nil
}

// ValidateDisplayName проверяет отображаемое имя.
func ValidateDisplayName(displayName string) error {
	if displayName == "" {
		return fmt.Errorf("отображаемое имя обязательно")
	}

	displayName = strings.TrimSpace(displayName)

	// Проверка длины
	if err := ValidateLength("отображаемое имя", displayName, MinDisplayNameLength, MaxDisplayNameLength); err != nil {
		return err
	}

	// Проверка на недопустимые символы (только буквы, цифры, пробелы и некоторые спецсимволы)
	displayNameRegex := regexp.MustCompile(`^[a-zA-Zа-яА-ЯёЁ0-9\s\-_.,!?()'&]+$`)
	if !displayNameRegex.MatchString(displayName) {
		return fmt.Errorf("отображаемое имя содержит недопустимые символы")
	}

	return nil
}

// ValidateLocation проверяет местоположение.
func ValidateLocation(location *string) error {
	if location != nil && *location != "" {
		loc := strings.TrimSpace(*location)
		if err := ValidateLength("местоположение", loc, 0, MaxLocationLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateBio проверяет биографию.
func ValidateBio(bio *string) error {
	if bio != nil && *bio != "" {
		bioStr := strings.TrimSpace(*bio)
		if err := ValidateLength("биография", bioStr, 0, MaxBioLength); err != nil {
			return err
		}
	}
	return nil
}

// ValidateExternalLink проверяет внешнюю ссылку.
func ValidateExternalLink(link *string) error {
	if link != nil && *link != "" {
		linkStr := strings.TrimSpace(*link)

		if err := ValidateLength("внешняя ссылка", linkStr, 0, MaxExternalLinkLength); err != nil {
			return err
		}

		// Проверка формата URL
		parsedURL, err := url.Parse(linkStr)
		if err != nil {
			return fmt.Errorf("некорректный формат URL")
		}

		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("ссылка должна начинаться с http:// или https://")
		}

		if parsedURL.Host == "" {
			return fmt.Errorf("ссылка должна содержать доменное имя")
		}
	}
	return nil
}

// ValidateCampaignName проверяет название кампании.
func ValidateCampaignName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("название кампании обязательно")
	}
	return ValidateLength("название кампании", strings.TrimSpace(name), MinCampaignNameLength, MaxCampaignNameLength)
}

// ValidateDescription проверяет необязательное описание.
func ValidateDescription(fieldName string, value *string) error {
	if value == nil {
		return nil
	}
	return ValidateLength(fieldName, strings.TrimSpace(*value), 0, MaxDescriptionLength)
}

// ValidateCompanyName проверяет название компании бренда.
func ValidateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("название компании обязательно")
	}
	return ValidateLength("название компании", strings.TrimSpace(name), 0, MaxCompanyNameLength)
}

// ValidateAmount проверяет, что сумма положительна и помещается в колонку.
func ValidateAmount(fieldName string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%s должна быть больше нуля", fieldName)
	}
	if !hasCents(amount) {
		return fmt.Errorf("%s может содержать не больше %d знаков после запятой", fieldName, AmountScale)
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%s не может превышать %s", fieldName, MaxAmount.String())
	}
	return nil
}

// ValidateBudget проверяет бюджет кампании. Нулевой бюджет допустим.
func ValidateBudget(budget decimal.Decimal) error {
	if budget.IsNegative() {
		return fmt.Errorf("бюджет не может быть отрицательным")
	}
	if !hasCents(budget) {
		return fmt.Errorf("бюджет может содержать не больше %d знаков после запятой", AmountScale)
	}
	if budget.GreaterThan(MaxAmount) {
		return fmt.Errorf("бюджет не может превышать %s", MaxAmount.String())
	}
	return nil
}

// hasCents истинно, если сумма хранится в NUMERIC(10,2) без округления.
func hasCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(AmountScale))
}

// ValidateFollowersRange проверяет границы фильтра по подписчикам.
func ValidateFollowersRange(min, max *int) error {
	if min != nil && *min < 0 {
		return fmt.Errorf("minFollowers не может быть отрицательным")
	}
	if max != nil && *max < 0 {
		return fmt.Errorf("maxFollowers не может быть отрицательным")
	}
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("minFollowers не может быть больше maxFollowers")
	}
	return nil
}

// ValidateEngagementRate проверяет процент вовлечённости.
func ValidateEngagementRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("вовлечённость должна быть от 0 до 100")
	}
	return nil
}

// ValidateTags проверяет теги автора.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("количество тегов не может превышать %d", MaxTagsCount)
	}

	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return fmt.Errorf("тег не может быть пустым")
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return fmt.Errorf("тег не может быть длиннее %d символов", MaxTagLength)
		}

		lower := strings.ToLower(tag)
		if seen[lower] {
			return fmt.Errorf("тег '%s' указан дважды", tag)
		}
		seen[lower] = true
	}

	return nil
}

// ValidateMessage проверяет необязательное сообщение к офферу.
func ValidateMessage(message *string) error {
	if message == nil {
		return nil
	}
	return ValidateLength("сообщение", strings.TrimSpace(*message), 0, MaxMessageLength)
}

package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Границы текстовых полей
const (
	MinJobTitleLength       = 3
	MaxJobTitleLength       = 200
	MinJobDescriptionLength = 10
	MaxJobDescriptionLength = 5000
	MinProposalLength       = 10
	MaxProposalLength       = 2000
	MinDisputeReasonLength  = 10
	MaxDisputeReasonLength  = 2000
	MaxMilestoneDescription = 500
	MinDisplayNameLength    = 2
	MaxDisplayNameLength    = 100
	MaxBioLength            = 1000
	MaxLocationLength       = 100
	MaxSkillLength          = 50
	MaxSkillsCount          = 50
)

// ValidateLength проверяет длину строки в рунах.
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

// ValidateJobTitle проверяет заголовок заказа.
func ValidateJobTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("заголовок заказа обязателен")
	}
	return ValidateLength("заголовок заказа", strings.TrimSpace(title), MinJobTitleLength, MaxJobTitleLength)
}

// ValidateJobDescription проверяет описание заказа.
func ValidateJobDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("описание заказа обязательно")
	}
	return ValidateLength("описание заказа", strings.TrimSpace(description), MinJobDescriptionLength, MaxJobDescriptionLength)
}

// ValidateProposal проверяет текст отклика.
func ValidateProposal(proposal string) error {
	if strings.TrimSpace(proposal) == "" {
		return fmt.Errorf("текст отклика обязателен")
	}
	return ValidateLength("текст отклика", strings.TrimSpace(proposal), MinProposalLength, MaxProposalLength)
}

// ValidateDisputeReason проверяет причину спора.
func ValidateDisputeReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("причина спора обязательна")
	}
	return ValidateLength("причина спора", strings.TrimSpace(reason), MinDisputeReasonLength, MaxDisputeReasonLength)
}

// ValidateMilestoneDescription проверяет описание этапа.
func ValidateMilestoneDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("описание этапа обязательно")
	}
	return ValidateLength("описание этапа", strings.TrimSpace(description), 1, MaxMilestoneDescription)
}

// ValidateDisplayName проверяет отображаемое имя.
func ValidateDisplayName(displayName string) error {
	if strings.TrimSpace(displayName) == "" {
		return fmt.Errorf("отображаемое имя обязательно")
	}
	return ValidateLength("отображаемое имя", strings.TrimSpace(displayName), MinDisplayNameLength, MaxDisplayNameLength)
}

// ValidateBio проверяет биографию.
func ValidateBio(bio *string) error {
	if bio != nil && *bio != "" {
		return ValidateLength("биография", strings.TrimSpace(*bio), 0, MaxBioLength)
	}
	return nil
}

// ValidateLocation проверяет местоположение.
func ValidateLocation(location *string) error {
	if location != nil && *location != "" {
		return ValidateLength("местоположение", strings.TrimSpace(*location), 0, MaxLocationLength)
	}
	return nil
}

// ValidateSkills проверяет массив навыков.
func ValidateSkills(skills []string) error {
	if len(skills) > MaxSkillsCount {
		return fmt.Errorf("количество навыков не может превышать %d", MaxSkillsCount)
	}

	seen := make(map[string]bool)
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return fmt.Errorf("навык не может быть пустым")
		}
		if utf8.RuneCountInString(skill) > MaxSkillLength {
			return fmt.Errorf("навык не может быть длиннее %d символов", MaxSkillLength)
		}

		skillLower := strings.ToLower(skill)
		if seen[skillLower] {
			return fmt.Errorf("навык '%s' указан дважды", skill)
		}
		seen[skillLower] = true
	}

	return nil
}

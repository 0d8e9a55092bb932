package tagger

import "strings"

// AutoTags выводит семантические теги из текста сниппета.
// Функция чистая и детерминированная: только поиск подстрок по тексту в нижнем
// регистре, без I/O и без случайности, чтобы её можно было тестировать изолированно.
func AutoTags(code, language string) []string {
	var tags []string
	lower := strings.ToLower(code)

	// Правила, не зависящие от языка.
	if strings.Contains(lower, "console.log") || strings.Contains(lower, "print(") || strings.Contains(lower, "printf(") {
		tags = append(tags, "debugging")
	}

	if strings.Contains(lower, "try") && strings.Contains(lower, "catch") {
		tags = append(tags, "error handling")
	}

	switch language {
	case "javascript", "typescript":
		if strings.Contains(lower, "for (") || strings.Contains(lower, "while (") {
			tags = append(tags, "loop")
		}
		if strings.Contains(lower, ".map(") || strings.Contains(lower, ".filter(") || strings.Contains(lower, ".reduce(") {
			tags = append(tags, "array ops")
		}
		if strings.Contains(lower, "fetch(") || strings.Contains(lower, "axios.") || strings.Contains(lower, "xmlhttprequest") {
			tags = append(tags, "api")
		}
		if strings.Contains(lower, "function") || strings.Contains(lower, "=>") {
			tags = append(tags, "function")
		}
		if strings.Contains(lower, "class ") {
			tags = append(tags, "class")
		}
	case "python":
		if strings.Contains(lower, "for ") || strings.Contains(lower, "while ") {
			tags = append(tags, "loop")
		}
		if strings.Contains(lower, "def ") {
			tags = append(tags, "function")
		}
		if strings.Contains(lower, "class ") {
			tags = append(tags, "class")
		}
		if strings.Contains(lower, "requests.") || strings.Contains(lower, "urllib") {
			tags = append(tags, "api")
		}
	}

	return tags
}

// MergeTags объединяет пользовательские теги с автоматическими.
// Дубликаты отбрасываются без учёта регистра, пользовательские теги идут первыми.
func MergeTags(userTags, autoTags []string) []string {
	merged := make([]string, 0, len(userTags)+len(autoTags))
	seen := make(map[string]bool, len(userTags)+len(autoTags))

	for _, lists := range [][]string{userTags, autoTags} {
		for _, tag := range lists {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, tag)
		}
	}

	return merged
}

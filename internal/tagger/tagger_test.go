package tagger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoTags_Deterministic(t *testing.T) {
	code := "try { console.log(x) } catch(e) {}"
	first := AutoTags(code, "javascript")
	second := AutoTags(code, "javascript")
	assert.Equal(t, first, second)
}

func TestAutoTags_UniversalRules(t *testing.T) {
	// try/catch даёт "error handling" независимо от заявленного языка.
	tags := AutoTags("TRY { } CATCH { }", "rust")
	assert.Contains(t, tags, "error handling")
	assert.NotContains(t, tags, "loop")

	tags = AutoTags("printf(\"%d\", x);", "c")
	assert.Contains(t, tags, "debugging")
}

func TestAutoTags_JavaScript(t *testing.T) {
	tags := AutoTags("try { console.log(x) } catch(e) {}", "javascript")
	assert.Contains(t, tags, "debugging")
	assert.Contains(t, tags, "error handling")
	// Нет ни "function", ни стрелочной функции в тексте.
	assert.NotContains(t, tags, "function")

	tags = AutoTags("const f = (a) => a.map((x) => x * 2)", "javascript")
	assert.Contains(t, tags, "array ops")
	assert.Contains(t, tags, "function")

	tags = AutoTags("for (let i = 0; i < 10; i++) { fetch('/api') }", "javascript")
	assert.Contains(t, tags, "loop")
	assert.Contains(t, tags, "api")
}

func TestAutoTags_Python(t *testing.T) {
	tags := AutoTags("def f():\n  for x in y: pass", "python")
	assert.Contains(t, tags, "loop")
	assert.Contains(t, tags, "function")

	tags = AutoTags("class Foo:\n    data = requests.get(url)", "python")
	assert.Contains(t, tags, "class")
	assert.Contains(t, tags, "api")
}

func TestAutoTags_UnknownLanguage(t *testing.T) {
	// Языковые правила не применяются, только универсальные.
	tags := AutoTags("for (i := 0; i < 10; i++) { }", "go")
	assert.NotContains(t, tags, "loop")
	assert.Empty(t, tags)
}

func TestMergeTags(t *testing.T) {
	merged := MergeTags([]string{"Utils", "loop"}, []string{"loop", "debugging"})
	assert.Equal(t, []string{"Utils", "loop", "debugging"}, merged)

	// Пустые и пробельные теги отбрасываются, дубликаты без учёта регистра.
	merged = MergeTags([]string{" ", "API"}, []string{"api"})
	assert.Equal(t, []string{"API"}, merged)

	assert.Empty(t, MergeTags(nil, nil))
}

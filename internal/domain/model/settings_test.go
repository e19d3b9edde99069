package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	inst := Installation{
		DefaultLanguage: "spanish",
		AutoTranslate:   true,
		AutoLabel:       false,
	}

	t.Run("nil config inherits everything", func(t *testing.T) {
		got := Merge(inst, nil)
		assert.Equal(t, EffectiveSettings{DefaultLanguage: "spanish", AutoTranslate: true, AutoLabel: false}, got)
	})

	t.Run("non-nil fields win, nil fields inherit", func(t *testing.T) {
		autoTranslate := false
		got := Merge(inst, &RepoConfig{AutoTranslate: &autoTranslate})
		assert.Equal(t, EffectiveSettings{DefaultLanguage: "spanish", AutoTranslate: false, AutoLabel: false}, got)
	})

	t.Run("all overrides set", func(t *testing.T) {
		lang := "french"
		on := true
		got := Merge(inst, &RepoConfig{DefaultLanguage: &lang, AutoTranslate: &on, AutoLabel: &on})
		assert.Equal(t, EffectiveSettings{DefaultLanguage: "french", AutoTranslate: true, AutoLabel: true}, got)
	})
}

func TestRepoConfigIsEmpty(t *testing.T) {
	assert.True(t, RepoConfig{RepoFullName: "acme/widgets"}.IsEmpty())

	lang := "french"
	assert.False(t, RepoConfig{DefaultLanguage: &lang}.IsEmpty())
}

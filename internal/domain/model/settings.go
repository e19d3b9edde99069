package model

// EffectiveSettings is the resolved, flattened policy for one repository:
// each field takes the RepoConfig override when present, else the
// Installation default. Derived, never stored.
type EffectiveSettings struct {
	DefaultLanguage string
	AutoTranslate   bool
	AutoLabel       bool
}

// Merge flattens an installation's defaults with an optional per-repository
// override. config may be nil, in which case the installation values are
// returned unchanged.
func Merge(inst Installation, config *RepoConfig) EffectiveSettings {
	settings := EffectiveSettings{
		DefaultLanguage: inst.DefaultLanguage,
		AutoTranslate:   inst.AutoTranslate,
		AutoLabel:       inst.AutoLabel,
	}

	if config == nil {
		return settings
	}

	if config.DefaultLanguage != nil {
		settings.DefaultLanguage = *config.DefaultLanguage
	}
	if config.AutoTranslate != nil {
		settings.AutoTranslate = *config.AutoTranslate
	}
	if config.AutoLabel != nil {
		settings.AutoLabel = *config.AutoLabel
	}

	return settings
}

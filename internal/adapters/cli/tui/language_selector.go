package tui

// languageOptions builds checkbox options for the available languages,
// checking those already preferred
func languageOptions(available, preselected []string) []CheckboxOption {
	checked := make(map[string]bool, len(preselected))
	for _, code := range preselected {
		checked[code] = true
	}

	options := make([]CheckboxOption, 0, len(available))
	for _, code := range available {
		options = append(options, CheckboxOption{
			Label:   LanguageLabel(code),
			Value:   code,
			Checked: checked[code],
		})
	}
	return options
}

// RunLanguageSelector lets the user rank preferred languages among those
// a video offers. Preselected languages keep their order at the top and
// each newly ticked one ranks after them. nil means the user cancelled.
func RunLanguageSelector(available, preselected []string) ([]string, error) {
	title := "Which languages do you prefer?"
	if len(available) == 1 {
		title = "Use this language?"
	}

	selected, err := RunCheckbox(title, languageOptions(available, preselected), preselected...)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, nil // Cancelled
	}
	return selected, nil
}

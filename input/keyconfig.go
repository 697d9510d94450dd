package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// specialKeyNames indexes tcell key names in lower case ("up", "enter", "ctrl-c")
var specialKeyNames = buildSpecialKeyNames()

func buildSpecialKeyNames() map[string]tcell.Key {
	names := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		names[strings.ToLower(name)] = k
	}
	// KeyEscape is named "Esc"
	names["escape"] = tcell.KeyEscape
	return names
}

// ApplyBindings returns a copy of base with bindings applied
// Bindings map a key (single character, alias or tcell key name) to an
// action name; the "none" action removes the key
func ApplyBindings(base *KeyTable, bindings map[string]string) (*KeyTable, error) {
	kt := base.Clone()

	for keyStr, actionName := range bindings {
		intent, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}

		if r, ok := resolveRune(keyStr); ok {
			setOrDelete(kt.Runes, r, intent)
			continue
		}

		k, ok := specialKeyNames[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("[keys] unknown key name: %q", keyStr)
		}
		setOrDelete(kt.SpecialKeys, k, intent)
	}

	return kt, nil
}

func setOrDelete[K comparable](m map[K]Intent, k K, intent Intent) {
	if intent == IntentNone {
		delete(m, k)
		return
	}
	m[k] = intent
}

// resolveRune converts a single character or named alias to a rune
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}

// resolveAction converts an action name to an Intent
func resolveAction(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	intent, ok := actionNames[name]
	if !ok {
		return IntentNone, fmt.Errorf("unknown action: %q", name)
	}
	return intent, nil
}

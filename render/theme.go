package render

import "strings"

// Theme is the palette of the terminal window
type Theme struct {
	Name       string
	Background string
	TitleBar   string
	Border     string
	Text       string
	Muted      string
	Prompt     string
	Track      string
	DefaultBar string
}

var (
	DarkTheme = Theme{
		Name:       "dark",
		Background: "#0d1117",
		TitleBar:   "#161b22",
		Border:     "#30363d",
		Text:       "#c9d1d9",
		Muted:      "#8b949e",
		Prompt:     "#3fb950",
		Track:      "#21262d",
		DefaultBar: "#58a6ff",
	}

	LightTheme = Theme{
		Name:       "light",
		Background: "#ffffff",
		TitleBar:   "#f6f8fa",
		Border:     "#d0d7de",
		Text:       "#24292f",
		Muted:      "#57606a",
		Prompt:     "#1a7f37",
		Track:      "#eaeef2",
		DefaultBar: "#0969da",
	}
)

// ThemeByName falls back to the dark theme for unknown names
func ThemeByName(name string) Theme {
	if strings.EqualFold(strings.TrimSpace(name), LightTheme.Name) {
		return LightTheme
	}
	return DarkTheme
}

// linguist colours for the languages most often seen on github profiles
var languageColors = map[string]string{
	"C":                "#555555",
	"C#":               "#178600",
	"C++":              "#f34b7d",
	"Clojure":          "#db5855",
	"Dart":             "#00B4AB",
	"Dockerfile":       "#384d54",
	"Elixir":           "#6e4a7e",
	"Go":               "#00ADD8",
	"Haskell":          "#5e5086",
	"Java":             "#b07219",
	"JavaScript":       "#f1e05a",
	"Jupyter Notebook": "#DA5B0B",
	"Kotlin":           "#A97BFF",
	"Lua":              "#000080",
	"Makefile":         "#427819",
	"Nix":              "#7e7eff",
	"OCaml":            "#ef7a08",
	"PHP":              "#4F5D95",
	"Perl":             "#0298c3",
	"PowerShell":       "#012456",
	"Python":           "#3572A5",
	"R":                "#198CE7",
	"Ruby":             "#701516",
	"Rust":             "#dea584",
	"Scala":            "#c22d40",
	"Shell":            "#89e051",
	"Svelte":           "#ff3e00",
	"Swift":            "#F05138",
	"TypeScript":       "#3178c6",
	"Vue":              "#41b883",
	"Zig":              "#ec915c",
}

func (t Theme) barColor(language string) string {
	if color, found := languageColors[language]; found {
		return color
	}
	return t.DefaultBar
}

// Package render turns a master profile into a styled HTML page and a printable PDF.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/spigell/resume-mate/internal/profile"
)

const (
	DefaultTheme = "standard"

	templateFile = "template.html.tmpl"
	stylesFile   = "styles.css"
)

//go:embed themes
var embeddedThemes embed.FS

var monthNames = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Renderer renders profiles with a single theme.
type Renderer struct {
	theme string
	tmpl  *template.Template
	css   template.CSS
}

// New loads theme from themesDir when it holds a directory of that name, and from the
// built-in themes otherwise.
func New(theme, themesDir string) (*Renderer, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = DefaultTheme
	}

	themeFS, err := locateTheme(theme, themesDir)
	if err != nil {
		return nil, err
	}

	source, err := fs.ReadFile(themeFS, templateFile)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", theme, err)
	}
	tmpl, err := template.New(templateFile).Funcs(funcs).Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", theme, err)
	}

	css, err := fs.ReadFile(themeFS, stylesFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read theme %s styles: %w", theme, err)
	}

	return &Renderer{
		theme: theme,
		tmpl:  tmpl,
		// Theme stylesheets are trusted local files.
		css: template.CSS(css),
	}, nil
}

func (r *Renderer) Theme() string {
	return r.theme
}

// HTML renders the profile as a standalone page with the stylesheet inlined.
func (r *Renderer) HTML(p *profile.MasterProfile) (string, error) {
	if err := profile.Validate(p); err != nil {
		return "", &profile.InvalidProfile{Role: "existing", Cause: err}
	}

	data, err := profile.ToMap(p)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, struct {
		Profile map[string]any
		CSS     template.CSS
	}{Profile: data, CSS: r.css}); err != nil {
		return "", fmt.Errorf("render theme %s: %w", r.theme, err)
	}
	return buf.String(), nil
}

// Themes lists the themes available built in and in themesDir.
func Themes(themesDir string) []string {
	seen := map[string]bool{}
	collect := func(fsys fs.FS) {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, err := fs.Stat(fsys, path.Join(entry.Name(), templateFile)); err == nil {
				seen[entry.Name()] = true
			}
		}
	}

	if builtin, err := fs.Sub(embeddedThemes, "themes"); err == nil {
		collect(builtin)
	}
	if themesDir = strings.TrimSpace(themesDir); themesDir != "" {
		collect(os.DirFS(themesDir))
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func locateTheme(theme, themesDir string) (fs.FS, error) {
	if strings.ContainsAny(theme, `/\`) || theme == "." || theme == ".." {
		return nil, fmt.Errorf("invalid theme name %q", theme)
	}

	if themesDir = strings.TrimSpace(themesDir); themesDir != "" {
		dir := os.DirFS(themesDir)
		if _, err := fs.Stat(dir, path.Join(theme, templateFile)); err == nil {
			return fs.Sub(dir, theme)
		}
	}

	builtin, err := fs.Sub(embeddedThemes, path.Join("themes", theme))
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(builtin, templateFile); err != nil {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", theme, strings.Join(Themes(themesDir), ", "))
	}
	return builtin, nil
}

var funcs = template.FuncMap{
	"join":   join,
	"date":   formatDate,
	"period": period,
}

func join(items any, sep string) string {
	switch list := items.(type) {
	case []string:
		return strings.Join(list, sep)
	case []any:
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, sep)
	default:
		return ""
	}
}

// formatDate renders YYYY-MM as "Jan 2006" and leaves other values as they are.
func formatDate(value any) string {
	s, _ := value.(string)
	if len(s) == 7 && s[4] == '-' {
		month := int(s[5]-'0')*10 + int(s[6]-'0')
		if month >= 1 && month <= 12 {
			return monthNames[month-1] + " " + s[:4]
		}
	}
	return s
}

func period(start, end any) string {
	from := formatDate(start)
	to := formatDate(end)
	if to == "" {
		to = "Present"
	}
	if from == "" {
		return to
	}
	return from + " - " + to
}

package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethanolivertroy/dep-check/internal/models"
)

// PythonRequirementsParser parses requirements.txt files
type PythonRequirementsParser struct{}

// CanParse returns true for requirements.txt files
func (p *PythonRequirementsParser) CanParse(filename string) bool {
	return filename == "requirements.txt" ||
		strings.HasSuffix(filename, "-requirements.txt") ||
		strings.HasSuffix(filename, "_requirements.txt") ||
		filename == "requirements-dev.txt" ||
		filename == "requirements-test.txt"
}

// requirementPattern splits a PEP 508 requirement into name and the rest
var requirementPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(.*)$`)

// clausePattern matches one PEP 440 version clause like ~=1.4.5
var clausePattern = regexp.MustCompile(`^(===|==|!=|~=|>=|<=|>|<)\s*(\S+)$`)

// eggPattern extracts the project name from a VCS requirement line
var eggPattern = regexp.MustCompile(`#egg=([A-Za-z0-9][A-Za-z0-9._-]*)`)

// directRefPattern matches a PEP 508 direct reference: name[extras] @ url
var directRefPattern = regexp.MustCompile(`^([A-Za-z0-9][A-Za-z0-9._-]*)\s*(?:\[[^\]]*\])?\s*@\s*(\S+)`)

// Parse extracts dependencies from requirements.txt content
func (p *PythonRequirementsParser) Parse(filepath string, content []byte) ([]models.DeclaredDependency, error) {
	var deps []models.DeclaredDependency
	lines := strings.Split(string(content), "\n")

	for lineNum, line := range lines {
		line = strings.TrimSpace(line)

		// Editable installs are still declarations
		for _, flag := range []string{"-e ", "--editable "} {
			if strings.HasPrefix(line, flag) {
				line = strings.TrimSpace(strings.TrimPrefix(line, flag))
			}
		}

		// Skip empty lines, comments, and options
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}

		// Remove inline comments
		if idx := strings.Index(line, " #"); idx > 0 {
			line = strings.TrimSpace(line[:idx])
		}

		if strings.Contains(line, "://") {
			if name, raw := parseURLRequirement(line); name != "" {
				deps = append(deps, pythonDependency(name, raw, filepath, lineNum+1))
			}
			continue
		}

		name, raw := parsePEP508(line)
		if name != "" {
			deps = append(deps, pythonDependency(name, raw, filepath, lineNum+1))
		}
	}

	return deps, nil
}

func pythonDependency(name, raw, filepath string, line int) models.DeclaredDependency {
	return models.DeclaredDependency{
		Name:       strings.ToLower(name), // PyPI is case-insensitive
		Raw:        raw,
		Ecosystem:  models.EcosystemPyPI,
		SourceFile: filepath,
		Line:       line,
	}
}

// PythonPyProjectParser parses pyproject.toml files
type PythonPyProjectParser struct {
	ExcludeDev bool // Skip Poetry dev-dependencies
}

// CanParse returns true for pyproject.toml files
func (p *PythonPyProjectParser) CanParse(filename string) bool {
	return filename == "pyproject.toml"
}

// pyproject represents the structure of pyproject.toml
type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies    map[string]interface{} `toml:"dependencies"`
			DevDependencies map[string]interface{} `toml:"dev-dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Parse extracts dependencies from pyproject.toml content. PEP 621 entries
// keep document order; Poetry tables follow the order the TOML decoder
// records for their keys.
func (p *PythonPyProjectParser) Parse(filepath string, content []byte) ([]models.DeclaredDependency, error) {
	var proj pyproject
	meta, err := toml.Decode(string(content), &proj)
	if err != nil {
		return nil, err
	}

	var deps []models.DeclaredDependency
	seen := make(map[string]bool)
	add := func(dep models.DeclaredDependency) {
		if seen[dep.Name] {
			return
		}
		seen[dep.Name] = true
		deps = append(deps, dep)
	}

	// Parse PEP 621 dependencies (project.dependencies)
	for _, spec := range proj.Project.Dependencies {
		if name, raw := parsePEP508(spec); name != "" {
			add(pythonDependency(name, raw, filepath, 0))
		}
	}

	// Parse Poetry dependencies
	poetryTables := []struct {
		key    string
		values map[string]interface{}
		dev    bool
	}{
		{"dependencies", proj.Tool.Poetry.Dependencies, false},
		{"dev-dependencies", proj.Tool.Poetry.DevDependencies, true},
	}
	for _, table := range poetryTables {
		if table.dev && p.ExcludeDev {
			continue
		}
		for _, name := range poetryKeys(meta, table.key, table.values) {
			if name == "python" {
				continue
			}
			dep := pythonDependency(name, extractPoetrySpecifier(table.values[name]), filepath, 0)
			dep.Dev = table.dev
			add(dep)
		}
	}

	return deps, nil
}

// poetryKeys returns the keys of tool.poetry.<table> in document order
func poetryKeys(meta toml.MetaData, table string, values map[string]interface{}) []string {
	var keys []string
	for _, key := range meta.Keys() {
		if len(key) == 4 && key[0] == "tool" && key[1] == "poetry" && key[2] == table {
			if _, ok := values[key[3]]; ok {
				keys = append(keys, key[3])
			}
		}
	}
	return keys
}

// parsePEP508 parses a PEP 508 dependency specification into a name and a
// specifier the range engine understands
func parsePEP508(spec string) (name string, raw string) {
	// e.g., "requests>=2.28.0", "flask[async]>=2.0", "django==4.2", "pkg @ https://..."

	// Remove environment markers
	if idx := strings.Index(spec, ";"); idx > 0 {
		spec = spec[:idx]
	}

	// Remove extras
	if idx := strings.Index(spec, "["); idx > 0 {
		bracketEnd := strings.Index(spec, "]")
		if bracketEnd > idx {
			spec = spec[:idx] + spec[bracketEnd+1:]
		}
	}

	spec = strings.TrimSpace(spec)

	matches := requirementPattern.FindStringSubmatch(spec)
	if matches == nil {
		return "", ""
	}
	name, rest := matches[1], strings.TrimSpace(matches[2])

	// Direct references
	if strings.HasPrefix(rest, "@") {
		return name, pipURL(strings.TrimSpace(strings.TrimPrefix(rest, "@")))
	}

	// Parenthesised specifiers are legal PEP 508
	rest = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(rest, "("), ")"))

	return name, pep440Range(rest)
}

// parseURLRequirement reads a requirements.txt line holding a URL, either a
// direct reference ("name @ url") or a bare URL naming its project with #egg=
func parseURLRequirement(line string) (name string, raw string) {
	// Markers after a URL need a space before the ';'
	if idx := strings.Index(line, " ;"); idx > 0 {
		line = strings.TrimSpace(line[:idx])
	}

	if m := directRefPattern.FindStringSubmatch(line); m != nil {
		return m[1], pipURL(m[2])
	}
	if m := eggPattern.FindStringSubmatch(line); m != nil {
		return m[1], pipURL(line)
	}
	return "", ""
}

// pipURL rewrites a pip git URL so its ref follows '#' like every other
// version-control specifier. pip writes the ref after '@' in the last path
// segment and keeps the fragment for egg= and subdirectory= metadata.
//
//	git+https://host/org/repo.git@v1.0.0#egg=repo -> git+https://host/org/repo.git#v1.0.0
func pipURL(url string) string {
	if !strings.HasPrefix(url, "git+") {
		return url
	}

	base, _, _ := strings.Cut(url, "#")
	slash := strings.LastIndex(base, "/")
	if at := strings.LastIndex(base, "@"); slash >= 0 && at > slash {
		return base[:at] + "#" + base[at+1:]
	}
	return base
}

// pep440Range rewrites PEP 440 clauses into the semantic version range
// grammar. Clauses it cannot rewrite are passed through unchanged.
func pep440Range(spec string) string {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "*"
	}

	var out []string
	for _, clause := range strings.Split(spec, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		m := clausePattern.FindStringSubmatch(clause)
		if m == nil {
			out = append(out, clause)
			continue
		}
		op, version := m[1], m[2]
		wildcard := strings.HasSuffix(version, ".*")
		if wildcard {
			version = strings.TrimSuffix(version, ".*") + ".x"
		}

		switch op {
		case "==", "===":
			if wildcard {
				out = append(out, version)
			} else {
				out = append(out, "="+version)
			}
		case "~=":
			out = append(out, compatibleRelease(version)...)
		default:
			out = append(out, op+version)
		}
	}

	return strings.Join(out, ", ")
}

// compatibleRelease expands ~=X.Y[.Z] into a lower and upper bound
func compatibleRelease(version string) []string {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return []string{"~=" + version}
	}

	prefix := parts[:len(parts)-1]
	last, err := strconv.Atoi(prefix[len(prefix)-1])
	if err != nil {
		return []string{">=" + version}
	}

	upper := append(append([]string(nil), prefix[:len(prefix)-1]...), strconv.Itoa(last+1))
	return []string{">=" + version, "<" + strings.Join(upper, ".")}
}

func extractPoetrySpecifier(val interface{}) string {
	switch v := val.(type) {
	case string:
		// Poetry caret and tilde ranges already match the range grammar
		return strings.TrimSpace(v)
	case map[string]interface{}:
		if ver, ok := v["version"].(string); ok {
			return strings.TrimSpace(ver)
		}
		if path, ok := v["path"].(string); ok {
			if strings.HasPrefix(path, ".") || strings.HasPrefix(path, "/") || strings.HasPrefix(path, "~") {
				return path
			}
			return "./" + path
		}
		if url, ok := v["url"].(string); ok {
			return url
		}
		if git, ok := v["git"].(string); ok {
			for _, refKey := range []string{"tag", "rev", "branch"} {
				if ref, ok := v[refKey].(string); ok {
					return vcsURL(git) + "#" + ref
				}
			}
			return vcsURL(git)
		}
	}
	return "*"
}

// vcsURL marks a plain repository URL as a version-control specifier
func vcsURL(repo string) string {
	if strings.HasPrefix(repo, "http://") || strings.HasPrefix(repo, "https://") {
		return "git+" + repo
	}
	return repo
}

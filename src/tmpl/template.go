// Package tmpl expands the template variables allowed in deck text.
//
// Supported templates:
//
//	Presenter identity (from config):
//	  {company}            → "Contoso Ltd."
//	  {email}              → "cloud@contoso.com"
//	  {date}               → presenter date, taken literally ("May 28, 2025")
//
//	Time variables:
//	  {today}              → "2026-02-24" (ISO date, local time)
//	  {date:FORMAT}        → today in a Go time layout (e.g. {date:January 2, 2006})
//
//	Git metadata (HEAD of the repository containing RootDir):
//	  {commit.date}        → "2026-02-24" (HEAD commit author date, UTC)
//	  {commit.author}      → HEAD commit author name
//	  {commit.sha}         → "3f2a9c1" (abbreviated HEAD commit hash)
//
//	Environment and user variables:
//	  {env:VAR_NAME}       → value of environment variable
//	  {var:name}           → value from the config vars map (recursive)
//
// Unknown tokens pass through untouched so the placeholder lint module can
// report them.
package tmpl

import (
	"os"
	"strings"
	"sync"
	"time"
)

// Resolver expands deck templates. It is safe for concurrent use.
type Resolver struct {
	Company string
	Email   string
	Date    string
	Vars    map[string]string
	RootDir string           // repository used for {commit.*}; "" disables git lookups
	Now     func() time.Time // defaults to time.Now

	commitOnce sync.Once
	commit     *CommitInfo
}

// Resolve expands every supported template in s.
func (r *Resolver) Resolve(s string) string {
	if !strings.Contains(s, "{") {
		return s
	}

	// Presenter values come first so they may themselves use {date:...},
	// {env:} or {var:}. Var values may name presenter fields in turn.
	s = r.presenter(s)
	if strings.Contains(s, "{var:") {
		s = r.presenter(ResolveVars(s, r.Vars))
	}

	if strings.Contains(s, "{commit.") {
		s = r.resolveCommit(s)
	}
	s = resolveEnvVars(s)
	s = r.resolveTime(s)
	return s
}

func (r *Resolver) presenter(s string) string {
	s = strings.ReplaceAll(s, "{company}", r.Company)
	s = strings.ReplaceAll(s, "{email}", r.Email)
	return strings.ReplaceAll(s, "{date}", r.Date)
}

// ResolveVars expands {var:name} templates from the vars map.
// Supports recursive resolution (a var value can reference other vars)
// with cycle detection to prevent infinite loops.
func ResolveVars(s string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(s, "{var:") {
		return s
	}
	return resolveVarsWithSeen(s, vars, nil)
}

func resolveVarsWithSeen(s string, vars map[string]string, seen map[string]bool) string {
	for {
		start := strings.Index(s, "{var:")
		if start == -1 {
			return s
		}
		end := strings.Index(s[start:], "}")
		if end == -1 {
			return s
		}
		end += start
		name := s[start+5 : end]
		val, ok := vars[name]
		if !ok || seen[name] {
			// Unknown var or cycle: keep the placeholder and continue after it.
			prefix := s[:end+1]
			rest := resolveVarsWithSeen(s[end+1:], vars, seen)
			return prefix + rest
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		seen[name] = true
		val = resolveVarsWithSeen(val, vars, seen)
		delete(seen, name) // allow same var in different positions
		s = s[:start] + val + s[end+1:]
	}
}

// resolveEnvVars replaces all {env:VAR_NAME} with the env var value.
// Inserted values are not rescanned.
func resolveEnvVars(s string) string {
	return replaceTokens(s, "{env:", os.Getenv)
}

// replaceTokens substitutes every prefix...} token in s with expand(arg),
// scanning left to right and never revisiting expanded text.
func replaceTokens(s, prefix string, expand func(arg string) string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, prefix)
		if start == -1 {
			break
		}
		end := strings.IndexByte(s[start:], '}')
		if end == -1 {
			break
		}
		end += start
		b.WriteString(s[:start])
		b.WriteString(expand(s[start+len(prefix) : end]))
		s = s[end+1:]
	}
	if b.Len() == 0 {
		return s
	}
	b.WriteString(s)
	return b.String()
}

func (r *Resolver) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Resolver) resolveTime(s string) string {
	if !strings.Contains(s, "{today}") && !strings.Contains(s, "{date:") {
		return s
	}
	now := r.now()
	s = strings.ReplaceAll(s, "{today}", now.Format("2006-01-02"))
	return replaceTokens(s, "{date:", now.Format)
}

func (r *Resolver) resolveCommit(s string) string {
	r.commitOnce.Do(func() {
		if r.RootDir == "" {
			return
		}
		if info, err := HeadCommit(r.RootDir); err == nil {
			r.commit = info
		}
	})

	var date, author, sha string
	if r.commit != nil {
		date = r.commit.When.UTC().Format("2006-01-02")
		author = r.commit.Author
		sha = r.commit.ShortHash()
	}
	s = strings.ReplaceAll(s, "{commit.date}", date)
	s = strings.ReplaceAll(s, "{commit.author}", author)
	s = strings.ReplaceAll(s, "{commit.sha}", sha)
	return s
}

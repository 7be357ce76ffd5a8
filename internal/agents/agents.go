// Package agents registers the eventdesk MCP server with coding agents
// (Claude Code, Cursor, Codex, OpenCode) by editing their config files.
package agents

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Agent names a supported coding agent.
type Agent string

const (
	ClaudeCode Agent = "claude-code"
	Cursor     Agent = "cursor"
	Codex      Agent = "codex"
	OpenCode   Agent = "opencode"
)

// All lists the supported agents in display order.
var All = []Agent{ClaudeCode, Cursor, Codex, OpenCode}

// ServerName is the key of the eventdesk entry in agent configs.
const ServerName = "eventdesk"

// Parse validates an agent name.
func Parse(s string) (Agent, error) {
	for _, a := range All {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown agent %q (want claude-code, cursor, codex or opencode)", s)
}

// ConfigPath returns the file holding a's MCP server table. dir overrides the
// agent's config directory; project selects the per-project file in cwd.
//
//revive:disable:flag-parameter
func ConfigPath(a Agent, dir string, project bool) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	base := func(dot string) string {
		switch {
		case dir != "":
			return dir
		case project:
			return filepath.Join(cwd, dot)
		default:
			return filepath.Join(home, dot)
		}
	}

	switch a {
	case ClaudeCode:
		if dir != "" || project {
			return filepath.Join(filepath.Dir(base(".claude")), ".mcp.json"), nil
		}
		return filepath.Join(home, ".claude.json"), nil
	case Cursor:
		return filepath.Join(base(".cursor"), "mcp.json"), nil
	case Codex:
		return filepath.Join(base(".codex"), "config.toml"), nil
	case OpenCode:
		if dir != "" {
			return filepath.Join(dir, "opencode.json"), nil
		}
		if project {
			return filepath.Join(cwd, "opencode.json"), nil
		}
		return filepath.Join(home, ".config", "opencode", "opencode.json"), nil
	}
	return "", fmt.Errorf("unknown agent %q", a)
}

//revive:enable:flag-parameter

// Install adds the eventdesk server to the config at path. dataHome, when
// set, is passed to the server as EVENTDESK_HOME. Reports false when an
// entry is already present.
func Install(a Agent, path, dataHome string) (bool, error) {
	switch a {
	case Codex:
		return appendTOMLSection(path, dataHome)
	case OpenCode:
		return installJSON(path, "mcp", opencodeEntry(dataHome))
	case ClaudeCode, Cursor:
		return installJSON(path, "mcpServers", stdioEntry(dataHome))
	}
	return false, fmt.Errorf("agents.Install: unknown agent %q", a)
}

// Uninstall removes the eventdesk server from the config at path. Files left
// empty are deleted. Reports false when there was nothing to remove.
func Uninstall(a Agent, path string) (bool, error) {
	switch a {
	case Codex:
		return removeTOMLSection(path)
	case OpenCode:
		return uninstallJSON(path, "mcp")
	case ClaudeCode, Cursor:
		return uninstallJSON(path, "mcpServers")
	}
	return false, fmt.Errorf("agents.Uninstall: unknown agent %q", a)
}

// Installed reports whether the config at path already has an eventdesk entry.
func Installed(a Agent, path string) bool {
	if a == Codex {
		return hasTOMLSection(path)
	}
	table := "mcpServers"
	if a == OpenCode {
		table = "mcp"
	}
	servers, _ := readJSON(path)[table].(map[string]any)
	_, ok := servers[ServerName]
	return ok
}

// ---------------------------------------------------------------------------
// Entries
// ---------------------------------------------------------------------------

func stdioEntry(dataHome string) map[string]any {
	e := map[string]any{
		"command": "eventdesk",
		"args":    []any{"mcp"},
		"type":    "stdio",
	}
	if dataHome != "" {
		e["env"] = map[string]any{"EVENTDESK_HOME": dataHome}
	}
	return e
}

func opencodeEntry(dataHome string) map[string]any {
	e := map[string]any{
		"type":    "local",
		"command": []any{"eventdesk", "mcp"},
	}
	if dataHome != "" {
		e["environment"] = map[string]any{"EVENTDESK_HOME": dataHome}
	}
	return e
}

// ---------------------------------------------------------------------------
// JSON configs
// ---------------------------------------------------------------------------

func readJSON(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		return make(map[string]any)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil || m == nil {
		return make(map[string]any)
	}
	return m
}

func writeJSON(path string, data map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0o644) // #nosec G306 -- MCP server entries carry no secrets
}

func installJSON(path, table string, entry map[string]any) (bool, error) {
	data := readJSON(path)
	servers, _ := data[table].(map[string]any)
	if servers == nil {
		servers = make(map[string]any)
		data[table] = servers
	}
	if _, exists := servers[ServerName]; exists {
		return false, nil
	}
	servers[ServerName] = entry
	return true, writeJSON(path, data)
}

func uninstallJSON(path, table string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	data := readJSON(path)
	servers, _ := data[table].(map[string]any)
	if _, exists := servers[ServerName]; !exists {
		return false, nil
	}
	delete(servers, ServerName)
	if len(servers) == 0 {
		delete(data, table)
	}
	if len(data) == 0 {
		return true, os.Remove(path)
	}
	return true, writeJSON(path, data)
}

// ---------------------------------------------------------------------------
// TOML config (Codex); text-based, only touches [mcp_servers.eventdesk]
// ---------------------------------------------------------------------------

const tomlHeader = "[mcp_servers." + ServerName + "]"

func tomlSection(dataHome string) string {
	var sb strings.Builder
	sb.WriteString("\n" + tomlHeader + "\ncommand = \"eventdesk\"\nargs = [\"mcp\"]\n")
	if dataHome != "" {
		fmt.Fprintf(&sb, "env = { EVENTDESK_HOME = %q }\n", dataHome)
	}
	return sb.String()
}

func hasTOMLSection(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), tomlHeader)
}

func appendTOMLSection(path, dataHome string) (bool, error) {
	if hasTOMLSection(path) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	defer f.Close()
	if _, err := f.WriteString(tomlSection(dataHome)); err != nil {
		return false, err
	}
	return true, nil
}

func removeTOMLSection(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !strings.Contains(string(data), tomlHeader) {
		return false, nil
	}
	// Drop the header and its keys up to the next table header or EOF.
	lines := strings.Split(string(data), "\n")
	kept := make([]string, 0, len(lines))
	inSection := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == tomlHeader {
			inSection = true
			continue
		}
		if inSection && strings.HasPrefix(trimmed, "[") {
			inSection = false
		}
		if !inSection {
			kept = append(kept, line)
		}
	}
	cleaned := strings.TrimSpace(strings.Join(kept, "\n"))
	if cleaned == "" {
		return true, os.Remove(path)
	}
	return true, os.WriteFile(path, []byte(cleaned+"\n"), 0o644) // #nosec G306 -- agent TOML config carries no secrets
}

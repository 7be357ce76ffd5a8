package agents_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/go-ports/eventdesk/internal/agents"
	"github.com/go-ports/eventdesk/internal/checkers"
)

func TestParse(t *testing.T) {
	c := qt.New(t)

	for _, a := range agents.All {
		got, err := agents.Parse(string(a))
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, a)
	}
	_, err := agents.Parse("vim")
	c.Assert(err, qt.ErrorMatches, `unknown agent "vim".*`)
}

func TestConfigPath(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(t.TempDir(), ".claude")

	cases := []struct {
		name  string
		agent agents.Agent
		dir   string
		want  string
	}{
		{"claude global", agents.ClaudeCode, "", filepath.Join(home, ".claude.json")},
		{"claude dir override", agents.ClaudeCode, dir, filepath.Join(filepath.Dir(dir), ".mcp.json")},
		{"cursor global", agents.Cursor, "", filepath.Join(home, ".cursor", "mcp.json")},
		{"codex dir override", agents.Codex, dir, filepath.Join(dir, "config.toml")},
		{"opencode global", agents.OpenCode, "", filepath.Join(home, ".config", "opencode", "opencode.json")},
	}
	for _, tc := range cases {
		c.Run(tc.name, func(c *qt.C) {
			got, err := agents.ConfigPath(tc.agent, tc.dir, false)
			c.Assert(err, qt.IsNil)
			c.Assert(got, qt.Equals, tc.want)
		})
	}
}

// ---------------------------------------------------------------------------
// JSON agents
// ---------------------------------------------------------------------------

func TestInstall_JSON_HappyPath(t *testing.T) {
	c := qt.New(t)

	c.Run("claude entry is stdio with the data home", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), ".mcp.json")

		added, err := agents.Install(agents.ClaudeCode, path, "/srv/eventdesk")
		c.Assert(err, qt.IsNil)
		c.Assert(added, qt.IsTrue)
		c.Assert(agents.Installed(agents.ClaudeCode, path), qt.IsTrue)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.eventdesk.command"), "eventdesk")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.eventdesk.type"), "stdio")
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.eventdesk.env.EVENTDESK_HOME"), "/srv/eventdesk")
	})

	c.Run("second install is a no-op", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")

		_, err := agents.Install(agents.Cursor, path, "")
		c.Assert(err, qt.IsNil)
		added, err := agents.Install(agents.Cursor, path, "")
		c.Assert(err, qt.IsNil)
		c.Assert(added, qt.IsFalse)
	})

	c.Run("other servers are preserved", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		err := os.WriteFile(path, []byte(`{"mcpServers":{"other":{"command":"x"}},"theme":"dark"}`), 0o600)
		c.Assert(err, qt.IsNil)

		_, err = agents.Install(agents.Cursor, path, "")
		c.Assert(err, qt.IsNil)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcpServers.other.command"), "x")
		c.Assert(data, checkers.JSONPathEquals("$.theme"), "dark")
		c.Assert(data, checkers.JSONPathLen("$.mcpServers"), 2)
	})

	c.Run("opencode uses the mcp table", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "opencode.json")

		_, err := agents.Install(agents.OpenCode, path, "")
		c.Assert(err, qt.IsNil)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(data, checkers.JSONPathEquals("$.mcp.eventdesk.type"), "local")
		c.Assert(data, checkers.JSONPathEquals("$.mcp.eventdesk.command"), []any{"eventdesk", "mcp"})
	})
}

func TestUninstall_JSON(t *testing.T) {
	c := qt.New(t)

	c.Run("file holding only eventdesk is removed", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		_, err := agents.Install(agents.Cursor, path, "")
		c.Assert(err, qt.IsNil)

		removed, err := agents.Uninstall(agents.Cursor, path)
		c.Assert(err, qt.IsNil)
		c.Assert(removed, qt.IsTrue)
		_, err = os.Stat(path)
		c.Assert(os.IsNotExist(err), qt.IsTrue)
	})

	c.Run("other keys keep the file", func(c *qt.C) {
		path := filepath.Join(t.TempDir(), "mcp.json")
		err := os.WriteFile(path, []byte(`{"theme":"dark"}`), 0o600)
		c.Assert(err, qt.IsNil)
		_, err = agents.Install(agents.Cursor, path, "")
		c.Assert(err, qt.IsNil)

		removed, err := agents.Uninstall(agents.Cursor, path)
		c.Assert(err, qt.IsNil)
		c.Assert(removed, qt.IsTrue)

		data, err := os.ReadFile(path)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Not(qt.Contains), "mcpServers")
		c.Assert(data, checkers.JSONPathEquals("$.theme"), "dark")
	})

	c.Run("nothing to remove", func(c *qt.C) {
		removed, err := agents.Uninstall(agents.ClaudeCode, filepath.Join(t.TempDir(), "missing.json"))
		c.Assert(err, qt.IsNil)
		c.Assert(removed, qt.IsFalse)
	})
}

// ---------------------------------------------------------------------------
// TOML agent
// ---------------------------------------------------------------------------

func TestCodex_InstallUninstall(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte("model = \"o4\"\n\n[mcp_servers.other]\ncommand = \"x\"\n"), 0o600)
	c.Assert(err, qt.IsNil)

	added, err := agents.Install(agents.Codex, path, "/data")
	c.Assert(err, qt.IsNil)
	c.Assert(added, qt.IsTrue)
	c.Assert(agents.Installed(agents.Codex, path), qt.IsTrue)

	data, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, "[mcp_servers.eventdesk]\ncommand = \"eventdesk\"")
	c.Assert(string(data), qt.Contains, `env = { EVENTDESK_HOME = "/data" }`)

	added, err = agents.Install(agents.Codex, path, "/data")
	c.Assert(err, qt.IsNil)
	c.Assert(added, qt.IsFalse)

	removed, err := agents.Uninstall(agents.Codex, path)
	c.Assert(err, qt.IsNil)
	c.Assert(removed, qt.IsTrue)

	data, err = os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, "model = \"o4\"\n\n[mcp_servers.other]\ncommand = \"x\"\n")
}

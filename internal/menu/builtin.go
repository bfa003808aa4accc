package menu

import (
	"fmt"
	"strings"
)

// Action identifiers for the built-in menu. The runtime maps these to
// handlers; destructive ones pass through the confirmation gate first.
const (
	ActionBackupConfig  ActionID = "tools:backup-config"
	ActionRestoreConfig ActionID = "tools:restore-config"
	ActionClearCache    ActionID = "tools:clear-cache"
	ActionShowVersion   ActionID = "sysinfo:version"
	ActionShowPaths     ActionID = "sysinfo:paths"
	ActionReloadPlugin  ActionID = "tools:reload-plugin"
)

// Builtin returns the static menu definition. menuType selects a category to
// use as the root view ("" means the full menu); matching is by category ID,
// case-insensitive.
func Builtin(menuType string) (*Node, error) {
	root := builtinRoot()
	trimmed := strings.TrimSpace(menuType)
	if trimmed == "" {
		return root, nil
	}
	if sub := findCategory(root, strings.ToLower(trimmed)); sub != nil {
		return sub, nil
	}
	return nil, fmt.Errorf("unknown menu type %q", trimmed)
}

func findCategory(n *Node, id string) *Node {
	if n.Kind == KindCategory && n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := findCategory(child, id); found != nil {
			return found
		}
	}
	return nil
}

func builtinRoot() *Node {
	return &Node{
		ID:    "root",
		Label: "shellmate",
		Kind:  KindCategory,
		Children: []*Node{
			{
				ID:    "settings",
				Label: "Settings",
				Kind:  KindCategory,
				Children: []*Node{
					{Kind: KindToggle, ID: "settings:animations", Label: "Animations", ConfigKey: "ui.animations"},
					{Kind: KindToggle, ID: "settings:greeting", Label: "Greeting on startup", ConfigKey: "ui.greeting", Value: true},
					{Kind: KindToggle, ID: "settings:native-menu", Label: "Native menu renderer", ConfigKey: "ui.native_menu", Value: true},
					{
						ID:         "settings:prompt",
						Label:      "Prompt segments",
						Kind:       KindCategory,
						Expandable: true,
						Children: []*Node{
							{Kind: KindToggle, ID: "settings:prompt:git", Label: "Git segment", ConfigKey: "prompt.git_segment", Value: true},
							{Kind: KindToggle, ID: "settings:prompt:host", Label: "Hostname segment", ConfigKey: "prompt.show_host"},
						},
					},
				},
			},
			{
				ID:    "appearance",
				Label: "Appearance",
				Kind:  KindCategory,
				Children: []*Node{
					{Kind: KindToggle, ID: "appearance:powerline", Label: "Powerline glyphs", ConfigKey: "theme.powerline"},
					{Kind: KindToggle, ID: "appearance:dim-footer", Label: "Dim footer", ConfigKey: "theme.dim_footer", Value: true},
				},
			},
			{
				ID:    "tools",
				Label: "Tools",
				Kind:  KindCategory,
				Children: []*Node{
					{Kind: KindItem, ID: "tools:backup", Label: "Backup config", Action: ActionBackupConfig},
					{Kind: KindItem, ID: "tools:restore", Label: "Restore config", Action: ActionRestoreConfig, Destructive: true},
					{Kind: KindItem, ID: "tools:clear-cache", Label: "Clear cache", Action: ActionClearCache, Destructive: true},
					{Kind: KindItem, ID: "tools:reload", Label: "Reload plugin", Action: ActionReloadPlugin},
				},
			},
			{
				ID:    "sysinfo",
				Label: "System Info",
				Kind:  KindCategory,
				Children: []*Node{
					{Kind: KindItem, ID: "sysinfo:version", Label: "Version", Action: ActionShowVersion},
					{Kind: KindItem, ID: "sysinfo:paths", Label: "Paths", Action: ActionShowPaths},
				},
			},
			{
				ID:             "assistant",
				Label:          "AI Assistant",
				Kind:           KindCategory,
				DisabledReason: "coming soon",
			},
		},
	}
}
